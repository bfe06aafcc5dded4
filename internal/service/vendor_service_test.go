package service

import (
	"context"
	"errors"
	"testing"

	"vendorhub/internal/model"

	"github.com/google/uuid"
)

type vendorFixture struct {
	svc      VendorService
	vendors  *mockVendorRepo
	users    *mockUserRepo
	audit    *mockAuditRepo
	vendorID uuid.UUID
}

func newVendorFixture(t *testing.T) *vendorFixture {
	t.Helper()

	vendors := newMockVendorRepo()
	users := newMockUserRepo()
	audit := newMockAuditRepo()

	vendor := &model.Vendor{
		ID:       uuid.New(),
		Name:     "Đại lý Minh Tâm",
		Address:  "12 Lê Lợi",
		Province: "Hà Nội",
		Phone:    "0901234567",
	}
	if err := vendors.Create(context.Background(), vendor); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	return &vendorFixture{
		svc:      NewVendorService(vendors, users, audit, &mockTxManager{}),
		vendors:  vendors,
		users:    users,
		audit:    audit,
		vendorID: vendor.ID,
	}
}

func (f *vendorFixture) seedDealer(t *testing.T, username, fullName string) uuid.UUID {
	t.Helper()
	u := &model.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		FullName: fullName,
		Role:     model.RoleDealer,
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed dealer: %v", err)
	}
	return u.ID
}

func TestCreateVendorRejectsUnknownProvince(t *testing.T) {
	f := newVendorFixture(t)

	_, err := f.svc.CreateVendor(context.Background(), uuid.NewString(), CreateVendorDTO{
		Name:     "Đại lý mới",
		Address:  "1 Trần Phú",
		Province: "Atlantis",
		Phone:    "0909",
	})
	if err == nil {
		t.Fatal("expected error for unknown province")
	}
}

func TestCreateVendorWritesAudit(t *testing.T) {
	f := newVendorFixture(t)

	vendor, err := f.svc.CreateVendor(context.Background(), uuid.NewString(), CreateVendorDTO{
		Name:     "Đại lý mới",
		Address:  "1 Trần Phú",
		Province: "Đà Nẵng",
		Phone:    "0909",
	})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	if vendor.AuthorizedUsers == nil {
		t.Error("authorized users should initialize to an empty list")
	}
	if len(f.audit.logs) != 1 || f.audit.logs[0].Action != model.ActionCreateVendor {
		t.Errorf("expected one CREATE_VENDOR audit entry, got %v", f.audit.logs)
	}
}

func TestSaveAuthorizedUsersDedupesAndResolvesNames(t *testing.T) {
	f := newVendorFixture(t)
	dealerID := f.seedDealer(t, "an.nguyen", "Nguyễn Văn An")

	vendor, err := f.svc.SaveAuthorizedUsers(context.Background(), uuid.NewString(), f.vendorID.String(), []AuthorizedUserDTO{
		{UserID: dealerID.String(), Username: "stale-name"},
		{UserID: dealerID.String()},
	})
	if err != nil {
		t.Fatalf("SaveAuthorizedUsers: %v", err)
	}

	if len(vendor.AuthorizedUsers) != 1 {
		t.Fatalf("duplicates should collapse, got %d entries", len(vendor.AuthorizedUsers))
	}
	// Stored names come from the user record, not the request payload.
	if vendor.AuthorizedUsers[0].Username != "an.nguyen" || vendor.AuthorizedUsers[0].FullName != "Nguyễn Văn An" {
		t.Errorf("entry not resolved from the user record: %+v", vendor.AuthorizedUsers[0])
	}

	stored, _ := f.vendors.FindByID(context.Background(), f.vendorID)
	if len(stored.AuthorizedUsers) != 1 {
		t.Errorf("persisted list has %d entries, want 1", len(stored.AuthorizedUsers))
	}
}

func TestSaveAuthorizedUsersUnknownUser(t *testing.T) {
	f := newVendorFixture(t)

	_, err := f.svc.SaveAuthorizedUsers(context.Background(), uuid.NewString(), f.vendorID.String(), []AuthorizedUserDTO{
		{UserID: uuid.NewString()},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListCandidatesExcludesAuthorizedUsers(t *testing.T) {
	f := newVendorFixture(t)
	authorizedID := f.seedDealer(t, "an.nguyen", "Nguyễn Văn An")
	freeID := f.seedDealer(t, "binh.tran", "Trần Thanh Bình")

	if _, err := f.svc.SaveAuthorizedUsers(context.Background(), uuid.NewString(), f.vendorID.String(), []AuthorizedUserDTO{
		{UserID: authorizedID.String()},
	}); err != nil {
		t.Fatalf("SaveAuthorizedUsers: %v", err)
	}

	candidates, err := f.svc.ListCandidates(context.Background(), f.vendorID.String(), "")
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].UserID != freeID.String() {
		t.Fatalf("expected only the unauthorized dealer, got %+v", candidates)
	}
}

func TestListCandidatesSearchIsAccentInsensitive(t *testing.T) {
	f := newVendorFixture(t)
	f.seedDealer(t, "an.nguyen", "Nguyễn Văn An")
	f.seedDealer(t, "binh.tran", "Trần Thanh Bình")

	candidates, err := f.svc.ListCandidates(context.Background(), f.vendorID.String(), "nguyen")
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].FullName != "Nguyễn Văn An" {
		t.Fatalf("accent-insensitive search failed: %+v", candidates)
	}

	// Username matches too.
	candidates, err = f.svc.ListCandidates(context.Background(), f.vendorID.String(), "BINH.TRAN")
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Username != "binh.tran" {
		t.Fatalf("case-insensitive username search failed: %+v", candidates)
	}
}

func TestListCandidatesOnlyDealers(t *testing.T) {
	f := newVendorFixture(t)
	f.seedDealer(t, "an.nguyen", "Nguyễn Văn An")

	admin := &model.User{ID: uuid.New(), Username: "root", Email: "root@example.com", Role: model.RoleAdmin}
	if err := f.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	candidates, err := f.svc.ListCandidates(context.Background(), f.vendorID.String(), "")
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("non-dealer accounts must not appear, got %+v", candidates)
	}
}

func TestListVendorsSearchIsAccentInsensitive(t *testing.T) {
	f := newVendorFixture(t)
	if err := f.vendors.Create(context.Background(), &model.Vendor{
		ID:       uuid.New(),
		Name:     "Cửa hàng Đông Đô",
		Province: "Hà Nội",
		Phone:    "0911111111",
	}); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	vendors, total, err := f.svc.ListVendors(context.Background(), VendorFilter{Search: "dong do"})
	if err != nil {
		t.Fatalf("ListVendors: %v", err)
	}
	if total != 1 || len(vendors) != 1 || vendors[0].Name != "Cửa hàng Đông Đô" {
		t.Fatalf("accent-insensitive vendor search failed: total=%d %+v", total, vendors)
	}

	// Phone matches too.
	vendors, _, err = f.svc.ListVendors(context.Background(), VendorFilter{Search: "0901234567"})
	if err != nil {
		t.Fatalf("ListVendors: %v", err)
	}
	if len(vendors) != 1 || vendors[0].Name != "Đại lý Minh Tâm" {
		t.Fatalf("phone search failed: %+v", vendors)
	}
}

func TestUpdateVendorPartialFields(t *testing.T) {
	f := newVendorFixture(t)

	newPhone := "0987654321"
	vendor, err := f.svc.UpdateVendor(context.Background(), uuid.NewString(), f.vendorID.String(), UpdateVendorDTO{
		Phone: &newPhone,
	})
	if err != nil {
		t.Fatalf("UpdateVendor: %v", err)
	}
	if vendor.Phone != newPhone {
		t.Errorf("phone = %q, want %q", vendor.Phone, newPhone)
	}
	if vendor.Name != "Đại lý Minh Tâm" {
		t.Errorf("unset fields must be preserved, name = %q", vendor.Name)
	}
}
