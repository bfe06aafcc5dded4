package service

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. Missing rows surface as
// gorm.ErrRecordNotFound, same as the real implementations.

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type mockProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, product *model.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return m.FindByID(ctx, id)
}

func (m *mockProductRepo) List(ctx context.Context, page, limit int, search, status string) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range m.products {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	return nil
}

func (m *mockProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

type mockVendorRepo struct {
	vendors map[uuid.UUID]*model.Vendor
}

func newMockVendorRepo() *mockVendorRepo {
	return &mockVendorRepo{vendors: make(map[uuid.UUID]*model.Vendor)}
}

func (m *mockVendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	cp := *vendor
	m.vendors[vendor.ID] = &cp
	return nil
}

func (m *mockVendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	cp := *vendor
	m.vendors[vendor.ID] = &cp
	return nil
}

func (m *mockVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.vendors, id)
	return nil
}

func (m *mockVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	v, ok := m.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *mockVendorRepo) List(ctx context.Context, search, province string, page, limit int) ([]model.Vendor, int64, error) {
	var out []model.Vendor
	for _, v := range m.vendors {
		if province != "" && v.Province != province {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (m *mockVendorRepo) ListByProvince(ctx context.Context, province string) ([]model.Vendor, error) {
	var out []model.Vendor
	for _, v := range m.vendors {
		if province != "" && v.Province != province {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVendorRepo) UpdateHasOrders(ctx context.Context, id uuid.UUID, hasOrders bool) error {
	v, ok := m.vendors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.HasOrders = hasOrders
	return nil
}

func (m *mockVendorRepo) UpdateAuthorizedUsers(ctx context.Context, id uuid.UUID, users []model.AuthorizedUser) error {
	v, ok := m.vendors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.AuthorizedUsers = users
	return nil
}

type mockVendorProductRepo struct {
	entries map[string]*model.VendorProduct
}

func newMockVendorProductRepo() *mockVendorProductRepo {
	return &mockVendorProductRepo{entries: make(map[string]*model.VendorProduct)}
}

func (m *mockVendorProductRepo) Create(ctx context.Context, entry *model.VendorProduct) error {
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *mockVendorProductRepo) FindByID(ctx context.Context, id string) (*model.VendorProduct, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockVendorProductRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.VendorProduct, error) {
	return m.FindByID(ctx, id)
}

func (m *mockVendorProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	e, ok := m.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Stock = stock
	return nil
}

func (m *mockVendorProductRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorProduct, error) {
	var out []model.VendorProduct
	for _, e := range m.entries {
		if e.VendorID == vendorID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type mockRequestRepo struct {
	requests map[uuid.UUID]*model.ImportRequest
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[uuid.UUID]*model.ImportRequest)}
}

func (m *mockRequestRepo) Create(ctx context.Context, request *model.ImportRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	cp := *request
	m.requests[request.ID] = &cp
	return nil
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRequestRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error) {
	return m.FindByID(ctx, id)
}

func (m *mockRequestRepo) List(ctx context.Context, status string, page, limit int) ([]model.ImportRequest, int64, error) {
	var out []model.ImportRequest
	for _, r := range m.requests {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *mockRequestRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.ImportRequest, error) {
	var out []model.ImportRequest
	for _, r := range m.requests {
		if r.VendorID == vendorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (m *mockRequestRepo) CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.VendorID == vendorID && r.Status == model.RequestPending {
			count++
		}
	}
	return count, nil
}

type mockAuditRepo struct {
	logs []model.AuditLog
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return m.logs, int64(len(m.logs)), nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	u, ok := m.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, parsed)
	return nil
}
