package service

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/pkg/strutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateVendorDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	Province    string `json:"province" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Logo        string `json:"logo"`
}

type UpdateVendorDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Province    *string `json:"province"`
	Phone       *string `json:"phone"`
	Logo        *string `json:"logo"`
}

type VendorFilter struct {
	Search   string
	Province string
	Page     int
	Limit    int
}

// AuthorizedUserDTO mirrors model.AuthorizedUser on the wire.
type AuthorizedUserDTO struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// CandidateResponse is a dealer account eligible for authorization on a
// vendor, i.e. not yet on its list.
type CandidateResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type VendorService interface {
	CreateVendor(ctx context.Context, userID string, req CreateVendorDTO) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, userID, id string, req UpdateVendorDTO) (*model.Vendor, error)
	DeleteVendor(ctx context.Context, userID, id string) error
	GetVendor(ctx context.Context, id string) (*model.Vendor, error)
	ListVendors(ctx context.Context, filter VendorFilter) ([]model.Vendor, int64, error)
	SaveAuthorizedUsers(ctx context.Context, userID, id string, users []AuthorizedUserDTO) (*model.Vendor, error)
	ListCandidates(ctx context.Context, id, search string) ([]CandidateResponse, error)
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewVendorService(
	vendorRepo repository.VendorRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) VendorService {
	return &vendorService{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
	}
}

func (s *vendorService) CreateVendor(ctx context.Context, userID string, req CreateVendorDTO) (*model.Vendor, error) {
	if !model.IsValidProvince(req.Province) {
		return nil, fmt.Errorf("unknown province: %q", req.Province)
	}

	vendor := &model.Vendor{
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		Province:        req.Province,
		Phone:           req.Phone,
		Logo:            req.Logo,
		AuthorizedUsers: []model.AuthorizedUser{},
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.vendorRepo.Create(txCtx, vendor); createErr != nil {
			return &PersistenceError{Op: "create vendor", Err: createErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateVendor, vendor.ID.String(), vendor.Name, map[string]interface{}{
			"province": vendor.Province,
		})
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, userID, id string, req UpdateVendorDTO) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	if req.Province != nil && !model.IsValidProvince(*req.Province) {
		return nil, fmt.Errorf("unknown province: %q", *req.Province)
	}

	var vendor *model.Vendor
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		vendor, findErr = s.vendorRepo.FindByID(txCtx, vendorID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return &PersistenceError{Op: "load vendor", Err: findErr}
		}

		if req.Name != nil {
			vendor.Name = *req.Name
		}
		if req.Description != nil {
			vendor.Description = *req.Description
		}
		if req.Address != nil {
			vendor.Address = *req.Address
		}
		if req.Province != nil {
			vendor.Province = *req.Province
		}
		if req.Phone != nil {
			vendor.Phone = *req.Phone
		}
		if req.Logo != nil {
			vendor.Logo = *req.Logo
		}

		if updateErr := s.vendorRepo.Update(txCtx, vendor); updateErr != nil {
			return &PersistenceError{Op: "update vendor", Err: updateErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateVendor, vendor.ID.String(), vendor.Name, nil)
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, userID, id string) error {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vendor id: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vendor, findErr := s.vendorRepo.FindByID(txCtx, vendorID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return &PersistenceError{Op: "load vendor", Err: findErr}
		}

		if deleteErr := s.vendorRepo.Delete(txCtx, vendorID); deleteErr != nil {
			return &PersistenceError{Op: "delete vendor", Err: deleteErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteVendor, vendorID.String(), vendor.Name, nil)
	})
}

func (s *vendorService) GetVendor(ctx context.Context, id string) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, &PersistenceError{Op: "load vendor", Err: err}
	}
	return vendor, nil
}

// ListVendors pages through vendors. A search term matches name or phone,
// case and accent insensitive, so the filtering runs in memory rather than in
// SQL (ILIKE cannot see through diacritics).
func (s *vendorService) ListVendors(ctx context.Context, filter VendorFilter) ([]model.Vendor, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	if filter.Search == "" {
		vendors, total, err := s.vendorRepo.List(ctx, "", filter.Province, filter.Page, filter.Limit)
		if err != nil {
			return nil, 0, &PersistenceError{Op: "list vendors", Err: err}
		}
		return vendors, total, nil
	}

	all, err := s.vendorRepo.ListByProvince(ctx, filter.Province)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "list vendors", Err: err}
	}

	matched := make([]model.Vendor, 0, len(all))
	for _, v := range all {
		if strutil.ContainsFold(v.Name, filter.Search) || strutil.ContainsFold(v.Phone, filter.Search) {
			matched = append(matched, v)
		}
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []model.Vendor{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// SaveAuthorizedUsers replaces the vendor's authorization list with the given
// entries. The list is normalized in memory first: duplicate user ids
// collapse, order of first appearance wins.
func (s *vendorService) SaveAuthorizedUsers(ctx context.Context, userID, id string, users []AuthorizedUserDTO) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	var vendor *model.Vendor
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		vendor, findErr = s.vendorRepo.FindByID(txCtx, vendorID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return &PersistenceError{Op: "load vendor", Err: findErr}
		}

		list := NewAuthorizationList(nil)
		for _, u := range users {
			user, userErr := s.userRepo.GetByID(txCtx, u.UserID)
			if userErr != nil {
				if errors.Is(userErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrUserNotFound, u.UserID)
				}
				return &PersistenceError{Op: "load user", Err: userErr}
			}
			list.Add(model.AuthorizedUser{
				UserID:   user.ID.String(),
				Username: user.Username,
				FullName: user.FullName,
			})
		}

		entries := list.Entries()
		if updateErr := s.vendorRepo.UpdateAuthorizedUsers(txCtx, vendorID, entries); updateErr != nil {
			return &PersistenceError{Op: "update authorized users", Err: updateErr}
		}
		vendor.AuthorizedUsers = entries

		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateVendor, vendorID.String(), vendor.Name, map[string]interface{}{
			"authorized_users": len(entries),
		})
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// ListCandidates returns dealer accounts not yet authorized on the vendor.
// The search matches full name or username, case and accent insensitive, so
// "nguyen" finds "Nguyễn".
func (s *vendorService) ListCandidates(ctx context.Context, id, search string) ([]CandidateResponse, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, &PersistenceError{Op: "load vendor", Err: err}
	}

	dealers, err := s.userRepo.ListByRole(ctx, model.RoleDealer)
	if err != nil {
		return nil, &PersistenceError{Op: "list dealers", Err: err}
	}

	authorized := NewAuthorizationList(vendor.AuthorizedUsers)
	candidates := make([]CandidateResponse, 0, len(dealers))
	for _, d := range dealers {
		if authorized.Contains(d.ID.String()) {
			continue
		}
		if search != "" && !strutil.ContainsFold(d.FullName, search) && !strutil.ContainsFold(d.Username, search) {
			continue
		}
		candidates = append(candidates, CandidateResponse{
			UserID:   d.ID.String(),
			Username: d.Username,
			FullName: d.FullName,
		})
	}
	return candidates, nil
}
