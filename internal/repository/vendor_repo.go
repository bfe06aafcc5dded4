package repository

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context, search, province string, page, limit int) ([]model.Vendor, int64, error)
	ListByProvince(ctx context.Context, province string) ([]model.Vendor, error)
	UpdateHasOrders(ctx context.Context, id uuid.UUID, hasOrders bool) error
	UpdateAuthorizedUsers(ctx context.Context, id uuid.UUID, users []model.AuthorizedUser) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Save(vendor).Error
}

func (r *vendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vendor{}).Error
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx, r.db).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, search, province string, page, limit int) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Vendor{})
	if search != "" {
		db = db.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if province != "" {
		db = db.Where("province = ?", province)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&vendors).Error; err != nil {
		return nil, 0, err
	}

	return vendors, total, nil
}

// ListByProvince returns every vendor, optionally narrowed to one province.
// Used when the caller filters by accent-insensitive search in memory.
func (r *vendorRepository) ListByProvince(ctx context.Context, province string) ([]model.Vendor, error) {
	var vendors []model.Vendor
	db := GetDB(ctx, r.db)
	if province != "" {
		db = db.Where("province = ?", province)
	}
	if err := db.Order("created_at desc").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) UpdateHasOrders(ctx context.Context, id uuid.UUID, hasOrders bool) error {
	return GetDB(ctx, r.db).Model(&model.Vendor{}).Where("id = ?", id).Update("has_orders", hasOrders).Error
}

func (r *vendorRepository) UpdateAuthorizedUsers(ctx context.Context, id uuid.UUID, users []model.AuthorizedUser) error {
	return GetDB(ctx, r.db).Model(&model.Vendor{}).Where("id = ?", id).Update("authorized_users", users).Error
}
