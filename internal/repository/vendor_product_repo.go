package repository

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendorProductRepository interface {
	Create(ctx context.Context, entry *model.VendorProduct) error
	FindByID(ctx context.Context, id string) (*model.VendorProduct, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.VendorProduct, error)
	UpdateStock(ctx context.Context, id string, stock int) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorProduct, error)
}

type vendorProductRepository struct {
	db *gorm.DB
}

func NewVendorProductRepository(db *gorm.DB) VendorProductRepository {
	return &vendorProductRepository{db: db}
}

func (r *vendorProductRepository) Create(ctx context.Context, entry *model.VendorProduct) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *vendorProductRepository) FindByID(ctx context.Context, id string) (*model.VendorProduct, error) {
	var entry model.VendorProduct
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByIDForUpdate locks the ledger row so concurrent approvals of the same
// (vendor, product) pair serialize on it.
func (r *vendorProductRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.VendorProduct, error) {
	var entry model.VendorProduct
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *vendorProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	return GetDB(ctx, r.db).Model(&model.VendorProduct{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *vendorProductRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorProduct, error) {
	var entries []model.VendorProduct
	if err := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
