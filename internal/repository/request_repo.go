package repository

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImportRequestRepository interface {
	Create(ctx context.Context, request *model.ImportRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error)
	List(ctx context.Context, status string, page, limit int) ([]model.ImportRequest, int64, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.ImportRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
}

type importRequestRepository struct {
	db *gorm.DB
}

func NewImportRequestRepository(db *gorm.DB) ImportRequestRepository {
	return &importRequestRepository{db: db}
}

func (r *importRequestRepository) Create(ctx context.Context, request *model.ImportRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *importRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error) {
	var request model.ImportRequest
	if err := GetDB(ctx, r.db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByIDForUpdate locks the request row so two sessions cannot both see it
// pending and finalize it twice.
func (r *importRequestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ImportRequest, error) {
	var request model.ImportRequest
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *importRequestRepository) List(ctx context.Context, status string, page, limit int) ([]model.ImportRequest, int64, error) {
	var requests []model.ImportRequest
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ImportRequest{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("request_date desc").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *importRequestRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.ImportRequest, error) {
	var requests []model.ImportRequest
	if err := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).
		Order("request_date desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *importRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.ImportRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *importRequestRepository) CountPendingByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ImportRequest{}).
		Where("vendor_id = ? AND status = ?", vendorID, model.RequestPending).
		Count(&count).Error
	return count, err
}
