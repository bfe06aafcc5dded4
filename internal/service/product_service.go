package service

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductDTO struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	CategoryIDs []string        `json:"category_ids"`
}

type UpdateProductDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Images      []string         `json:"images"`
	CategoryIDs []string         `json:"category_ids"`
}

type ProductFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type ProductService interface {
	CreateProduct(ctx context.Context, userID string, req CreateProductDTO) (*model.Product, error)
	UpdateProduct(ctx context.Context, userID, id string, req UpdateProductDTO) (*model.Product, error)
	DeleteProduct(ctx context.Context, userID, id string) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	SetProductStatus(ctx context.Context, userID, id, status string) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *productService) CreateProduct(ctx context.Context, userID string, req CreateProductDTO) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		CategoryIDs: req.CategoryIDs,
		Status:      model.ProductStatusActive,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.CategoryIDs == nil {
		product.CategoryIDs = []string{}
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if checkErr := s.checkCategoryIDs(txCtx, product.CategoryIDs); checkErr != nil {
			return checkErr
		}
		if createErr := s.productRepo.Create(txCtx, product); createErr != nil {
			return &PersistenceError{Op: "create product", Err: createErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateProduct, product.ID.String(), product.Name, map[string]interface{}{
			"price": product.Price.String(),
			"stock": product.Stock,
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID, id string, req UpdateProductDTO) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative")
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		product, findErr = s.productRepo.FindByID(txCtx, productID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return &PersistenceError{Op: "load product", Err: findErr}
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		if req.Images != nil {
			product.Images = req.Images
		}
		if req.CategoryIDs != nil {
			if checkErr := s.checkCategoryIDs(txCtx, req.CategoryIDs); checkErr != nil {
				return checkErr
			}
			product.CategoryIDs = req.CategoryIDs
		}

		if updateErr := s.productRepo.Update(txCtx, product); updateErr != nil {
			return &PersistenceError{Op: "update product", Err: updateErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateProduct, product.ID.String(), product.Name, nil)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, findErr := s.productRepo.FindByID(txCtx, productID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return &PersistenceError{Op: "load product", Err: findErr}
		}

		if deleteErr := s.productRepo.Delete(txCtx, productID); deleteErr != nil {
			return &PersistenceError{Op: "delete product", Err: deleteErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteProduct, productID.String(), product.Name, nil)
	})
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, &PersistenceError{Op: "load product", Err: err}
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	products, total, err := s.productRepo.List(ctx, filter.Page, filter.Limit, filter.Search, filter.Status)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "list products", Err: err}
	}
	return products, total, nil
}

func (s *productService) SetProductStatus(ctx context.Context, userID, id, status string) (*model.Product, error) {
	if status != model.ProductStatusActive && status != model.ProductStatusInactive {
		return nil, fmt.Errorf("unknown product status: %q", status)
	}
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		product, findErr = s.productRepo.FindByID(txCtx, productID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return &PersistenceError{Op: "load product", Err: findErr}
		}

		if updateErr := s.productRepo.UpdateStatus(txCtx, productID, status); updateErr != nil {
			return &PersistenceError{Op: "update product status", Err: updateErr}
		}
		product.Status = status
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateProduct, productID.String(), product.Name, map[string]interface{}{
			"status": status,
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// checkCategoryIDs verifies every referenced category exists. Products store
// category ids only; names are resolved at read time.
func (s *productService) checkCategoryIDs(ctx context.Context, ids []string) error {
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", raw, err)
		}
		if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrCategoryNotFound, raw)
			}
			return &PersistenceError{Op: "load category", Err: err}
		}
	}
	return nil
}
