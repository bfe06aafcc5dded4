package service

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, userID string, req CreateCategoryDTO) (*model.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryTree(ctx context.Context) ([]*model.CategoryNode, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// CreateCategory inserts a node. The parent must already exist, which keeps
// the stored hierarchy cycle-free: a new node cannot be its own ancestor.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req CreateCategoryDTO) (*model.Category, error) {
	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id: %w", err)
		}
		parentID = &parsed
	}

	category := &model.Category{
		Name:     req.Name,
		ParentID: parentID,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, findErr := s.categoryRepo.FindByName(txCtx, req.Name); findErr == nil {
			return fmt.Errorf("category %q already exists", req.Name)
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return &PersistenceError{Op: "load category", Err: findErr}
		}

		if parentID != nil {
			if _, findErr := s.categoryRepo.FindByID(txCtx, *parentID); findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: parent %s", ErrCategoryNotFound, parentID)
				}
				return &PersistenceError{Op: "load parent category", Err: findErr}
			}
		}

		if createErr := s.categoryRepo.Create(txCtx, category); createErr != nil {
			return &PersistenceError{Op: "create category", Err: createErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateCategory, category.ID.String(), category.Name, nil)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a leaf node. Nodes with children are refused so the
// tree never silently orphans a subtree.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid category id: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		category, findErr := s.categoryRepo.FindByID(txCtx, categoryID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return &PersistenceError{Op: "load category", Err: findErr}
		}

		children, countErr := s.categoryRepo.CountChildren(txCtx, categoryID)
		if countErr != nil {
			return &PersistenceError{Op: "count child categories", Err: countErr}
		}
		if children > 0 {
			return fmt.Errorf("category %q has %d subcategories, delete them first", category.Name, children)
		}

		if deleteErr := s.categoryRepo.Delete(txCtx, categoryID); deleteErr != nil {
			return &PersistenceError{Op: "delete category", Err: deleteErr}
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteCategory, categoryID.String(), category.Name, nil)
	})
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list categories", Err: err}
	}
	return categories, nil
}

func (s *categoryService) GetCategoryTree(ctx context.Context) ([]*model.CategoryNode, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list categories", Err: err}
	}
	return BuildCategoryTree(categories), nil
}
