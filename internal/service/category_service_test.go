package service

import (
	"context"
	"errors"
	"testing"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mockCategoryRepo is map-backed with child counting.
type mockCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == id {
			count++
		}
	}
	return count, nil
}

func newCategoryService(repo *mockCategoryRepo) CategoryService {
	return NewCategoryService(repo, newMockAuditRepo(), &mockTxManager{})
}

func TestCreateCategoryParentMustExist(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newCategoryService(repo)

	ghost := uuid.NewString()
	_, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{
		Name:     "Gạch ốp lát",
		ParentID: &ghost,
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for missing parent, got %v", err)
	}
}

func TestCreateCategoryUniqueName(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newCategoryService(repo)

	if _, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Nội thất"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Nội thất"}); err == nil {
		t.Fatal("duplicate name should be refused")
	}
}

func TestDeleteCategoryWithChildrenRefused(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newCategoryService(repo)

	parent, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Vật liệu"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	parentID := parent.ID.String()
	if _, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Gạch", ParentID: &parentID}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := svc.DeleteCategory(context.Background(), uuid.NewString(), parentID); err == nil {
		t.Fatal("deleting a category with children should fail")
	}
	if _, err := repo.FindByID(context.Background(), parent.ID); err != nil {
		t.Fatal("refused delete must leave the category in place")
	}
}

func TestDeleteLeafCategory(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newCategoryService(repo)

	leaf, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Sơn"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteCategory(context.Background(), uuid.NewString(), leaf.ID.String()); err != nil {
		t.Fatalf("delete leaf: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), leaf.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatal("leaf should be gone")
	}
}

func TestGetCategoryTreeBuildsForest(t *testing.T) {
	repo := newMockCategoryRepo()
	svc := newCategoryService(repo)

	root, _ := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Vật liệu"})
	rootID := root.ID.String()
	if _, err := svc.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryDTO{Name: "Gạch", ParentID: &rootID}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	forest, err := svc.GetCategoryTree(context.Background())
	if err != nil {
		t.Fatalf("GetCategoryTree: %v", err)
	}
	if len(forest) != 1 {
		t.Fatalf("expected single root, got %d", len(forest))
	}
	if len(forest[0].SubCategories) != 1 || forest[0].SubCategories[0].Name != "Gạch" {
		t.Fatalf("child not nested: %+v", forest[0])
	}
}
