package service

import (
	"context"
	"errors"
	"testing"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newProductFixture(t *testing.T) (ProductService, *mockProductRepo, *mockCategoryRepo) {
	t.Helper()
	products := newMockProductRepo()
	categories := newMockCategoryRepo()
	svc := NewProductService(products, categories, newMockAuditRepo(), &mockTxManager{})
	return svc, products, categories
}

func TestCreateProductValidatesCategoryIDs(t *testing.T) {
	svc, _, categories := newProductFixture(t)

	known := &model.Category{ID: uuid.New(), Name: "Gạch"}
	if err := categories.Create(context.Background(), known); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	_, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:        "Gạch ốp lát 60x60",
		Price:       decimal.NewFromInt(120000),
		Stock:       10,
		CategoryIDs: []string{known.ID.String(), uuid.NewString()},
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for unknown category id, got %v", err)
	}

	product, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:        "Gạch ốp lát 60x60",
		Price:       decimal.NewFromInt(120000),
		Stock:       10,
		CategoryIDs: []string{known.ID.String()},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Status != model.ProductStatusActive {
		t.Errorf("new product status = %q, want active", product.Status)
	}
}

func TestCreateProductRejectsNegativeValues(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	if _, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:  "Bad price",
		Price: decimal.NewFromInt(-1),
	}); err == nil {
		t.Error("negative price should be refused")
	}

	if _, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:  "Bad stock",
		Price: decimal.NewFromInt(10),
		Stock: -5,
	}); err == nil {
		t.Error("negative stock should be refused")
	}
}

func TestSetProductStatus(t *testing.T) {
	svc, products, _ := newProductFixture(t)

	created, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:  "Sơn nội thất",
		Price: decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	updated, err := svc.SetProductStatus(context.Background(), uuid.NewString(), created.ID.String(), model.ProductStatusInactive)
	if err != nil {
		t.Fatalf("SetProductStatus: %v", err)
	}
	if updated.Status != model.ProductStatusInactive {
		t.Errorf("status = %q, want inactive", updated.Status)
	}

	stored, _ := products.FindByID(context.Background(), created.ID)
	if stored.Status != model.ProductStatusInactive {
		t.Errorf("persisted status = %q, want inactive", stored.Status)
	}

	if _, err := svc.SetProductStatus(context.Background(), uuid.NewString(), created.ID.String(), "archived"); err == nil {
		t.Error("unknown status should be refused")
	}
}

func TestUpdateProductPartial(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	created, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductDTO{
		Name:  "Gạch ốp lát",
		Price: decimal.NewFromInt(120000),
		Stock: 7,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	newPrice := decimal.NewFromInt(99000)
	updated, err := svc.UpdateProduct(context.Background(), uuid.NewString(), created.ID.String(), UpdateProductDTO{
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("price = %s, want %s", updated.Price, newPrice)
	}
	if updated.Stock != 7 || updated.Name != "Gạch ốp lát" {
		t.Errorf("unset fields must be preserved: %+v", updated)
	}
}

func TestCreateRequestInactiveProductRefused(t *testing.T) {
	f := newReplenishmentFixture(t, 10)

	if err := f.products.UpdateStatus(context.Background(), f.productID, model.ProductStatusInactive); err != nil {
		t.Fatalf("deactivate product: %v", err)
	}

	_, err := f.svc.CreateRequest(context.Background(), uuid.NewString(), CreateImportRequestDTO{
		VendorID:  f.vendorID.String(),
		ProductID: f.productID.String(),
		Quantity:  1,
	})
	if err == nil {
		t.Fatal("requests against inactive products should be refused")
	}
}
