package service

import (
	"context"
	"errors"
	"testing"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

func staffCtx() context.Context {
	ctx := WithUserID(context.Background(), uuid.New())
	return WithRole(ctx, models.RoleEmployee)
}

func TestCheckNoCycle(t *testing.T) {
	// a -> b -> c, reparenting a under c must be rejected
	aID, bID, cID := uuid.New(), uuid.New(), uuid.New()
	cats := map[uuid.UUID]*models.Category{
		aID: {ID: aID},
		bID: {ID: bID, ParentCategoryID: &aID},
		cID: {ID: cID, ParentCategoryID: &bID},
	}

	repo := &repository.Repository{
		Categories: &MockCategoryRepo{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
				return cats[id], nil
			},
		},
	}
	svc := NewCatalogService(repo)

	if err := svc.checkNoCycle(context.Background(), aID, cID); !errors.Is(err, ErrCategoryCycle) {
		t.Fatalf("reparent under descendant: got %v, want ErrCategoryCycle", err)
	}
	if err := svc.checkNoCycle(context.Background(), aID, aID); !errors.Is(err, ErrCategoryCycle) {
		t.Fatalf("self-parent: got %v, want ErrCategoryCycle", err)
	}
	if err := svc.checkNoCycle(context.Background(), cID, aID); err != nil {
		t.Fatalf("valid reparent: got %v", err)
	}
}

func TestUpdateCategoryRejectsCycleBeforeWrite(t *testing.T) {
	aID, bID := uuid.New(), uuid.New()
	cats := map[uuid.UUID]*models.Category{
		aID: {ID: aID, Name: "Men"},
		bID: {ID: bID, Name: "Sneakers", ParentCategoryID: &aID},
	}

	wrote := false
	repo := &repository.Repository{
		Categories: &MockCategoryRepo{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
				return cats[id], nil
			},
			UpdateFieldsFunc: func(ctx context.Context, id uuid.UUID, fields map[string]any) error {
				wrote = true
				return nil
			},
		},
	}
	svc := NewCatalogService(repo)

	_, err := svc.UpdateCategory(staffCtx(), aID, CategoryPatch{ParentCategoryID: &bID})
	if !errors.Is(err, ErrCategoryCycle) {
		t.Fatalf("got %v, want ErrCategoryCycle", err)
	}
	if wrote {
		t.Fatal("cycle must be rejected before any write")
	}
}

func TestCategoryTree(t *testing.T) {
	mainID, subID := uuid.New(), uuid.New()
	repo := &repository.Repository{
		Categories: &MockCategoryRepo{
			ListActiveFunc: func(ctx context.Context) ([]models.Category, error) {
				return []models.Category{
					{ID: mainID, Name: "Men"},
					{ID: subID, Name: "Sneakers", ParentCategoryID: &mainID},
				}, nil
			},
		},
	}
	svc := NewCatalogService(repo)

	nodes, err := svc.CategoryTree(context.Background())
	if err != nil {
		t.Fatalf("CategoryTree: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("roots = %d, want 1", len(nodes))
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].ID != subID {
		t.Fatalf("children mismatch: %+v", nodes[0].Children)
	}
}

func TestGetProductHidesInactive(t *testing.T) {
	id := uuid.New()
	repo := &repository.Repository{
		Products: &MockProductRepo{
			GetWithDetailsFunc: func(ctx context.Context, got uuid.UUID) (*models.Product, error) {
				return &models.Product{ID: id, Name: "Retired", IsActive: false}, nil
			},
		},
	}
	svc := NewCatalogService(repo)

	if _, err := svc.GetProduct(context.Background(), id); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product: got %v, want ErrProductNotFound", err)
	}
}

func TestCatalogAdminRequiresStaff(t *testing.T) {
	svc := NewCatalogService(&repository.Repository{Categories: &MockCategoryRepo{}})

	if _, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "x"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous: got %v, want ErrUnauthorized", err)
	}

	ctx := WithRole(WithUserID(context.Background(), uuid.New()), models.RoleCustomer)
	if _, err := svc.CreateCategory(ctx, CategoryInput{Name: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("customer: got %v, want ErrForbidden", err)
	}
}

func TestReorderImageChecksOwnership(t *testing.T) {
	productID, otherProduct := uuid.New(), uuid.New()
	imageID := uuid.New()
	repo := &repository.Repository{
		Images: &mockImageRepo{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
				return &models.ProductImage{ID: imageID, ProductID: otherProduct}, nil
			},
		},
	}
	svc := NewCatalogService(repo)

	err := svc.ReorderProductImage(staffCtx(), productID, imageID, 2)
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("foreign image: got %v, want ErrImageNotFound", err)
	}
}

type mockImageRepo struct {
	CreateFunc             func(ctx context.Context, img *models.ProductImage) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*models.ProductImage, error)
	ListByProductFunc      func(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	CountByProductFunc     func(ctx context.Context, productID uuid.UUID) (int64, error)
	UpdateDisplayOrderFunc func(ctx context.Context, id uuid.UUID, order int32) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockImageRepo) Create(ctx context.Context, img *models.ProductImage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, img)
	}
	return nil
}

func (m *mockImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *mockImageRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	if m.CountByProductFunc != nil {
		return m.CountByProductFunc(ctx, productID)
	}
	return 0, nil
}

func (m *mockImageRepo) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int32) error {
	if m.UpdateDisplayOrderFunc != nil {
		return m.UpdateDisplayOrderFunc(ctx, id, order)
	}
	return nil
}

func (m *mockImageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}
