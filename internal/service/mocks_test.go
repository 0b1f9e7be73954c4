package service

import (
	"context"
	"errors"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

// Mocks follow the Func-field pattern: only the behavior a test cares
// about gets wired, everything else answers a zero value.

type MockCategoryRepo struct {
	CreateFunc                func(ctx context.Context, c *models.Category) error
	UpdateFieldsFunc          func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListActiveFunc            func(ctx context.Context) ([]models.Category, error)
	ListAllFunc               func(ctx context.Context) ([]models.Category, error)
	ListChildrenFunc          func(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	ExistsByNameAndParentFunc func(ctx context.Context, name string, parentID *uuid.UUID, excludeID uuid.UUID) (bool, error)
	SoftDeleteFunc            func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListActive(ctx context.Context) ([]models.Category, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListAll(ctx context.Context) ([]models.Category, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	if m.ListChildrenFunc != nil {
		return m.ListChildrenFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ExistsByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID, excludeID uuid.UUID) (bool, error) {
	if m.ExistsByNameAndParentFunc != nil {
		return m.ExistsByNameAndParentFunc(ctx, name, parentID, excludeID)
	}
	return false, nil
}

func (m *MockCategoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return false, nil
}

type MockProductRepo struct {
	CreateFunc            func(ctx context.Context, p *models.Product) error
	UpdateFieldsFunc      func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetWithDetailsFunc    func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc              func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	ListBrandsFunc        func(ctx context.Context) ([]string, error)
	SoftDeleteFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
	CountFunc             func(ctx context.Context) (int64, error)
	TryDecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
	ReconcileStockFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetWithDetailsFunc != nil {
		return m.GetWithDetailsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) ListBrands(ctx context.Context) ([]string, error) {
	if m.ListBrandsFunc != nil {
		return m.ListBrandsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockProductRepo) TryDecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	if m.TryDecrementStockFunc != nil {
		return m.TryDecrementStockFunc(ctx, id, qty)
	}
	return false, nil
}

func (m *MockProductRepo) ReconcileStock(ctx context.Context, id uuid.UUID) error {
	if m.ReconcileStockFunc != nil {
		return m.ReconcileStockFunc(ctx, id)
	}
	return nil
}

type MockCartRepo struct {
	CreateFunc         func(ctx context.Context, item *models.CartItem) error
	GetLineFunc        func(ctx context.Context, owner repository.CartOwner, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error)
	GetLineByIDFunc    func(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (*models.CartItem, error)
	ListForOwnerFunc   func(ctx context.Context, owner repository.CartOwner) ([]models.CartItem, error)
	UpdateQuantityFunc func(ctx context.Context, id uuid.UUID, qty int32) error
	DeleteFunc         func(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (bool, error)
	ClearForOwnerFunc  func(ctx context.Context, owner repository.CartOwner) (int64, error)
	ReassignFunc       func(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

func (m *MockCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockCartRepo) GetLine(ctx context.Context, owner repository.CartOwner, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error) {
	if m.GetLineFunc != nil {
		return m.GetLineFunc(ctx, owner, productID, variantID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetLineByID(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (*models.CartItem, error) {
	if m.GetLineByIDFunc != nil {
		return m.GetLineByIDFunc(ctx, owner, id)
	}
	return nil, nil
}

func (m *MockCartRepo) ListForOwner(ctx context.Context, owner repository.CartOwner) ([]models.CartItem, error) {
	if m.ListForOwnerFunc != nil {
		return m.ListForOwnerFunc(ctx, owner)
	}
	return nil, nil
}

func (m *MockCartRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int32) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, qty)
	}
	return nil
}

func (m *MockCartRepo) Delete(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, id)
	}
	return false, nil
}

func (m *MockCartRepo) ClearForOwner(ctx context.Context, owner repository.CartOwner) (int64, error) {
	if m.ClearForOwnerFunc != nil {
		return m.ClearForOwnerFunc(ctx, owner)
	}
	return 0, nil
}

func (m *MockCartRepo) Reassign(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if m.ReassignFunc != nil {
		return m.ReassignFunc(ctx, id, userID)
	}
	return nil
}

type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *models.User) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	UpdateRoleFunc    func(ctx context.Context, id uuid.UUID, role models.Role) (bool, error)
	ListFunc          func(ctx context.Context, f repository.UserListFilter) ([]models.User, int64, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return false, nil
}

func (m *MockUserRepo) List(ctx context.Context, f repository.UserListFilter) ([]models.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockCartService is for account tests that only care whether the
// merge was invoked.
type MockCartService struct {
	CartService
	MergeGuestCartFunc func(ctx context.Context, guestSessionID string, userID uuid.UUID) error
}

func (m *MockCartService) MergeGuestCart(ctx context.Context, guestSessionID string, userID uuid.UUID) error {
	if m.MergeGuestCartFunc != nil {
		return m.MergeGuestCartFunc(ctx, guestSessionID, userID)
	}
	return nil
}

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (fakeHasher) Compare(hash, password string) bool   { return hash == "hash:"+password }

type fakeTokens struct{}

func (fakeTokens) SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	return "token-" + sub.String(), time.Now().Add(ttl), nil
}

func (fakeTokens) ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error) {
	return nil, errors.New("not implemented")
}
