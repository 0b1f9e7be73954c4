package service

import (
	"context"
	"errors"
	"testing"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

func guestCtx(id string) context.Context {
	return WithGuestSessionID(context.Background(), id)
}

func TestOwnerFromContextPrefersUser(t *testing.T) {
	uid := uuid.New()
	ctx := WithGuestSessionID(WithUserID(context.Background(), uid), "guest-1")

	owner, err := ownerFromContext(ctx)
	if err != nil {
		t.Fatalf("ownerFromContext: %v", err)
	}
	if owner.UserID == nil || *owner.UserID != uid {
		t.Fatalf("owner = %+v, want user %s", owner, uid)
	}
	if owner.GuestSessionID != nil {
		t.Fatal("user owner must not carry a guest session")
	}

	if _, err := ownerFromContext(context.Background()); !errors.Is(err, ErrNoCartOwner) {
		t.Fatalf("empty context: got %v, want ErrNoCartOwner", err)
	}
}

func TestShippingRule(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 5000},
		{49999, 5000},
		{50000, 5000}, // free only strictly above the threshold
		{50001, 0},
		{200000, 0},
	}
	for _, tc := range cases {
		if got := shippingFor(tc.subtotal); got != tc.want {
			t.Fatalf("shippingFor(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestBuildCartView(t *testing.T) {
	items := []models.CartItem{
		{
			ID:       uuid.New(),
			Quantity: 2,
			Product:  models.Product{Name: "Runner", ListPriceCents: 20000, StockQuantity: 5},
		},
		{
			ID:             uuid.New(),
			Quantity:       1,
			Product:        models.Product{Name: "Loafer", ListPriceCents: 30000},
			ProductVariant: &models.ProductVariant{Size: "42", StockQuantity: 2, PriceOverrideCents: ptr64(25000)},
		},
	}

	view := buildCartView(items)
	if view.ItemCount != 3 {
		t.Fatalf("item count = %d, want 3", view.ItemCount)
	}
	if view.SubtotalCents != 65000 {
		t.Fatalf("subtotal = %d, want 65000", view.SubtotalCents)
	}
	if view.ShippingCents != 0 {
		t.Fatalf("shipping = %d, want free above threshold", view.ShippingCents)
	}
	if view.GrandTotalCents != 65000 {
		t.Fatalf("grand total = %d, want 65000", view.GrandTotalCents)
	}
	if view.Lines[1].VariantSize != "42" || view.Lines[1].UnitPriceCents != 25000 {
		t.Fatalf("variant line mismatch: %+v", view.Lines[1])
	}

	empty := buildCartView(nil)
	if empty.ShippingCents != 0 || empty.GrandTotalCents != 0 {
		t.Fatalf("empty cart totals: %+v", empty)
	}
}

func TestUpdateQuantityValidatesStock(t *testing.T) {
	lineID := uuid.New()
	repo := &repository.Repository{
		Carts: &MockCartRepo{
			GetLineByIDFunc: func(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (*models.CartItem, error) {
				return &models.CartItem{
					ID:       lineID,
					Quantity: 1,
					Product:  models.Product{Name: "Runner", StockQuantity: 3},
				}, nil
			},
		},
	}
	svc := NewCartService(repo)

	_, err := svc.UpdateQuantity(guestCtx("g-1"), lineID, 5)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if stockErr.ProductName != "Runner" || stockErr.Available != 3 {
		t.Fatalf("stock error detail mismatch: %+v", stockErr)
	}

	if _, err := svc.UpdateQuantity(guestCtx("g-1"), lineID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero quantity: got %v, want ErrValidation", err)
	}
}

func TestRemoveLineScopedToOwner(t *testing.T) {
	repo := &repository.Repository{
		Carts: &MockCartRepo{
			DeleteFunc: func(ctx context.Context, owner repository.CartOwner, id uuid.UUID) (bool, error) {
				// the repo reports no row for a foreign owner
				return false, nil
			},
		},
	}
	svc := NewCartService(repo)

	if _, err := svc.RemoveLine(guestCtx("g-1"), uuid.New()); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("got %v, want ErrCartItemNotFound", err)
	}
}

func ptr64(v int64) *int64 { return &v }
