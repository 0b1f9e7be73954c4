package service

import (
	"context"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

// Shipping is free above the threshold, flat otherwise.
const (
	freeShippingThresholdCents int64 = 50000
	flatShippingCents          int64 = 5000
)

// CartOwner identifies whose cart an operation touches: an
// authenticated user or a guest session, never both.
type CartOwner = repository.CartOwner

// ownerFromContext prefers the authenticated user over the guest
// session when both are present.
func ownerFromContext(ctx context.Context) (CartOwner, error) {
	if uid, ok := UserIDFromContext(ctx); ok {
		return CartOwner{UserID: &uid}, nil
	}
	if gid, ok := GuestSessionIDFromContext(ctx); ok && gid != "" {
		return CartOwner{GuestSessionID: &gid}, nil
	}
	return CartOwner{}, ErrNoCartOwner
}

type AddToCartInput struct {
	ProductID        uuid.UUID
	ProductVariantID *uuid.UUID
	Quantity         int32
}

// CartLine is a cart item enriched with the display fields and the
// resolved unit price.
type CartLine struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	ProductVariantID *uuid.UUID
	ProductName      string
	ProductImageURL  string
	VariantSize      string
	Quantity         int32
	UnitPriceCents   int64
	LineTotalCents   int64
	AvailableStock   int32
}

type CartView struct {
	Lines           []CartLine
	ItemCount       int32
	SubtotalCents   int64
	ShippingCents   int64
	GrandTotalCents int64
}

// CartSummary is what mutating operations return.
type CartSummary struct {
	ItemCount     int32
	SubtotalCents int64
}

type CartService interface {
	AddToCart(ctx context.Context, in AddToCartInput) (CartSummary, error)
	UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int32) (CartSummary, error)
	RemoveLine(ctx context.Context, lineID uuid.UUID) (CartSummary, error)
	ClearCart(ctx context.Context) (CartSummary, error)
	GetCart(ctx context.Context) (*CartView, error)
	MergeGuestCart(ctx context.Context, guestSessionID string, userID uuid.UUID) error
}

var _ CartService = (*cartService)(nil)

// shippingFor mirrors the storefront rule applied at checkout.
func shippingFor(subtotalCents int64) int64 {
	if subtotalCents > freeShippingThresholdCents {
		return 0
	}
	return flatShippingCents
}

func buildCartView(items []models.CartItem) *CartView {
	view := &CartView{Lines: make([]CartLine, 0, len(items))}
	for i := range items {
		it := &items[i]
		unit := it.UnitPriceCents()
		line := CartLine{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			ProductName:      it.Product.Name,
			ProductImageURL:  it.Product.ImageURL,
			Quantity:         it.Quantity,
			UnitPriceCents:   unit,
			LineTotalCents:   int64(it.Quantity) * unit,
			AvailableStock:   it.AvailableStock(),
		}
		if it.ProductVariant != nil {
			line.VariantSize = it.ProductVariant.Size
		}
		view.Lines = append(view.Lines, line)
		view.ItemCount += it.Quantity
		view.SubtotalCents += line.LineTotalCents
	}
	if len(view.Lines) > 0 {
		view.ShippingCents = shippingFor(view.SubtotalCents)
	}
	view.GrandTotalCents = view.SubtotalCents + view.ShippingCents
	return view
}
