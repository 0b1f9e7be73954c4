package service

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutInput is the contact/delivery snapshot captured with every
// order, guests and authenticated customers alike.
type CheckoutInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	City      string
	Address   string
	Notes     string
}

type CheckoutResult struct {
	OrderID         uuid.UUID
	OrderNumber     string
	SubtotalCents   int64
	ShippingCents   int64
	GrandTotalCents int64
}

type CheckoutService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

var _ CheckoutService = (*checkoutService)(nil)
