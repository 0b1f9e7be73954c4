package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderLineEvent struct {
	ProductName    string `json:"product_name"`
	VariantSize    string `json:"variant_size,omitempty"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// OrderConfirmedEvent feeds the order-confirmation email.
type OrderConfirmedEvent struct {
	OrderID         uuid.UUID        `json:"order_id"`
	OrderNumber     string           `json:"order_number"`
	Email           string           `json:"email"`
	FirstName       string           `json:"first_name"`
	Lines           []OrderLineEvent `json:"lines"`
	SubtotalCents   int64            `json:"subtotal_cents"`
	ShippingCents   int64            `json:"shipping_cents"`
	GrandTotalCents int64            `json:"grand_total_cents"`
	ConfirmedAt     time.Time        `json:"confirmed_at"`
}

type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	ChangedAt   time.Time `json:"changed_at"`
}

// EventBus publishes order notification events. Publishing is
// best-effort: callers log failures and move on.
type EventBus interface {
	PublishOrderConfirmed(ctx context.Context, e OrderConfirmedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}

// NopEventBus drops every event; used when kafka is disabled.
type NopEventBus struct{}

func (NopEventBus) PublishOrderConfirmed(context.Context, OrderConfirmedEvent) error { return nil }
func (NopEventBus) PublishOrderStatusChanged(context.Context, OrderStatusChangedEvent) error {
	return nil
}
