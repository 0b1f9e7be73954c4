package dto

import (
	"time"

	"shoestore/internal/models"
	"shoestore/internal/service"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	City      string `json:"city" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Notes     string `json:"notes"`
}

type CheckoutResponse struct {
	OrderID         uuid.UUID `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	ShippingCents   int64     `json:"shipping_cents"`
	GrandTotalCents int64     `json:"grand_total_cents"`
}

func ToCheckoutResponse(r *service.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		OrderID:         r.OrderID,
		OrderNumber:     r.OrderNumber,
		SubtotalCents:   r.SubtotalCents,
		ShippingCents:   r.ShippingCents,
		GrandTotalCents: r.GrandTotalCents,
	}
}

type OrderItemResponse struct {
	ID               uuid.UUID  `json:"id"`
	ProductID        uuid.UUID  `json:"product_id"`
	ProductVariantID *uuid.UUID `json:"product_variant_id,omitempty"`
	ProductName      string     `json:"product_name,omitempty"`
	VariantSize      string     `json:"variant_size,omitempty"`
	Quantity         int32      `json:"quantity"`
	UnitPriceCents   int64      `json:"unit_price_cents"`
	LineTotalCents   int64      `json:"line_total_cents"`
}

type OrderResponse struct {
	ID               uuid.UUID  `json:"id"`
	OrderNumber      string     `json:"order_number"`
	OrderDate        time.Time  `json:"order_date"`
	Status           string     `json:"status"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	ShippingCents    int64      `json:"shipping_cents"`
	GrandTotalCents  int64      `json:"grand_total_cents"`
	IsPaid           bool       `json:"is_paid"`
	PaymentReference *string    `json:"payment_reference,omitempty"`
	PaymentDate      *time.Time `json:"payment_date,omitempty"`

	ContactEmail     string `json:"contact_email,omitempty"`
	ContactFirstName string `json:"contact_first_name,omitempty"`
	ContactLastName  string `json:"contact_last_name,omitempty"`
	ContactPhone     string `json:"contact_phone,omitempty"`
	ContactCity      string `json:"contact_city,omitempty"`
	ContactAddress   string `json:"contact_address,omitempty"`
	ContactNotes     string `json:"contact_notes,omitempty"`

	Items []OrderItemResponse `json:"items,omitempty"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		OrderDate:        o.OrderDate,
		Status:           string(o.Status),
		TotalAmountCents: o.TotalAmountCents,
		ShippingCents:    o.ShippingCents,
		GrandTotalCents:  o.GrandTotalCents(),
		IsPaid:           o.IsPaid,
		PaymentReference: o.PaymentReference,
		PaymentDate:      o.PaymentDate,
		ContactEmail:     o.ContactEmail,
		ContactFirstName: o.ContactFirstName,
		ContactLastName:  o.ContactLastName,
		ContactPhone:     o.ContactPhone,
		ContactCity:      o.ContactCity,
		ContactAddress:   o.ContactAddress,
		ContactNotes:     o.ContactNotes,
	}
	for i := range o.Items {
		it := &o.Items[i]
		item := OrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			ProductName:      it.Product.Name,
			Quantity:         it.Quantity,
			UnitPriceCents:   it.UnitPriceCents,
			LineTotalCents:   it.LineTotalCents(),
		}
		if it.ProductVariant != nil {
			item.VariantSize = it.ProductVariant.Size
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

func ToOrderListResponse(orders []models.Order, total int64) OrderListResponse {
	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  total,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, ToOrderResponse(&orders[i]))
	}
	return resp
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type DashboardResponse struct {
	TotalProducts    int64           `json:"total_products"`
	TotalOrders      int64           `json:"total_orders"`
	TotalUsers       int64           `json:"total_users"`
	PendingOrders    int64           `json:"pending_orders"`
	PaidRevenueCents int64           `json:"paid_revenue_cents"`
	RecentOrders     []OrderResponse `json:"recent_orders"`
}

func ToDashboardResponse(s *service.DashboardStats) DashboardResponse {
	resp := DashboardResponse{
		TotalProducts:    s.TotalProducts,
		TotalOrders:      s.TotalOrders,
		TotalUsers:       s.TotalUsers,
		PendingOrders:    s.PendingOrders,
		PaidRevenueCents: s.PaidRevenueCents,
		RecentOrders:     make([]OrderResponse, 0, len(s.RecentOrders)),
	}
	for i := range s.RecentOrders {
		resp.RecentOrders = append(resp.RecentOrders, ToOrderResponse(&s.RecentOrders[i]))
	}
	return resp
}
