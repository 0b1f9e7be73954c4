package dto

import (
	"shoestore/internal/service"

	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ProductID        uuid.UUID  `json:"product_id" binding:"required"`
	ProductVariantID *uuid.UUID `json:"product_variant_id"`
	Quantity         int32      `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}

type CartLineResponse struct {
	ID               uuid.UUID  `json:"id"`
	ProductID        uuid.UUID  `json:"product_id"`
	ProductVariantID *uuid.UUID `json:"product_variant_id,omitempty"`
	ProductName      string     `json:"product_name"`
	ProductImageURL  string     `json:"product_image_url,omitempty"`
	VariantSize      string     `json:"variant_size,omitempty"`
	Quantity         int32      `json:"quantity"`
	UnitPriceCents   int64      `json:"unit_price_cents"`
	LineTotalCents   int64      `json:"line_total_cents"`
	AvailableStock   int32      `json:"available_stock"`
}

type CartResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	ItemCount       int32              `json:"item_count"`
	SubtotalCents   int64              `json:"subtotal_cents"`
	ShippingCents   int64              `json:"shipping_cents"`
	GrandTotalCents int64              `json:"grand_total_cents"`
}

type CartSummaryResponse struct {
	ItemCount     int32 `json:"item_count"`
	SubtotalCents int64 `json:"subtotal_cents"`
}

func ToCartResponse(v *service.CartView) CartResponse {
	resp := CartResponse{
		Lines:           make([]CartLineResponse, 0, len(v.Lines)),
		ItemCount:       v.ItemCount,
		SubtotalCents:   v.SubtotalCents,
		ShippingCents:   v.ShippingCents,
		GrandTotalCents: v.GrandTotalCents,
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			ProductVariantID: l.ProductVariantID,
			ProductName:      l.ProductName,
			ProductImageURL:  l.ProductImageURL,
			VariantSize:      l.VariantSize,
			Quantity:         l.Quantity,
			UnitPriceCents:   l.UnitPriceCents,
			LineTotalCents:   l.LineTotalCents,
			AvailableStock:   l.AvailableStock,
		})
	}
	return resp
}

func ToCartSummaryResponse(s service.CartSummary) CartSummaryResponse {
	return CartSummaryResponse{ItemCount: s.ItemCount, SubtotalCents: s.SubtotalCents}
}
