package dto

import (
	"time"

	"shoestore/internal/models"
	"shoestore/internal/service"

	"github.com/google/uuid"
)

type CategoryResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	DisplayOrder     int32      `json:"display_order"`
	ParentCategoryID *uuid.UUID `json:"parent_category_id,omitempty"`
	IsActive         bool       `json:"is_active"`
}

type CategoryNodeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		DisplayOrder:     c.DisplayOrder,
		ParentCategoryID: c.ParentCategoryID,
		IsActive:         c.IsActive,
	}
}

func ToCategoryTreeResponse(nodes []service.CategoryNode) []CategoryNodeResponse {
	out := make([]CategoryNodeResponse, 0, len(nodes))
	for i := range nodes {
		n := CategoryNodeResponse{
			CategoryResponse: ToCategoryResponse(&nodes[i].Category),
			Children:         make([]CategoryResponse, 0, len(nodes[i].Children)),
		}
		for j := range nodes[i].Children {
			n.Children = append(n.Children, ToCategoryResponse(&nodes[i].Children[j]))
		}
		out = append(out, n)
	}
	return out
}

type CreateCategoryRequest struct {
	Name             string     `json:"name" binding:"required"`
	DisplayOrder     int32      `json:"display_order"`
	ParentCategoryID *uuid.UUID `json:"parent_category_id"`
	IsActive         *bool      `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name             *string    `json:"name"`
	DisplayOrder     *int32     `json:"display_order"`
	ParentCategoryID *uuid.UUID `json:"parent_category_id"`
	ClearParent      bool       `json:"clear_parent"`
	IsActive         *bool      `json:"is_active"`
}

type VariantResponse struct {
	ID                 uuid.UUID `json:"id"`
	Size               string    `json:"size"`
	StockQuantity      int32     `json:"stock_quantity"`
	PriceOverrideCents *int64    `json:"price_override_cents,omitempty"`
	IsActive           bool      `json:"is_active"`
}

func ToVariantResponse(v *models.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:                 v.ID,
		Size:               v.Size,
		StockQuantity:      v.StockQuantity,
		PriceOverrideCents: v.PriceOverrideCents,
		IsActive:           v.IsActive,
	}
}

type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int32     `json:"display_order"`
}

type ProductResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Brand                string    `json:"brand"`
	CategoryID           uuid.UUID `json:"category_id"`
	ListPriceCents       int64     `json:"list_price_cents"`
	DiscountRate         *int32    `json:"discount_rate,omitempty"`
	DiscountedPriceCents *int64    `json:"discounted_price_cents,omitempty"`
	EffectivePriceCents  int64     `json:"effective_price_cents"`
	StockQuantity        int32     `json:"stock_quantity"`
	Color                string    `json:"color,omitempty"`
	AvailableSizes       string    `json:"available_sizes,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`

	Variants []VariantResponse `json:"variants,omitempty"`
	Images   []ImageResponse   `json:"images,omitempty"`
}

func ToProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Brand:                p.Brand,
		CategoryID:           p.CategoryID,
		ListPriceCents:       p.ListPriceCents,
		DiscountRate:         p.DiscountRate,
		DiscountedPriceCents: p.DiscountedPriceCents(),
		EffectivePriceCents:  p.EffectivePriceCents(),
		StockQuantity:        p.StockQuantity,
		Color:                p.Color,
		AvailableSizes:       p.AvailableSizes,
		ImageURL:             p.ImageURL,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
	}
	for i := range p.Variants {
		resp.Variants = append(resp.Variants, ToVariantResponse(&p.Variants[i]))
	}
	for i := range p.Images {
		img := &p.Images[i]
		resp.Images = append(resp.Images, ImageResponse{
			ID:           img.ID,
			ImageURL:     img.ImageURL,
			DisplayOrder: img.DisplayOrder,
		})
	}
	return resp
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

func ToProductListResponse(products []models.Product, total int64) ProductListResponse {
	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
	}
	for i := range products {
		resp.Products = append(resp.Products, ToProductResponse(&products[i]))
	}
	return resp
}

type CreateProductRequest struct {
	Name           string    `json:"name" binding:"required"`
	Description    string    `json:"description"`
	Brand          string    `json:"brand" binding:"required"`
	CategoryID     uuid.UUID `json:"category_id" binding:"required"`
	ListPriceCents int64     `json:"list_price_cents" binding:"min=0"`
	DiscountRate   *int32    `json:"discount_rate"`
	StockQuantity  int32     `json:"stock_quantity" binding:"min=0"`
	Color          string    `json:"color"`
	AvailableSizes string    `json:"available_sizes"`
	ImageURL       string    `json:"image_url"`
	IsActive       *bool     `json:"is_active"`
}

type UpdateProductRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Brand          *string    `json:"brand"`
	CategoryID     *uuid.UUID `json:"category_id"`
	ListPriceCents *int64     `json:"list_price_cents"`
	DiscountRate   *int32     `json:"discount_rate"`
	ClearDiscount  bool       `json:"clear_discount"`
	StockQuantity  *int32     `json:"stock_quantity"`
	Color          *string    `json:"color"`
	AvailableSizes *string    `json:"available_sizes"`
	ImageURL       *string    `json:"image_url"`
	IsActive       *bool      `json:"is_active"`
}

type CreateVariantRequest struct {
	Size               string `json:"size" binding:"required"`
	StockQuantity      int32  `json:"stock_quantity" binding:"min=0"`
	PriceOverrideCents *int64 `json:"price_override_cents"`
	IsActive           *bool  `json:"is_active"`
}

type UpdateVariantRequest struct {
	Size               *string `json:"size"`
	StockQuantity      *int32  `json:"stock_quantity"`
	PriceOverrideCents *int64  `json:"price_override_cents"`
	ClearPriceOverride bool    `json:"clear_price_override"`
	IsActive           *bool   `json:"is_active"`
}

type AddImageRequest struct {
	ImageURL     string `json:"image_url" binding:"required"`
	DisplayOrder int32  `json:"display_order"`
}

type ReorderImageRequest struct {
	DisplayOrder int32 `json:"display_order"`
}

type SliderResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int32     `json:"display_order"`
	IsActive     bool      `json:"is_active"`
}

func ToSliderResponse(s *models.Slider) SliderResponse {
	return SliderResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		ImageURL:     s.ImageURL,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
	}
}

type CreateSliderRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url" binding:"required"`
	DisplayOrder int32  `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateSliderRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int32  `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}
