package service

import (
	"context"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

const maxProductImages = 3

type CategoryInput struct {
	Name             string
	DisplayOrder     int32
	ParentCategoryID *uuid.UUID
	IsActive         bool
}

type CategoryPatch struct {
	Name             *string
	DisplayOrder     *int32
	ParentCategoryID *uuid.UUID
	ClearParent      bool
	IsActive         *bool
}

// CategoryNode is a category with its direct children, as served to
// the storefront menu.
type CategoryNode struct {
	Category models.Category
	Children []models.Category
}

type ProductInput struct {
	Name           string
	Description    string
	Brand          string
	CategoryID     uuid.UUID
	ListPriceCents int64
	DiscountRate   *int32
	StockQuantity  int32
	Color          string
	AvailableSizes string
	ImageURL       string
	IsActive       bool
}

type ProductPatch struct {
	Name           *string
	Description    *string
	Brand          *string
	CategoryID     *uuid.UUID
	ListPriceCents *int64
	DiscountRate   *int32
	ClearDiscount  bool
	StockQuantity  *int32
	Color          *string
	AvailableSizes *string
	ImageURL       *string
	IsActive       *bool
}

// ProductFilter is the storefront search criteria. CategoryID expands
// to the category plus its direct subcategories.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	Query         string
	MinPriceCents *int64
	MaxPriceCents *int64
	Brand         string
	InStockOnly   bool
	Sort          string
	Page          int
	PageSize      int
}

type VariantInput struct {
	Size               string
	StockQuantity      int32
	PriceOverrideCents *int64
	IsActive           bool
}

type VariantPatch struct {
	Size               *string
	StockQuantity      *int32
	PriceOverrideCents *int64
	ClearPriceOverride bool
	IsActive           *bool
}

type SliderInput struct {
	Title        string
	Description  string
	ImageURL     string
	DisplayOrder int32
	IsActive     bool
}

type SliderPatch struct {
	Title        *string
	Description  *string
	ImageURL     *string
	DisplayOrder *int32
	IsActive     *bool
}

type CatalogService interface {
	// storefront
	CategoryTree(ctx context.Context) ([]CategoryNode, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBrands(ctx context.Context) ([]string, error)
	ListSliders(ctx context.Context) ([]models.Slider, error)

	// back office: categories
	ListAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// back office: products
	ListAllProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// back office: variants
	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
	CreateVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*models.ProductVariant, error)
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, patch VariantPatch) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error

	// back office: images
	AddProductImage(ctx context.Context, productID uuid.UUID, imageURL string, displayOrder int32) (*models.ProductImage, error)
	ReorderProductImage(ctx context.Context, productID, imageID uuid.UUID, displayOrder int32) error
	DeleteProductImage(ctx context.Context, productID, imageID uuid.UUID) error

	// back office: sliders
	ListAllSliders(ctx context.Context) ([]models.Slider, error)
	CreateSlider(ctx context.Context, in SliderInput) (*models.Slider, error)
	UpdateSlider(ctx context.Context, id uuid.UUID, patch SliderPatch) (*models.Slider, error)
	DeleteSlider(ctx context.Context, id uuid.UUID) error
}

var _ CatalogService = (*catalogService)(nil)

func toRepoFilter(f ProductFilter, categoryIDs []uuid.UUID, includeHidden bool) repository.ProductListFilter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return repository.ProductListFilter{
		CategoryIDs:   categoryIDs,
		Query:         f.Query,
		MinPriceCents: f.MinPriceCents,
		MaxPriceCents: f.MaxPriceCents,
		Brand:         f.Brand,
		InStockOnly:   f.InStockOnly,
		IncludeHidden: includeHidden,
		Sort:          f.Sort,
		Limit:         size,
		Offset:        (page - 1) * size,
	}
}
