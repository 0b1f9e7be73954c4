package repository

import (
	"context"
	"errors"
	"strings"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortDiscount  = "discount"
)

type ProductListFilter struct {
	CategoryIDs   []uuid.UUID // category plus its subcategories
	Query         string      // by name/brand
	MinPriceCents *int64
	MaxPriceCents *int64
	Brand         string
	InStockOnly   bool
	IncludeHidden bool // admin: include inactive (deleted rows stay excluded)
	Sort          string
	Limit         int
	Offset        int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	ListBrands(ctx context.Context) ([]string, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)

	// TryDecrementStock atomically takes qty off the product stock
	// when enough remains; reports whether a row was updated.
	TryDecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
	// ReconcileStock re-sums stock_quantity over the product's active
	// variants. No-op when the product has no active variants.
	ReconcileStock(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ? AND is_deleted = false", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", "is_active = true").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		First(&p, "id = ? AND is_deleted = false", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_deleted = false")

	if !f.IncludeHidden {
		q = q.Where("is_active = true")
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where("lower(name) LIKE lower(?) OR lower(brand) LIKE lower(?)", like, like)
	}
	if f.MinPriceCents != nil {
		q = q.Where("list_price_cents >= ?", *f.MinPriceCents)
	}
	if f.MaxPriceCents != nil {
		q = q.Where("list_price_cents <= ?", *f.MaxPriceCents)
	}
	if b := strings.TrimSpace(f.Brand); b != "" {
		q = q.Where("lower(brand) = lower(?)", b)
	}
	if f.InStockOnly {
		q = q.Where("stock_quantity > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case SortPriceAsc:
		q = q.Order("list_price_cents ASC")
	case SortPriceDesc:
		q = q.Order("list_price_cents DESC")
	case SortDiscount:
		q = q.Where("discount_rate IS NOT NULL AND discount_rate > 0").
			Order("discount_rate DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	if err := q.Limit(f.Limit).Offset(f.Offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *productRepo) ListBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = true AND is_deleted = false").
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	return brands, err
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]any{"is_deleted": true, "is_active": false})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_deleted = false").Count(&cnt).Error
	return cnt, err
}

func (r *productRepo) TryDecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_quantity = stock_quantity - @q,
    updated_at = now()
WHERE id = @pid
  AND stock_quantity >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) ReconcileStock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE products p
SET stock_quantity = (
	SELECT COALESCE(SUM(v.stock_quantity), 0)
	FROM product_variants v
	WHERE v.product_id = p.id AND v.is_active = true
),
    updated_at = now()
WHERE p.id = @pid
  AND EXISTS (
	SELECT 1 FROM product_variants v
	WHERE v.product_id = p.id AND v.is_active = true
)
`, map[string]any{"pid": id}).Error
}
