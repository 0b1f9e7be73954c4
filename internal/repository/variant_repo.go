package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantRepo interface {
	Create(ctx context.Context, v *models.ProductVariant) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	// GetForProduct fetches the variant only when it belongs to the
	// given product.
	GetForProduct(ctx context.Context, id, productID uuid.UUID) (*models.ProductVariant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, onlyActive bool) ([]models.ProductVariant, error)
	ExistsSize(ctx context.Context, productID uuid.UUID, size string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// TryDecrementStock: atomic conditional decrement, see ProductRepo.
	TryDecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepo(db *gorm.DB) VariantRepo { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductVariant{}).Where("id = ?", id).Updates(fields).Error
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) GetForProduct(ctx context.Context, id, productID uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	err := r.db.WithContext(ctx).First(&v, "id = ? AND product_id = ?", id, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID uuid.UUID, onlyActive bool) ([]models.ProductVariant, error) {
	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if onlyActive {
		q = q.Where("is_active = true")
	}
	var list []models.ProductVariant
	err := q.Order("size ASC").Find(&list).Error
	return list, err
}

func (r *variantRepo) ExistsSize(ctx context.Context, productID uuid.UUID, size string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("product_id = ? AND lower(size) = lower(?)", productID, size)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func (r *variantRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ProductVariant{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *variantRepo) TryDecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_variants
SET stock_quantity = stock_quantity - @q,
    updated_at = now()
WHERE id = @vid
  AND stock_quantity >= @q
`, map[string]any{
		"vid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
