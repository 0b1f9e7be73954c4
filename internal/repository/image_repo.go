package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductImageRepo interface {
	Create(ctx context.Context, img *models.ProductImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int32) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productImageRepo struct{ db *gorm.DB }

func NewProductImageRepo(db *gorm.DB) ProductImageRepo { return &productImageRepo{db: db} }

func (r *productImageRepo) Create(ctx context.Context, img *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *productImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	var img models.ProductImage
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &img, err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var list []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&list).Error
	return list, err
}

func (r *productImageRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.ProductImage{}).
		Where("product_id = ?", productID).Count(&cnt).Error
	return cnt, err
}

func (r *productImageRepo) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int32) error {
	return r.db.WithContext(ctx).Model(&models.ProductImage{}).
		Where("id = ?", id).Update("display_order", order).Error
}

func (r *productImageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
