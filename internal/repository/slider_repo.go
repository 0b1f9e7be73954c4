package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SliderRepo interface {
	Create(ctx context.Context, s *models.Slider) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Slider, error)
	ListActive(ctx context.Context) ([]models.Slider, error)
	ListAll(ctx context.Context) ([]models.Slider, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type sliderRepo struct{ db *gorm.DB }

func NewSliderRepo(db *gorm.DB) SliderRepo { return &sliderRepo{db: db} }

func (r *sliderRepo) Create(ctx context.Context, s *models.Slider) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sliderRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Slider{}).Where("id = ?", id).Updates(fields).Error
}

func (r *sliderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Slider, error) {
	var s models.Slider
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *sliderRepo) ListActive(ctx context.Context) ([]models.Slider, error) {
	var list []models.Slider
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("display_order ASC").
		Find(&list).Error
	return list, err
}

func (r *sliderRepo) ListAll(ctx context.Context) ([]models.Slider, error) {
	var list []models.Slider
	err := r.db.WithContext(ctx).Order("display_order ASC").Find(&list).Error
	return list, err
}

func (r *sliderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Slider{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
