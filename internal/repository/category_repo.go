package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// ListActive returns non-deleted active categories ordered for display.
	ListActive(ctx context.Context) ([]models.Category, error)
	// ListAll returns every non-deleted category (admin view).
	ListAll(ctx context.Context) ([]models.Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	// ExistsByNameAndParent detects duplicates among siblings,
	// excluding a given id (uuid.Nil to exclude nothing).
	ExistsByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID, excludeID uuid.UUID) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "id = ? AND is_deleted = false", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = true AND is_deleted = false").
		Order("display_order ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("display_order ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).
		Where("parent_category_id = ? AND is_deleted = false", parentID).
		Order("display_order ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) ExistsByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("lower(name) = lower(?) AND is_deleted = false", name)
	if parentID != nil {
		q = q.Where("parent_category_id = ?", *parentID)
	} else {
		q = q.Where("parent_category_id IS NULL")
	}
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]any{"is_deleted": true, "is_active": false})
	return tx.RowsAffected > 0, tx.Error
}
