package repository

import (
	"context"
	"errors"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartOwner identifies whose cart is being touched: an authenticated
// user or a guest session, never both.
type CartOwner struct {
	UserID         *uuid.UUID
	GuestSessionID *string
}

func (o CartOwner) IsGuest() bool { return o.UserID == nil }

func (o CartOwner) scope(q *gorm.DB) *gorm.DB {
	if o.UserID != nil {
		return q.Where("user_id = ?", *o.UserID)
	}
	return q.Where("guest_session_id = ?", *o.GuestSessionID)
}

type CartRepo interface {
	Create(ctx context.Context, item *models.CartItem) error
	// GetLine finds the owner's line for (product, variant); variantID
	// nil matches the bare-product line.
	GetLine(ctx context.Context, owner CartOwner, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error)
	// GetLineByID fetches a line scoped to the owner, with product and
	// variant loaded.
	GetLineByID(ctx context.Context, owner CartOwner, id uuid.UUID) (*models.CartItem, error)
	// ListForOwner returns the owner's lines with product and variant
	// loaded, oldest first.
	ListForOwner(ctx context.Context, owner CartOwner) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, qty int32) error
	Delete(ctx context.Context, owner CartOwner, id uuid.UUID) (bool, error)
	ClearForOwner(ctx context.Context, owner CartOwner) (int64, error)
	// Reassign moves a guest line to a user (merge on login).
	Reassign(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) GetLine(ctx context.Context, owner CartOwner, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error) {
	q := owner.scope(r.db.WithContext(ctx)).Where("product_id = ?", productID)
	if variantID != nil {
		q = q.Where("product_variant_id = ?", *variantID)
	} else {
		q = q.Where("product_variant_id IS NULL")
	}

	var item models.CartItem
	err := q.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartRepo) GetLineByID(ctx context.Context, owner CartOwner, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := owner.scope(r.db.WithContext(ctx)).
		Preload("Product").
		Preload("ProductVariant").
		First(&item, "cart_items.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartRepo) ListForOwner(ctx context.Context, owner CartOwner) ([]models.CartItem, error) {
	var list []models.CartItem
	err := owner.scope(r.db.WithContext(ctx)).
		Preload("Product").
		Preload("ProductVariant").
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int32) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", id).Update("quantity", qty).Error
}

func (r *cartRepo) Delete(ctx context.Context, owner CartOwner, id uuid.UUID) (bool, error) {
	tx := owner.scope(r.db.WithContext(ctx)).Delete(&models.CartItem{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartRepo) ClearForOwner(ctx context.Context, owner CartOwner) (int64, error) {
	tx := owner.scope(r.db.WithContext(ctx)).Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}

func (r *cartRepo) Reassign(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_id":          userID,
			"guest_session_id": nil,
		}).Error
}
