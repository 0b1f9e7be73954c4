package repository

import (
	"context"
	"errors"
	"time"

	"shoestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// OrderStats feeds the admin dashboard.
type OrderStats struct {
	TotalOrders   int64
	PendingOrders int64
	PaidRevenue   int64 // grand total cents over paid, non-cancelled orders
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	// GetWithDetails loads items with their products and variants.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	MarkPaid(ctx context.Context, id uuid.UUID, reference string, at time.Time) error
	List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	Stats(ctx context.Context) (OrderStats, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.ProductVariant").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) MarkPaid(ctx context.Context, id uuid.UUID, reference string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_reference": reference,
			"payment_date":      at,
			"is_paid":           true,
			"status":            models.OrderStatusConfirmed,
		}).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Order
	err := q.Order("order_date DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Items").Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *orderRepo) Stats(ctx context.Context) (OrderStats, error) {
	var st OrderStats

	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&st.TotalOrders).Error; err != nil {
		return st, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&st.PendingOrders).Error; err != nil {
		return st, err
	}

	row := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount_cents + shipping_cents), 0)").
		Where("is_paid = true AND status NOT IN ?", []models.OrderStatus{
			models.OrderStatusCancelled, models.OrderStatusRefunded,
		}).
		Row()
	if err := row.Scan(&st.PaidRevenue); err != nil {
		return st, err
	}
	return st, nil
}
