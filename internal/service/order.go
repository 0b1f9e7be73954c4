package service

import (
	"context"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

type OrderFilter struct {
	Status   *models.OrderStatus
	Page     int
	PageSize int
}

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	TotalProducts    int64
	TotalOrders      int64
	TotalUsers       int64
	PendingOrders    int64
	PaidRevenueCents int64
	RecentOrders     []models.Order
}

type OrderService interface {
	// customer
	MyOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
	MyOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// OrderConfirmation is the post-checkout lookup, scoped to the
	// owner so guests can see their own order but nobody else's.
	OrderConfirmation(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// back office
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

var _ OrderService = (*orderService)(nil)

func toOrderListFilter(f OrderFilter, userID *uuid.UUID) repository.OrderListFilter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return repository.OrderListFilter{
		UserID: userID,
		Status: f.Status,
		Limit:  size,
		Offset: (page - 1) * size,
	}
}
