package service

import (
	"context"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedTransitions is the forward-only happy path plus the two exits:
// cancel while the order has not shipped, refund at any point after
// confirmation.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusCancelled, models.OrderStatusRefunded},
	models.OrderStatusPreparing: {models.OrderStatusShipped, models.OrderStatusCancelled, models.OrderStatusRefunded},
	models.OrderStatusShipped:   {models.OrderStatusDelivered, models.OrderStatusRefunded},
	models.OrderStatusDelivered: {models.OrderStatusRefunded},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type orderService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) *orderService {
	if events == nil {
		events = NopEventBus{}
	}
	return &orderService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *orderService) MyOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Orders.List(ctx, toOrderListFilter(f, &uid))
}

func (s *orderService) MyOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.Orders.GetByIDForUser(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.Orders.GetWithDetails(ctx, id)
}

func (s *orderService) OrderConfirmation(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.repo.Orders.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if o.IsGuestOrder() {
		// Guest orders carry no owner id; the unguessable order id
		// itself is the lookup capability.
		return o, nil
	}

	uid, ok := UserIDFromContext(ctx)
	if ok && *o.UserID == uid {
		return o, nil
	}
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.Orders.List(ctx, toOrderListFilter(f, nil))
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	o, err := s.repo.Orders.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled, models.OrderStatusRefunded:
	default:
		return nil, validationErr("unknown order status")
	}

	var out *models.Order
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		o, err := tx.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if !transitionAllowed(o.Status, status) {
			return ErrInvalidTransition
		}
		if err := tx.Orders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		out, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
		OrderID:     out.ID,
		OrderNumber: out.OrderNumber,
		Email:       out.ContactEmail,
		Status:      string(out.Status),
		ChangedAt:   s.now(),
	}); err != nil {
		s.log.Warn("order status event not published",
			zap.String("order_number", out.OrderNumber),
			zap.Error(err))
	}
	return out, nil
}

func (s *orderService) Stats(ctx context.Context) (*DashboardStats, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	orderStats, err := s.repo.Orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.Products.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.Orders.List(ctx, repository.OrderListFilter{Limit: 5})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:    products,
		TotalOrders:      orderStats.TotalOrders,
		TotalUsers:       users,
		PendingOrders:    orderStats.PendingOrders,
		PaidRevenueCents: orderStats.PaidRevenue,
		RecentOrders:     recent,
	}, nil
}
