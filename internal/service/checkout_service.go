package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

type checkoutService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	now    func() time.Time
}

func NewCheckoutService(repo *repository.Repository, events EventBus, log *zap.Logger) *checkoutService {
	if events == nil {
		events = NopEventBus{}
	}
	return &checkoutService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Checkout converts the owner's cart into a paid order in a single
// transaction. Any stock shortfall rolls the whole order back.
func (s *checkoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCheckoutInput(&in); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		order *models.Order
		event OrderConfirmedEvent
	)

	err = s.repo.WithTx(func(tx *repository.Repository) error {
		items, err := tx.Carts.ListForOwner(ctx, owner)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var subtotal int64
		for i := range items {
			subtotal += int64(items[i].Quantity) * items[i].UnitPriceCents()
		}

		number, err := generateOrderNumber(now)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderNumber:      number,
			OrderDate:        now,
			Status:           models.OrderStatusPending,
			TotalAmountCents: subtotal,
			ShippingCents:    shippingFor(subtotal),
			ContactEmail:     in.Email,
			ContactFirstName: in.FirstName,
			ContactLastName:  in.LastName,
			ContactPhone:     in.Phone,
			ContactCity:      in.City,
			ContactAddress:   in.Address,
			ContactNotes:     in.Notes,
			UserID:           owner.UserID,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		eventLines := make([]OrderLineEvent, 0, len(items))

		// Products whose variant stock changed need their denormalized
		// total recomputed after the decrements.
		needReconcile := map[uuid.UUID]bool{}

		for i := range items {
			it := &items[i]
			unit := it.UnitPriceCents()
			orderItems = append(orderItems, models.OrderItem{
				OrderID:          order.ID,
				ProductID:        it.ProductID,
				ProductVariantID: it.ProductVariantID,
				Quantity:         it.Quantity,
				UnitPriceCents:   unit,
			})

			if it.ProductVariantID != nil {
				ok, err := tx.Variants.TryDecrementStock(ctx, *it.ProductVariantID, it.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return &InsufficientStockError{
						ProductName: it.Product.Name,
						Requested:   it.Quantity,
						Available:   it.AvailableStock(),
					}
				}
				needReconcile[it.ProductID] = true
			} else {
				ok, err := tx.Products.TryDecrementStock(ctx, it.ProductID, it.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return &InsufficientStockError{
						ProductName: it.Product.Name,
						Requested:   it.Quantity,
						Available:   it.AvailableStock(),
					}
				}
			}

			line := OrderLineEvent{
				ProductName:    it.Product.Name,
				Quantity:       it.Quantity,
				UnitPriceCents: unit,
				LineTotalCents: int64(it.Quantity) * unit,
			}
			if it.ProductVariant != nil {
				line.VariantSize = it.ProductVariant.Size
			}
			eventLines = append(eventLines, line)
		}

		if err := tx.OrderItems.BulkCreate(ctx, orderItems); err != nil {
			return err
		}
		for id := range needReconcile {
			if err := tx.Products.ReconcileStock(ctx, id); err != nil {
				return err
			}
		}

		if _, err := tx.Carts.ClearForOwner(ctx, owner); err != nil {
			return err
		}

		// Payment is simulated: the reference stands in for a gateway
		// transaction id.
		reference := "TEST_" + now.Format("20060102150405")
		if err := tx.Orders.MarkPaid(ctx, order.ID, reference, now); err != nil {
			return err
		}

		event = OrderConfirmedEvent{
			OrderID:         order.ID,
			OrderNumber:     order.OrderNumber,
			Email:           in.Email,
			FirstName:       in.FirstName,
			Lines:           eventLines,
			SubtotalCents:   subtotal,
			ShippingCents:   order.ShippingCents,
			GrandTotalCents: subtotal + order.ShippingCents,
			ConfirmedAt:     now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishOrderConfirmed(ctx, event); err != nil {
		s.log.Warn("order confirmation event not published",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}

	return &CheckoutResult{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SubtotalCents:   order.TotalAmountCents,
		ShippingCents:   order.ShippingCents,
		GrandTotalCents: order.GrandTotalCents(),
	}, nil
}

// generateOrderNumber builds ORD<yyyyMMddHHmmss><4 random digits>.
func generateOrderNumber(now time.Time) (string, error) {
	suffix, err := nanorand.Gen(4)
	if err != nil {
		return "", err
	}
	return "ORD" + now.Format("20060102150405") + suffix, nil
}

func validateCheckoutInput(in *CheckoutInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.Email == "" {
		return validationErr("email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return validationErr("email is not valid")
	}
	if in.FirstName == "" || in.LastName == "" {
		return validationErr("first and last name are required")
	}
	if in.City == "" || in.Address == "" {
		return validationErr("delivery city and address are required")
	}
	return nil
}
