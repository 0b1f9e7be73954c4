package service

import (
	"context"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

type cartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) *cartService {
	return &cartService{repo: repo}
}

func (s *cartService) AddToCart(ctx context.Context, in AddToCartInput) (CartSummary, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return CartSummary{}, err
	}
	if in.Quantity < 1 {
		return CartSummary{}, validationErr("quantity must be at least 1")
	}

	product, err := s.repo.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return CartSummary{}, err
	}
	if product == nil || !product.IsActive {
		return CartSummary{}, ErrProductNotFound
	}

	available := product.StockQuantity
	if in.ProductVariantID != nil {
		variant, err := s.repo.Variants.GetForProduct(ctx, *in.ProductVariantID, in.ProductID)
		if err != nil {
			return CartSummary{}, err
		}
		if variant == nil || !variant.IsActive {
			return CartSummary{}, ErrVariantNotFound
		}
		available = variant.StockQuantity
	}

	err = s.repo.WithTx(func(tx *repository.Repository) error {
		line, err := tx.Carts.GetLine(ctx, owner, in.ProductID, in.ProductVariantID)
		if err != nil {
			return err
		}

		requested := in.Quantity
		if line != nil {
			requested += line.Quantity
		}
		if requested > available {
			return &InsufficientStockError{
				ProductName: product.Name,
				Requested:   requested,
				Available:   available,
			}
		}

		if line != nil {
			return tx.Carts.UpdateQuantity(ctx, line.ID, requested)
		}
		item := &models.CartItem{
			ProductID:        in.ProductID,
			ProductVariantID: in.ProductVariantID,
			Quantity:         in.Quantity,
			UserID:           owner.UserID,
			GuestSessionID:   owner.GuestSessionID,
		}
		return tx.Carts.Create(ctx, item)
	})
	if err != nil {
		return CartSummary{}, err
	}
	return s.summary(ctx, owner)
}

func (s *cartService) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int32) (CartSummary, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return CartSummary{}, err
	}
	if quantity < 1 {
		return CartSummary{}, validationErr("quantity must be at least 1")
	}

	line, err := s.repo.Carts.GetLineByID(ctx, owner, lineID)
	if err != nil {
		return CartSummary{}, err
	}
	if line == nil {
		return CartSummary{}, ErrCartItemNotFound
	}
	if available := line.AvailableStock(); quantity > available {
		return CartSummary{}, &InsufficientStockError{
			ProductName: line.Product.Name,
			Requested:   quantity,
			Available:   available,
		}
	}

	if err := s.repo.Carts.UpdateQuantity(ctx, lineID, quantity); err != nil {
		return CartSummary{}, err
	}
	return s.summary(ctx, owner)
}

func (s *cartService) RemoveLine(ctx context.Context, lineID uuid.UUID) (CartSummary, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return CartSummary{}, err
	}
	ok, err := s.repo.Carts.Delete(ctx, owner, lineID)
	if err != nil {
		return CartSummary{}, err
	}
	if !ok {
		return CartSummary{}, ErrCartItemNotFound
	}
	return s.summary(ctx, owner)
}

func (s *cartService) ClearCart(ctx context.Context) (CartSummary, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return CartSummary{}, err
	}
	if _, err := s.repo.Carts.ClearForOwner(ctx, owner); err != nil {
		return CartSummary{}, err
	}
	return CartSummary{}, nil
}

func (s *cartService) GetCart(ctx context.Context) (*CartView, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Carts.ListForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return buildCartView(items), nil
}

// MergeGuestCart folds the guest session's lines into the user's cart
// at login. Matching (product, variant) lines sum their quantities,
// clamped to the stock available at merge time.
func (s *cartService) MergeGuestCart(ctx context.Context, guestSessionID string, userID uuid.UUID) error {
	if guestSessionID == "" {
		return nil
	}
	guest := CartOwner{GuestSessionID: &guestSessionID}
	user := CartOwner{UserID: &userID}

	return s.repo.WithTx(func(tx *repository.Repository) error {
		guestItems, err := tx.Carts.ListForOwner(ctx, guest)
		if err != nil {
			return err
		}
		if len(guestItems) == 0 {
			return nil
		}

		for i := range guestItems {
			gi := &guestItems[i]
			existing, err := tx.Carts.GetLine(ctx, user, gi.ProductID, gi.ProductVariantID)
			if err != nil {
				return err
			}
			if existing == nil {
				if err := tx.Carts.Reassign(ctx, gi.ID, userID); err != nil {
					return err
				}
				continue
			}

			merged := existing.Quantity + gi.Quantity
			if available := gi.AvailableStock(); merged > available {
				merged = available
			}
			if merged < 1 {
				merged = 1
			}
			if err := tx.Carts.UpdateQuantity(ctx, existing.ID, merged); err != nil {
				return err
			}
			if _, err := tx.Carts.Delete(ctx, guest, gi.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *cartService) summary(ctx context.Context, owner CartOwner) (CartSummary, error) {
	items, err := s.repo.Carts.ListForOwner(ctx, owner)
	if err != nil {
		return CartSummary{}, err
	}
	var sum CartSummary
	for i := range items {
		it := &items[i]
		sum.ItemCount += it.Quantity
		sum.SubtotalCents += int64(it.Quantity) * it.UnitPriceCents()
	}
	return sum, nil
}
