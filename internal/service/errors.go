package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameTaken  = errors.New("category name already exists under this parent")
	ErrCategoryCycle      = errors.New("category parent would create a cycle")
	ErrCategoryHasContent = errors.New("category still has products or subcategories")

	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrSizeTaken       = errors.New("variant with this size already exists")
	ErrImageNotFound   = errors.New("product image not found")
	ErrImageLimit      = errors.New("product already has the maximum number of images")
	ErrSliderNotFound  = errors.New("slider not found")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrNoCartOwner      = errors.New("no cart owner in context")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status transition not allowed")

	ErrValidation = errors.New("validation failed")
)

// InsufficientStockError reports which product could not be reserved and
// how many units were available at decision time.
type InsufficientStockError struct {
	ProductName string
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
