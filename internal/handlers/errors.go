package handlers

import (
	"errors"
	"net/http"
	"strings"

	"shoestore/internal/dto"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeServiceError translates service-layer errors into the wire
// error envelope. Unknown errors are logged and become a 500 without
// leaking internals.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, dto.NewInsufficientStockError(stockErr.Error(), stockErr.ProductName, stockErr.Available))
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, nil))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("insufficient permissions"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid email or password"))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("email already registered"))
	case errors.Is(err, service.ErrCategoryNameTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("category name already exists under this parent"))
	case errors.Is(err, service.ErrCategoryCycle):
		c.JSON(http.StatusConflict, dto.NewConflictError("category parent would create a cycle"))
	case errors.Is(err, service.ErrCategoryHasContent):
		c.JSON(http.StatusConflict, dto.NewConflictError("category still has subcategories"))
	case errors.Is(err, service.ErrSizeTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("variant with this size already exists"))
	case errors.Is(err, service.ErrImageLimit):
		c.JSON(http.StatusConflict, dto.NewConflictError("product already has the maximum number of images"))
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.NewConflictError("order status transition not allowed"))
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cart is empty", nil))
	case errors.Is(err, service.ErrNoCartOwner):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("no cart session", nil))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrVariantNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrSliderNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, []dto.FieldError{
			{Field: name, Message: "must be a uuid"},
		}))
		return uuid.Nil, false
	}
	return id, true
}
