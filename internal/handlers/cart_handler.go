package handlers

import (
	"net/http"

	"shoestore/internal/dto"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cart.GetCart(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(view))
}

func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	sum, err := h.cart.AddToCart(c.Request.Context(), service.AddToCartInput{
		ProductID:        req.ProductID,
		ProductVariantID: req.ProductVariantID,
		Quantity:         req.Quantity,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartSummaryResponse(sum))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	sum, err := h.cart.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartSummaryResponse(sum))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	sum, err := h.cart.RemoveLine(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartSummaryResponse(sum))
}

func (h *CartHandler) Clear(c *gin.Context) {
	sum, err := h.cart.ClearCart(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartSummaryResponse(sum))
}
