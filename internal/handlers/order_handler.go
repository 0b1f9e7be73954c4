package handlers

import (
	"net/http"
	"strconv"

	"shoestore/internal/dto"
	"shoestore/internal/models"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	log      *zap.Logger
}

func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, log: log}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	res, err := h.checkout.Checkout(c.Request.Context(), service.CheckoutInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		City:      req.City,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCheckoutResponse(res))
}

// Confirmation is the post-checkout order lookup, available to guests.
func (h *OrderHandler) Confirmation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.OrderConfirmation(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	f, ok := parseOrderFilter(c)
	if !ok {
		return
	}
	orders, total, err := h.orders.MyOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderListResponse(orders, total))
}

func (h *OrderHandler) MyOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.MyOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

func parseOrderFilter(c *gin.Context) (service.OrderFilter, bool) {
	var f service.OrderFilter
	if v := c.Query("status"); v != "" {
		status := models.OrderStatus(v)
		switch status {
		case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing,
			models.OrderStatusShipped, models.OrderStatusDelivered,
			models.OrderStatusCancelled, models.OrderStatusRefunded:
			f.Status = &status
		default:
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid status", nil))
			return f, false
		}
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return f, true
}
