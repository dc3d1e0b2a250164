// Package http exposes order operations over REST.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/shopping/internal/order/application"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/response"
)

type OrderHandler struct {
	svc *application.OrderApplicationService
}

func NewOrderHandler(svc *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("", h.CreateOrder)
		api.GET("", h.ListOrders)
		api.GET("/stats", h.OrderStats)
		api.GET("/:id", h.GetOrder)
		api.PUT("/:id/status", h.UpdateStatus)
		api.POST("/:id/cancel", h.CancelOrder)
	}
}

func customerID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return c.Query("user_id")
}

type createOrderRequest struct {
	ShippingAddress domain.Address       `json:"shipping_address" binding:"required"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method" binding:"required"`
}

type updateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), cid, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			response.ErrorWithStatus(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "failed to create order", "customer_id", cid, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	ctx := c.Request.Context()
	if raw := c.Query("status"); raw != "" {
		orders, err := h.svc.OrdersByStatus(ctx, cid, domain.Status(raw))
		if err != nil {
			logger.Error(ctx, "failed to list orders by status", "customer_id", cid, "error", err)
			response.Error(c, err.Error())
			return
		}
		response.Success(c, orders)
		return
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid limit")
			return
		}
		orders, err := h.svc.RecentOrders(ctx, cid, limit)
		if err != nil {
			logger.Error(ctx, "failed to list recent orders", "customer_id", cid, "error", err)
			response.Error(c, err.Error())
			return
		}
		response.Success(c, orders)
		return
	}

	orders, err := h.svc.GetOrders(ctx, cid)
	if err != nil {
		logger.Error(ctx, "failed to list orders", "customer_id", cid, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get order", "order_id", c.Param("id"), "error", err)
		response.Error(c, err.Error())
		return
	}
	if order == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found")
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	orderID := c.Param("id")
	if err := h.svc.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "failed to update order status", "order_id", orderID, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"order_id": orderID, "status": req.Status})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.svc.CancelOrder(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrAlreadyShipped):
			response.ErrorWithStatus(c, http.StatusConflict, err.Error())
		default:
			logger.Error(c.Request.Context(), "failed to cancel order", "order_id", orderID, "error", err)
			response.Error(c, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"order_id": orderID, "status": domain.StatusCancelled})
}

func (h *OrderHandler) OrderStats(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	ctx := c.Request.Context()
	total, err := h.svc.TotalSpent(ctx, cid)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	count, err := h.svc.OrderCount(ctx, cid)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"total_spent": total, "order_count": count})
}
