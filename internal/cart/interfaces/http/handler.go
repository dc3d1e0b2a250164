// Package http exposes cart operations over REST.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/shopping/internal/cart/application"
	catalogapp "github.com/wyfcoding/shopping/internal/catalog/application"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/response"
)

type CartHandler struct {
	carts   *application.CartApplicationService
	catalog *catalogapp.CatalogApplicationService
}

func NewCartHandler(carts *application.CartApplicationService, catalog *catalogapp.CatalogApplicationService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/cart")
	{
		api.GET("", h.GetCart)
		api.POST("/items", h.AddItem)
		api.PUT("/items/:product_id", h.UpdateQuantity)
		api.DELETE("/items/:product_id", h.RemoveItem)
		api.DELETE("", h.Clear)
	}
}

// userID resolves the caller identity. Authentication happens upstream;
// the gateway forwards the resolved user in a header.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return c.Query("user_id")
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	summary, err := h.carts.Summary(c.Request.Context(), uid)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to load cart", "user_id", uid, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, summary)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		logger.Error(ctx, "failed to load product for cart add", "product_id", req.ProductID, "error", err)
		response.Error(c, err.Error())
		return
	}
	if product == nil || !product.Available() {
		response.ErrorWithStatus(c, http.StatusNotFound, "product unavailable")
		return
	}

	// Stock is held when the item enters the cart. The reservation is
	// released if persisting the cart fails.
	reserved, err := h.catalog.ReserveStock(ctx, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	if !reserved {
		response.ErrorWithStatus(c, http.StatusConflict, "insufficient stock")
		return
	}

	if err := h.carts.AddItem(ctx, uid, product, req.Quantity); err != nil {
		if relErr := h.catalog.ReleaseStock(ctx, req.ProductID, req.Quantity); relErr != nil {
			logger.Error(ctx, "failed to release stock after cart add failure",
				"product_id", req.ProductID, "quantity", req.Quantity, "error", relErr)
		}
		logger.Error(ctx, "failed to add cart item", "user_id", uid, "error", err)
		response.Error(c, err.Error())
		return
	}

	summary, err := h.carts.Summary(ctx, uid)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, summary)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.carts.UpdateQuantity(c.Request.Context(), uid, uint(productID), req.Quantity)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to update cart quantity", "user_id", uid, "error", err)
		response.Error(c, err.Error())
		return
	}
	if !updated {
		response.ErrorWithStatus(c, http.StatusNotFound, "item not in cart")
		return
	}

	summary, err := h.carts.Summary(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, summary)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id")
		return
	}

	removed, err := h.carts.RemoveItem(c.Request.Context(), uid, uint(productID))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to remove cart item", "user_id", uid, "error", err)
		response.Error(c, err.Error())
		return
	}
	if !removed {
		response.ErrorWithStatus(c, http.StatusNotFound, "item not in cart")
		return
	}

	summary, err := h.carts.Summary(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, summary)
}

func (h *CartHandler) Clear(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.carts.Clear(c.Request.Context(), uid); err != nil {
		logger.Error(c.Request.Context(), "failed to clear cart", "user_id", uid, "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
