// Package http exposes the catalog over REST.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/catalog/application"
	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/response"
)

type CatalogHandler struct {
	svc *application.CatalogApplicationService
}

func NewCatalogHandler(svc *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.GET("", h.ListProducts)
		api.GET("/search", h.SearchProducts)
		api.GET("/categories", h.Categories)
		api.GET("/:id", h.GetProduct)
	}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		products, err := h.svc.ListByCategory(c.Request.Context(), category)
		if err != nil {
			logger.Error(c.Request.Context(), "failed to list products by category", "error", err)
			response.Error(c, err.Error())
			return
		}
		response.Success(c, products)
		return
	}

	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list products", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to get product", "product_id", id, "error", err)
		response.Error(c, err.Error())
		return
	}
	if product == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found")
		return
	}
	response.Success(c, product)
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	filter := domain.Filter{
		Category:   c.Query("category"),
		SearchTerm: c.Query("q"),
		SortBy:     domain.SortField(c.Query("sort_by")),
		SortOrder:  domain.SortOrder(c.Query("sort_order")),
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid min_price")
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid max_price")
			return
		}
		filter.MaxPrice = &v
	}

	products, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "product search failed", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, products)
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list categories", "error", err)
		response.Error(c, err.Error())
		return
	}
	response.Success(c, categories)
}
