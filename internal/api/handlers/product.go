package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storepress/internal/logger"
	"storepress/internal/store"
)

type ProductHandler struct {
	store  *store.ProductStore
	logger *logger.Logger
}

func NewProductHandler(s *store.ProductStore, log *logger.Logger) *ProductHandler {
	return &ProductHandler{store: s, logger: log}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.store.All(c.Request.Context())
	if err != nil {
		h.logger.Error("list products failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products, "total": len(products)})
}

func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.store.BySlug(c.Request.Context(), slug)
	if err != nil {
		h.logger.Error("get product failed", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

type deleteRequest struct {
	URL string `json:"url"`
}

func (h *ProductHandler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	deleted, err := h.store.DeleteByURL(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Error("delete product failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted, "message": "Product deleted"})
}
