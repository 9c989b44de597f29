package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storepress/internal/logger"
	"storepress/internal/sitemap"
	"storepress/internal/store"
)

type SitemapHandler struct {
	store   *store.ProductStore
	baseURL string
	logger  *logger.Logger
}

func NewSitemapHandler(s *store.ProductStore, baseURL string, log *logger.Logger) *SitemapHandler {
	return &SitemapHandler{store: s, baseURL: baseURL, logger: log}
}

func (h *SitemapHandler) Sitemap(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.store.All(ctx)
	if err != nil {
		h.logger.Error("sitemap query failed", "error", err)
		c.String(http.StatusInternalServerError, "Error generating sitemap")
		return
	}
	categories, err := h.store.Categories(ctx)
	if err != nil {
		h.logger.Error("sitemap categories query failed", "error", err)
		c.String(http.StatusInternalServerError, "Error generating sitemap")
		return
	}
	subcategories, err := h.store.Subcategories(ctx)
	if err != nil {
		h.logger.Error("sitemap subcategories query failed", "error", err)
		c.String(http.StatusInternalServerError, "Error generating sitemap")
		return
	}

	doc, err := sitemap.Build(h.baseURL, products, categories, subcategories)
	if err != nil {
		h.logger.Error("sitemap build failed", "error", err)
		c.String(http.StatusInternalServerError, "Error generating sitemap")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}
