package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storepress/internal/feed"
	"storepress/internal/logger"
	"storepress/internal/models"
	"storepress/internal/publish"
)

type PublishHandler struct {
	publisher *publish.Publisher
	logger    *logger.Logger
}

func NewPublishHandler(publisher *publish.Publisher, log *logger.Logger) *PublishHandler {
	return &PublishHandler{publisher: publisher, logger: log}
}

type publishRequest struct {
	SearchKey   string   `json:"search_key"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Breadcrumbs string   `json:"breadcrumbs"`
	ProductID   int64    `json:"product_id"`
	Description string   `json:"description"`
	Tags        string   `json:"tags"`
	ImageURLs   []string `json:"image_urls"`
}

// Publish publishes the next random feed candidate, or the record
// supplied in the request body.
func (h *PublishHandler) Publish(c *gin.Context) {
	var product *models.Product
	var err error

	if c.Request.ContentLength > 0 {
		var req publishRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		rec := &feed.Record{
			SearchKey:   req.SearchKey,
			URL:         req.URL,
			Title:       req.Title,
			Breadcrumbs: req.Breadcrumbs,
			ProductID:   req.ProductID,
			Description: req.Description,
			Tags:        req.Tags,
			ImageURLs:   req.ImageURLs,
		}
		if verr := rec.Validate(); verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		product, err = h.publisher.PublishRecord(c.Request.Context(), rec)
	} else {
		product, err = h.publisher.PublishNext(c.Request.Context())
	}

	if err != nil {
		var dup *publish.DuplicateError
		switch {
		case errors.Is(err, publish.ErrFeedExhausted):
			c.JSON(http.StatusNotFound, gin.H{"error": "No products available in feed"})
		case errors.As(err, &dup):
			c.JSON(http.StatusConflict, gin.H{"error": "Product already published", "product": dup.Existing})
		default:
			h.logger.Error("publish failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish product", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": gin.H{
			"title":                 product.Title,
			"optimized_title":       product.OptimizedTitle,
			"optimized_description": product.OptimizedDescription,
			"url":                   product.URL,
			"slug":                  product.SlugValue(),
			"category":              product.Category,
			"subcategory":           product.Subcategory,
			"images":                product.ImageList(),
		},
	})
}
