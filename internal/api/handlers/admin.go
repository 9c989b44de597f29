package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storepress/internal/database"
	"storepress/internal/logger"
	"storepress/internal/models"
	"storepress/internal/store"
)

// AdminHandler hosts the idempotent schema and backfill endpoints.
type AdminHandler struct {
	store  *store.ProductStore
	logger *logger.Logger
}

func NewAdminHandler(s *store.ProductStore, log *logger.Logger) *AdminHandler {
	return &AdminHandler{store: s, logger: log}
}

func (h *AdminHandler) InitDB(c *gin.Context) {
	if err := database.Migrate(h.store.DB()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize database", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Database initialized"})
}

func (h *AdminHandler) CheckSchema(c *gin.Context) {
	migrator := h.store.DB().Migrator()

	columnTypes, err := migrator.ColumnTypes(&models.Product{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Schema check failed", "details": err.Error()})
		return
	}

	columns := make([]gin.H, 0, len(columnTypes))
	for _, col := range columnTypes {
		nullable, _ := col.Nullable()
		primary, _ := col.PrimaryKey()
		columns = append(columns, gin.H{
			"name":     col.Name(),
			"type":     col.DatabaseTypeName(),
			"nullable": nullable,
			"pk":       primary,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"has_slug_column": migrator.HasColumn(&models.Product{}, "slug"),
		"columns":         columns,
		"total_columns":   len(columns),
	})
}

func (h *AdminHandler) MigrateCategories(c *gin.Context) {
	updated, err := h.store.BackfillCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("category backfill failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
		"message": fmt.Sprintf("Updated %d products with categories", updated),
	})
}

func (h *AdminHandler) MigrateSlugs(c *gin.Context) {
	updated, skipped, err := h.store.BackfillSlugs(c.Request.Context())
	if err != nil {
		h.logger.Error("slug backfill failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
		"skipped": skipped,
		"message": fmt.Sprintf("Updated %d products with SEO-friendly slugs (%d skipped)", updated, skipped),
	})
}

func (h *AdminHandler) RegenerateSlugs(c *gin.Context) {
	changes, skipped, err := h.store.RegenerateSlugs(c.Request.Context())
	if err != nil {
		h.logger.Error("slug regeneration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Slug regeneration failed", "details": err.Error()})
		return
	}

	preview := changes
	if len(preview) > 10 {
		preview = preview[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Regenerated %d slugs from optimized titles (%d skipped)", len(changes), skipped),
		"changes":       preview,
		"total_changes": len(changes),
	})
}

func (h *AdminHandler) DebugSlugs(c *gin.Context) {
	reports, err := h.store.DebugSlugs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to debug slugs", "details": err.Error()})
		return
	}

	matching := 0
	for _, r := range reports {
		if r.Match {
			matching++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": reports,
		"summary": gin.H{
			"total":        len(reports),
			"matching":     matching,
			"not_matching": len(reports) - matching,
		},
	})
}
