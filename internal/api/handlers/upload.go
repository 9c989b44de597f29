package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storepress/internal/blob"
	"storepress/internal/logger"
)

// maxUploadSize caps uploaded images at 5MB.
const maxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	unsafeLowerChars    = regexp.MustCompile(`[^a-z0-9.-]`)
	hyphenRuns          = regexp.MustCompile(`-+`)
)

type UploadHandler struct {
	blobs  *blob.Store
	logger *logger.Logger
}

func NewUploadHandler(blobs *blob.Store, log *logger.Logger) *UploadHandler {
	return &UploadHandler{blobs: blobs, logger: log}
}

// UploadImage accepts one multipart image, validates type and size and
// stores it in the image bucket.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.blobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `No file provided. Send file as form field named "file"`})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Invalid file type. Allowed: JPG, PNG, GIF, WebP",
			"received": contentType,
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "File too large. Maximum size: 5MB",
			"received": fmt.Sprintf("%.2fMB", float64(fileHeader.Size)/1024/1024),
		})
		return
	}

	productFolder := c.DefaultPostForm("product_folder", "default")
	preserveFilename := c.PostForm("preserve_filename") == "true"

	filename := sanitizeFilename(fileHeader.Filename, preserveFilename)
	key := fmt.Sprintf("images/%s/%s", productFolder, filename)

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload", "details": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.blobs.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		h.logger.Error("image upload failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file": gin.H{
			"original_name":      fileHeader.Filename,
			"saved_name":         filename,
			"filename_preserved": preserveFilename,
			"size":               fileHeader.Size,
			"type":               contentType,
			"url":                url,
			"pathname":           key,
		},
	})
}

func sanitizeFilename(name string, preserve bool) string {
	if preserve {
		return unsafeFilenameChars.ReplaceAllString(name, "-")
	}

	sanitized := strings.ToLower(name)
	sanitized = unsafeLowerChars.ReplaceAllString(sanitized, "-")
	sanitized = hyphenRuns.ReplaceAllString(sanitized, "-")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitized)
}
