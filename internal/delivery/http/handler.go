package http

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lenscart/backend/internal/domain"
)

// maxImageBytes caps how much of an upload is read into memory
const maxImageBytes = 10 << 20 // 10 MB

// Searcher runs the image search pipeline
type Searcher interface {
	Search(ctx context.Context, image []byte) (*domain.SearchResponse, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search Searcher
}

// NewHandler creates a new HTTP handler
func NewHandler(search Searcher) *Handler {
	return &Handler{search: search}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lenscart-backend",
		"version": "1.0.0",
	})
}

// ImageSearch handles image-based product search requests. A request
// without a usable image returns an empty product list without scanning
// the catalog.
func (h *Handler) ImageSearch(c *gin.Context) {
	image := h.readImage(c)

	response, err := h.search.Search(c.Request.Context(), image)
	if err != nil {
		// The pipeline is fail-soft; an error here means something is
		// genuinely broken, not that no products matched.
		log.Printf("[HTTP] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// readImage extracts the uploaded image bytes, or nil when the request
// carries no usable image (missing field, unreadable file, oversized
// upload, non-image content).
func (h *Handler) readImage(c *gin.Context) []byte {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	if fileHeader.Size > maxImageBytes {
		log.Printf("[HTTP] upload rejected: %d bytes exceeds cap", fileHeader.Size)
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[HTTP] upload unreadable: %v", err)
		return nil
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		log.Printf("[HTTP] upload read failed: %v", err)
		return nil
	}
	if len(image) == 0 {
		return nil
	}

	if !strings.HasPrefix(http.DetectContentType(image), "image/") {
		log.Printf("[HTTP] upload rejected: not an image")
		return nil
	}

	return image
}
