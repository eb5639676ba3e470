package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/models"
	"github.com/ReeceHarding/landing-page/internal/retry"
	"github.com/ReeceHarding/landing-page/internal/store"
)

// ContentReader is the slice of the content store the fetch handler needs.
type ContentReader interface {
	Get(ctx context.Context, id string) (*models.LandingPage, error)
}

// ContentHandler serves stored landing pages by identifier.
type ContentHandler struct {
	dynamic ContentReader
	preview ContentReader
	retry   retry.Config
	log     logger.Logger
}

// NewContentHandler creates a ContentHandler. Lookups hit the dynamic store
// first and fall back to the preview namespace, so either identifier from a
// generation result resolves.
func NewContentHandler(dynamic, preview ContentReader, log logger.Logger) *ContentHandler {
	return &ContentHandler{
		dynamic: dynamic,
		preview: preview,
		retry:   retry.DefaultConfig(),
		log:     log,
	}
}

// Get handles GET /api/pages/:id.
func (h *ContentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing page identifier"})
		return
	}

	ctx := c.Request.Context()

	var page *models.LandingPage
	err := retry.Do(ctx, h.retry, func() error {
		var lookupErr error
		page, lookupErr = h.lookup(ctx, id)
		return lookupErr
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
	case err != nil:
		h.log.Error("Content fetch failed", logger.String("id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
	default:
		c.JSON(http.StatusOK, page)
	}
}

// lookup checks both store namespaces for the identifier.
func (h *ContentHandler) lookup(ctx context.Context, id string) (*models.LandingPage, error) {
	page, err := h.dynamic.Get(ctx, id)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return h.preview.Get(ctx, id)
}
