package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeceHarding/landing-page/internal/logger"
)

// SuggestHandler serves the idea-suggestion endpoint.
type SuggestHandler struct {
	service GenerationService
	log     logger.Logger
}

// NewSuggestHandler creates a SuggestHandler.
func NewSuggestHandler(service GenerationService, log logger.Logger) *SuggestHandler {
	return &SuggestHandler{service: service, log: log}
}

// Suggest handles POST /api/suggest. The request body is ignored; the
// response is {"idea": "..."}.
func (h *SuggestHandler) Suggest(c *gin.Context) {
	idea, err := h.service.SuggestIdea(c.Request.Context())
	if err != nil {
		h.log.Error("Idea suggestion failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest an idea"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"idea": idea})
}
