// Package api wires HTTP routes to their handlers.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeceHarding/landing-page/internal/handlers"
	"github.com/ReeceHarding/landing-page/internal/metrics"
)

// Handlers groups the endpoint handlers for route registration.
type Handlers struct {
	Generate *handlers.GenerateHandler
	Content  *handlers.ContentHandler
	Suggest  *handlers.SuggestHandler
}

// RegisterRoutes sets up all API routes on the router.
func RegisterRoutes(router *gin.Engine, h Handlers, m *metrics.Metrics) {
	router.Use(m.Middleware())

	router.GET("/health", healthCheck)
	router.GET("/metrics", metrics.Handler())

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate", h.Generate.Generate)
		apiGroup.GET("/pages/:id", h.Content.Get)
		apiGroup.POST("/suggest", h.Suggest.Suggest)
	}
}

// healthCheck reports service liveness.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "landing-page",
	})
}
