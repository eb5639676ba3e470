// Package handlers implements the HTTP API: streaming generation, content
// fetch and idea suggestion.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ReeceHarding/landing-page/internal/generator"
	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/metrics"
	"github.com/ReeceHarding/landing-page/internal/sse"
)

// GenerationService is the slice of the pipeline the handlers need.
type GenerationService interface {
	Generate(ctx context.Context, idea string, obs generator.Observer) (*generator.Result, error)
	SuggestIdea(ctx context.Context) (string, error)
}

// GenerateHandler serves the streaming generation endpoint.
type GenerateHandler struct {
	service GenerationService
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(service GenerationService, m *metrics.Metrics, log logger.Logger) *GenerateHandler {
	return &GenerateHandler{service: service, metrics: m, log: log}
}

// generateRequest is the POST /api/generate body.
type generateRequest struct {
	Idea string `json:"idea"`
}

// logFrame is the progress narration frame.
type logFrame struct {
	Log string `json:"log"`
}

// Generate streams the generation pipeline as server-sent events. Frames
// carry either {"log": ...} narration or the terminal identifiers; the stream
// always ends with the [DONE] sentinel.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sse.SetHeaders(c.Writer)
	c.Writer.Flush()

	obs := &sseObserver{writer: c.Writer, log: h.log}

	// Generation deliberately keeps running if the client disconnects
	// mid-stream: the pipeline context is detached from the request so a
	// dropped connection does not waste the upstream call. Cancellation
	// propagation on disconnect is a known gap, not a guarantee.
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.service.Generate(ctx, req.Idea, obs)
	switch {
	case errors.Is(err, generator.ErrNoIdea):
		h.metrics.RecordGeneration("empty")
		obs.Log("No idea provided.")
	case err != nil:
		h.metrics.RecordGeneration("error")
		h.log.Error("Generation failed", logger.Error(err))
		obs.Log("Generation failed. Please try again.")
	default:
		h.metrics.RecordGeneration("success")
		if writeErr := sse.WriteData(c.Writer, result); writeErr != nil {
			h.log.Debug("Result frame write failed (client likely disconnected)",
				logger.Error(writeErr),
			)
		}
	}

	if err := sse.WriteDone(c.Writer); err != nil {
		h.log.Debug("Done frame write failed (client likely disconnected)",
			logger.Error(err),
		)
	}
}

// sseObserver forwards pipeline events to the event stream.
type sseObserver struct {
	writer http.ResponseWriter
	log    logger.Logger
}

// Log writes one {"log": ...} frame.
func (o *sseObserver) Log(message string) {
	if err := sse.WriteData(o.writer, logFrame{Log: message}); err != nil {
		o.log.Debug("Log frame write failed", logger.Error(err))
	}
}

// KeepAlive writes an SSE comment to hold the connection open while the
// upstream call produces no content.
func (o *sseObserver) KeepAlive() {
	if _, err := o.writer.Write([]byte(": keep-alive\n\n")); err != nil {
		o.log.Debug("Keep-alive write failed", logger.Error(err))
		return
	}
	if f, ok := o.writer.(http.Flusher); ok {
		f.Flush()
	}
}
