// Package sse writes the server-sent-event frames used by the generation
// endpoint. The protocol is data-only: each frame is `data: <JSON>\n\n` and
// the stream ends with the literal `data: [DONE]\n\n`.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DoneSentinel terminates every generation stream.
const DoneSentinel = "[DONE]"

// SSE header constants.
const (
	headerContentType     = "Content-Type"
	headerCacheControl    = "Cache-Control"
	headerConnection      = "Connection"
	headerXAccelBuffering = "X-Accel-Buffering"

	sseContentType = "text/event-stream"
)

// flusher is implemented by response writers that support flushing.
type flusher interface {
	Flush()
}

// SetHeaders sets the standard SSE headers on a response writer.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set(headerContentType, sseContentType)
	w.Header().Set(headerCacheControl, "no-cache")
	w.Header().Set(headerConnection, "keep-alive")
	w.Header().Set(headerXAccelBuffering, "no")
}

// WriteData marshals the payload and writes one data frame, flushing so the
// frame reaches the client immediately.
func WriteData(w http.ResponseWriter, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal frame payload: %w", err)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	flush(w)
	return nil
}

// WriteDone writes the terminal sentinel frame.
func WriteDone(w http.ResponseWriter) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", DoneSentinel); err != nil {
		return fmt.Errorf("write done frame: %w", err)
	}

	flush(w)
	return nil
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(flusher); ok {
		f.Flush()
	}
}
