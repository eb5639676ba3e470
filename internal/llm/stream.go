package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ReeceHarding/landing-page/internal/httperr"
	"github.com/ReeceHarding/landing-page/internal/logger"
)

// doneSentinel marks normal end-of-stream in the upstream SSE protocol.
const doneSentinel = "[DONE]"

// scanBufferSize is the line buffer for the SSE scanner; individual data
// frames can carry large JSON fragments.
const scanBufferSize = 1 << 20

// Fragment is one element of the streamed token sequence.
type Fragment struct {
	// Text is the incremental content. Empty for idle and done markers.
	Text string
	// Idle marks a synthetic keep-alive emitted while waiting for upstream
	// data. Idle fragments carry no content and are filtered downstream.
	Idle bool
	// Done marks the upstream completion sentinel. A channel that closes
	// without a Done fragment ended early and should be treated as a
	// recoverable empty result.
	Done bool
}

// streamChunk is one upstream SSE data payload.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream opens a streaming completion and returns the fragment sequence.
//
// Upstream HTTP errors and transport failures are logged and end the sequence
// without a Done fragment; they are not surfaced as errors. The only error
// returns are invalid input and request construction failures. The client
// performs no retries.
func (c *Client) Stream(ctx context.Context, messages []Message) (<-chan Fragment, error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	out := make(chan Fragment)

	go func() {
		defer close(out)

		// Keep-alive idle markers while the upstream call is in flight.
		// stop is closed before this goroutine returns so no idle marker is
		// ever emitted after stream closure.
		stop := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go c.emitIdleMarkers(out, stop, &wg)
		defer wg.Wait()
		defer close(stop)

		resp, err := c.post(ctx, chatRequest{Model: c.cfg.Model, Messages: messages, Stream: true})
		if err != nil {
			c.log.Error("Streaming request failed", logger.Error(err))
			return
		}
		defer resp.Body.Close()

		if httpErr := httperr.Parse(resp); httpErr != nil {
			// Early end with no sentinel; callers recover with an empty result
			c.log.Error("Upstream returned error status",
				logger.Int("status", resp.StatusCode),
				logger.Error(httpErr),
			)
			return
		}

		c.readStream(ctx, resp.Body, out)
	}()

	return out, nil
}

// readStream parses SSE lines from the response body and emits fragments
// until the done sentinel, a read error, or context cancellation.
func (c *Client) readStream(ctx context.Context, body io.Reader, out chan<- Fragment) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), scanBufferSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)

		if data == doneSentinel {
			sendFragment(ctx, out, Fragment{Done: true})
			return
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.log.Debug("Skipping unparseable stream chunk", logger.Error(err))
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if !sendFragment(ctx, out, Fragment{Text: choice.Delta.Content}) {
				return
			}
		}
	}

	if err := scanner.Err(); err != nil {
		c.log.Error("Stream read failed", logger.Error(err))
	}
}

// emitIdleMarkers sends a keep-alive fragment at the configured interval
// until stop is closed.
func (c *Client) emitIdleMarkers(out chan<- Fragment, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(c.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case out <- Fragment{Idle: true}:
			case <-stop:
				return
			}
		case <-stop:
			return
		}
	}
}

// sendFragment delivers a fragment unless the context is cancelled first.
func sendFragment(ctx context.Context, out chan<- Fragment, f Fragment) bool {
	select {
	case out <- f:
		return true
	case <-ctx.Done():
		return false
	}
}
