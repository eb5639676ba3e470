// Package llm is the client for the upstream chat-completion API. It supports
// streaming generation (server-sent events) and single-shot completions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ReeceHarding/landing-page/internal/httperr"
	"github.com/ReeceHarding/landing-page/internal/logger"
)

// Message roles accepted by the completion API.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrNoInput indicates the prompt had no usable content.
var ErrNoInput = errors.New("no input provided")

// Message is one role-tagged prompt entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// KeepAliveInterval is how often an idle marker is emitted while waiting
	// for upstream data. Defaults to 15s.
	KeepAliveInterval time.Duration

	// ResponseHeaderTimeout bounds the wait for upstream response headers.
	// The body read itself is unbounded: streams are cancelled via context.
	ResponseHeaderTimeout time.Duration
}

const (
	defaultKeepAliveInterval     = 15 * time.Second
	defaultResponseHeaderTimeout = 30 * time.Second
	defaultMaxIdleConnsPerHost   = 10
)

// Client calls the chat-completion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a completion API client.
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.KeepAliveInterval == 0 {
		cfg.KeepAliveInterval = defaultKeepAliveInterval
	}
	if cfg.ResponseHeaderTimeout == 0 {
		cfg.ResponseHeaderTimeout = defaultResponseHeaderTimeout
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			// No overall timeout: a generation stream legitimately stays open
			// for minutes. Callers bound the call with their context.
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
				ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
			},
		},
		log: log,
	}
}

// chatRequest is the completion API request body.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// completionResponse is the non-streaming response body.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete performs a single non-streaming completion and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := validateMessages(messages); err != nil {
		return "", err
	}

	resp, err := c.post(ctx, chatRequest{Model: c.cfg.Model, Messages: messages})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if httpErr := httperr.Parse(resp); httpErr != nil {
		return "", fmt.Errorf("completion request: %w", httpErr)
	}

	var body completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return body.Choices[0].Message.Content, nil
}

// post sends a completion request. Streaming is controlled by req.Stream.
func (c *Client) post(ctx context.Context, req chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if req.Stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	return resp, nil
}

// validateMessages rejects an empty prompt list or empty content. The
// generation pipeline short-circuits empty ideas before reaching the client;
// this guard covers every other caller.
func validateMessages(messages []Message) error {
	if len(messages) == 0 {
		return ErrNoInput
	}
	for _, m := range messages {
		if m.Content == "" {
			return ErrNoInput
		}
	}
	return nil
}
