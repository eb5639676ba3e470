// Package httperr provides structured errors for upstream HTTP API responses.
package httperr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// minErrorStatusCode is the minimum HTTP status code considered an error.
const minErrorStatusCode = 400

// HTTPError represents an HTTP API error response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%d %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// Parse reads a non-2xx response into a structured error. Returns nil for
// responses below 400.
func Parse(resp *http.Response) error {
	if resp.StatusCode < minErrorStatusCode {
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("failed to read error response body: %v", err),
		}
	}

	bodyStr := string(bodyBytes)

	// Completion APIs wrap errors either as {"error": {"message": ...}} or
	// as a flat {"error": ..., "message": ...}
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(bodyBytes, &nested) == nil && nested.Error.Message != "" {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       bodyStr,
			Message:    nested.Error.Message,
		}
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(bodyBytes, &flat) == nil {
		if msg := firstNonEmpty(flat.Error, flat.Message); msg != "" {
			return &HTTPError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       bodyStr,
				Message:    msg,
			}
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       bodyStr,
		Message:    bodyStr,
	}
}

// StatusCode extracts the HTTP status code from an error if it is an HTTPError.
func StatusCode(err error) (int, bool) {
	if httpErr, ok := err.(*HTTPError); ok {
		return httpErr.StatusCode, true
	}
	return 0, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
