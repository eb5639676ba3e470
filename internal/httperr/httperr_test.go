package httperr

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		body    string
		wantMsg string
	}{
		{
			name:    "nested error object",
			code:    429,
			body:    `{"error":{"message":"rate limited"}}`,
			wantMsg: "rate limited",
		},
		{
			name:    "flat error field",
			code:    400,
			body:    `{"error":"bad request"}`,
			wantMsg: "bad request",
		},
		{
			name:    "flat message field",
			code:    500,
			body:    `{"message":"internal"}`,
			wantMsg: "internal",
		},
		{
			name:    "unstructured body",
			code:    502,
			body:    "bad gateway",
			wantMsg: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse(response(tt.code, tt.body))
			require.Error(t, err)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.code, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestParseSuccessResponse(t *testing.T) {
	assert.NoError(t, Parse(response(200, "ok")))
	assert.NoError(t, Parse(response(204, "")))
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(&HTTPError{StatusCode: 404})
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	_, ok = StatusCode(io.EOF)
	assert.False(t, ok)
}
