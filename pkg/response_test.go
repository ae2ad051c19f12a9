package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad request", BadRequest("Search code is required"), http.StatusBadRequest, "Search code is required"},
		{"rate limited", TooManyRequests("slow down"), http.StatusTooManyRequests, "slow down"},
		{"upstream 401 remapped", Upstream(http.StatusUnauthorized, "token expired", nil), http.StatusBadGateway, "token expired"},
		{"upstream 404 passed through", Upstream(http.StatusNotFound, "not found", nil), http.StatusNotFound, "not found"},
		{"upstream without response", Upstream(0, "Nirax API request failed", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Nirax API request failed"},
		{"wrapped upstream", fmt.Errorf("search: %w", Upstream(http.StatusServiceUnavailable, "maintenance", nil)), http.StatusServiceUnavailable, "maintenance"},
		{"unknown", errors.New("boom: /etc/secret"), http.StatusInternalServerError, InternalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body MessageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Upstream(0, "Nirax API request failed", cause)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrBadRequest)
}
