package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantCode   int
		wantStatus string
		wantChecks map[string]CheckStatus
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantCode:   http.StatusOK,
			wantStatus: statusHealthy,
			wantChecks: map[string]CheckStatus{},
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return nil },
			},
			wantCode:   http.StatusOK,
			wantStatus: statusHealthy,
			wantChecks: map[string]CheckStatus{"database": {Status: statusHealthy}},
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return errors.New("connection refused") },
				"breaker":  func(context.Context) error { return nil },
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: statusUnhealthy,
			wantChecks: map[string]CheckStatus{
				"database": {Status: statusUnhealthy, Message: "connection refused"},
				"breaker":  {Status: statusHealthy},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{Checks: tt.checks, Version: "1.2.3", now: func() time.Time { return fixed }}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, "2024-05-01T12:00:00Z", resp.Timestamp)
			assert.Equal(t, tt.wantChecks, resp.Checks)
		})
	}
}

func TestHealthHandler_ChecksReceiveDeadline(t *testing.T) {
	var hasDeadline bool
	h := &HealthHandler{
		Timeout: time.Second,
		Checks: map[string]CheckFunc{
			"database": func(ctx context.Context) error {
				_, hasDeadline = ctx.Deadline()
				return nil
			},
		},
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, hasDeadline)
}

func TestLiveHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
}
