// Package http provides the HTTP delivery layer of the blog backend:
// health and metrics endpoints plus the middleware chain shared by the
// article and home handlers.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"blog/internal/handler/http/respond"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	defaultHealthTimeout = 5 * time.Second
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// HealthHandler runs every named check and reports the aggregate.
// Any failing check turns the response into 503.
type HealthHandler struct {
	Checks  map[string]CheckFunc
	Version string
	Timeout time.Duration
	Logger  *slog.Logger
	now     func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]CheckStatus, len(names))
	allHealthy := true
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			allHealthy = false
			checks[name] = CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
			continue
		}
		checks[name] = CheckStatus{Status: statusHealthy}
	}

	status, code := statusHealthy, http.StatusOK
	if !allHealthy {
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	}

	now := time.Now
	if h.now != nil {
		now = h.now
	}
	resp := HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger().Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LiveHandler answers liveness probes; it never touches dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
