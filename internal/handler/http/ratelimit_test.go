package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"blog/internal/observability/metrics"
)

func limitedHandler(l *WriteRateLimiter) http.Handler {
	return l.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
}

func post(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/articles", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWriteRateLimiter_BurstThenReject(t *testing.T) {
	// A near-zero rate means no tokens refill during the test.
	h := limitedHandler(NewWriteRateLimiter(0.0001, 2))
	before := testutil.ToFloat64(metrics.RateLimitedTotal)

	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:2222").Code, "ports share the client budget")

	rec := post(h, "10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitedTotal))

	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.2:1111").Code, "other clients keep their own budget")
}

func TestWriteRateLimiter_SafeMethodsPass(t *testing.T) {
	h := limitedHandler(NewWriteRateLimiter(0.0001, 1))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/articles", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestWriteRateLimiter_NilDisables(t *testing.T) {
	var l *WriteRateLimiter
	h := limitedHandler(l)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:1").Code)
	}
}

func TestWriteRateLimiter_TableIsBounded(t *testing.T) {
	l := NewWriteRateLimiter(1, 1)
	l.maxClients = 2

	l.limiter("a")
	l.limiter("b")
	l.limiter("c")

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "c")
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", clientKey(req))

	req.RemoteAddr = "not-a-hostport"
	assert.Equal(t, "not-a-hostport", clientKey(req))
}
