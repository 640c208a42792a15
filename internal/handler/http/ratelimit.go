package http

import (
	"errors"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"blog/internal/handler/http/respond"
	"blog/internal/observability/metrics"
)

// defaultMaxClients bounds the per-client limiter table.
const defaultMaxClients = 10000

var errRateLimited = errors.New("rate limit exceeded")

// WriteRateLimiter throttles state-changing requests per client IP with a
// token bucket. Safe methods (GET, HEAD, OPTIONS) are never limited.
type WriteRateLimiter struct {
	limit      rate.Limit
	burst      int
	maxClients int

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

// NewWriteRateLimiter allows rps sustained writes per client with the given burst.
func NewWriteRateLimiter(rps float64, burst int) *WriteRateLimiter {
	return &WriteRateLimiter{
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: defaultMaxClients,
		clients:    make(map[string]*rate.Limiter),
	}
}

func (l *WriteRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.clients[key]; ok {
		return lim
	}
	// A full table starts over rather than growing without bound.
	if len(l.clients) >= l.maxClients {
		l.clients = make(map[string]*rate.Limiter, l.maxClients)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.clients[key] = lim
	return lim
}

// Allow reports whether a write from r may proceed now.
func (l *WriteRateLimiter) Allow(r *http.Request) bool {
	return l.limiter(clientKey(r)).Allow()
}

// Middleware answers 429 with Retry-After when a client exceeds its budget.
// A nil limiter disables limiting.
func (l *WriteRateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) || l.Allow(r) {
				next.ServeHTTP(w, r)
				return
			}
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", "1")
			respond.Error(w, http.StatusTooManyRequests, errRateLimited)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// clientKey is the host part of RemoteAddr. Proxy headers are not trusted.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
