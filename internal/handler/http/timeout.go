package http

import (
	"context"
	"net/http"
	"time"
)

// Timeout returns middleware that bounds each request with a context deadline.
// The handler keeps ownership of the response: operations downstream observe
// ctx.Done() and the handler maps context.DeadlineExceeded to 504 itself.
// A non-positive d disables the deadline.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
