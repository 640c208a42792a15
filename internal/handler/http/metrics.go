package http

import (
	"net/http"
	"time"

	"blog/internal/handler/http/responsewriter"
	"blog/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests that no registered pattern accepted.
const unmatchedRoute = "unmatched"

// RouteResolver reports the registered pattern that would serve r.
// *http.ServeMux satisfies it.
type RouteResolver interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// MetricsMiddleware records request count, latency and response size.
// Requests are labelled by route pattern ("GET /admin/articles/{id}") rather
// than raw path, which keeps label cardinality bounded by the route table.
func MetricsMiddleware(routes RouteResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.ActiveConnections.Inc()
			defer metrics.ActiveConnections.Dec()

			route := unmatchedRoute
			if routes != nil {
				if _, pattern := routes.Handler(r); pattern != "" {
					route = pattern
				}
			}

			rw := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rw, r)

			metrics.RecordHTTPRequest(r.Method, route, rw.StatusCode(), time.Since(start), rw.BytesWritten())
		})
	}
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
