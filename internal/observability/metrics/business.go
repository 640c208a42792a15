package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest records one served HTTP request.
// path should be the route pattern, not the raw URL, to keep cardinality bounded.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, size int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(size))
}

// RecordArticleCommand records the terminal outcome of an article command.
// command is "create" or "update".
func RecordArticleCommand(command, outcome string, duration time.Duration) {
	ArticleCommandsTotal.WithLabelValues(command, outcome).Inc()
	ArticleCommandDuration.WithLabelValues(command, outcome).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a store operation
// (e.g. "article_create", "article_listing_public").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(open, idle int) {
	DBConnectionsOpen.Set(float64(open))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitBreakerState publishes the numeric state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
