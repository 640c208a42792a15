// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size, rate-limited writes)
//   - Article command outcomes (accepted, rejected, persistence_failed)
//   - Store call latency and connection pool metrics
//   - Circuit breaker state
//
// All metrics are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	outcome := svc.CreateArticle(ctx, input)
//	metrics.RecordArticleCommand("create", outcome.State.String(), time.Since(start))
package metrics
