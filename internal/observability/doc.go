// Package observability groups the structured logging, Prometheus metrics,
// and OpenTelemetry tracing used by the blog backend.
//
// Subpackages:
//   - logging: slog loggers with request and trace correlation
//   - metrics: Prometheus registry and recorders
//   - tracing: tracer provider bootstrap and HTTP middleware
package observability
