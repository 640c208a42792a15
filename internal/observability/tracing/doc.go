// Package tracing wires OpenTelemetry into the blog backend.
//
// InitProvider installs the global tracer provider (stdout exporter) and the
// W3C propagators; Middleware opens a server span per HTTP request. Usecase and
// repository code start child spans through otel.Tracer directly.
//
// Example usage:
//
//	shutdown, err := tracing.InitProvider(ctx, tracing.Config{ServiceName: "blog-api", Enabled: true})
//	if err != nil { ... }
//	defer shutdown(context.Background())
//	handler := tracing.Middleware(mux)
package tracing
