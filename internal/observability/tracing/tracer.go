package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by the HTTP layer.
const InstrumentationName = "blog/http"

// GetTracer returns the tracer for HTTP spans.
// It resolves the global provider on every call so a provider installed
// after package init (or swapped in tests) is honoured.
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
