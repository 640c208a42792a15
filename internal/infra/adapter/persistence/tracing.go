package persistence

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blog/internal/observability/metrics"
)

// InstrumentationName identifies spans created by the store adapters.
const InstrumentationName = "blog/persistence"

// Span is a store call in flight: the client span plus its start time.
type Span struct {
	trace.Span
	name  string
	start time.Time
}

// StartSpan opens a client span for a store call.
// name is "<Repo>.<Method>", system the db.system value, operation the db.operation value.
func StartSpan(ctx context.Context, name, system, operation string) (context.Context, *Span) {
	ctx, span := otel.Tracer(InstrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
		),
	)
	return ctx, &Span{Span: span, name: name, start: time.Now()}
}

// EndSpan records err on span, if any, observes the call duration under
// span's name and ends it.
func EndSpan(span *Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.RecordDBQuery(span.name, time.Since(span.start))
	span.End()
}
