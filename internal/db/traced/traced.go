// Package traced decorates repositories with a span and a duration metric per call
package traced

import (
	"context"
	"time"

	"Postfeed/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "Postfeed/internal/db/traced"

type recorder struct {
	tracer trace.Tracer
}

func newRecorder(tp trace.TracerProvider) recorder {
	return recorder{tracer: tp.Tracer(instrumentationName)}
}

// run executes fn inside a client span named "<query>(query)" and records its duration
func (r recorder) run(ctx context.Context, query string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := r.tracer.Start(ctx, query+"(query)",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.DBSystemPostgreSQL),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	telemetry.ObserveQuery(query, duration)
	span.SetAttributes(attribute.Float64("request.duration", duration.Seconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
