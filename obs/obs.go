// Package obs carries the OpenTelemetry instrumentation for listing-service
// operations. The host application owns exporter and provider setup; this
// package only opens spans against whatever global tracer provider is
// installed.
package obs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scope = "github.com/botlists/botlists/obs"

// Tracer returns the module tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(scope)
}

// RequestRecorder encapsulates per-operation span bookkeeping.
type RequestRecorder struct {
	start time.Time
	span  trace.Span
}

// StartRequest opens a span for one backend operation.
func StartRequest(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *RequestRecorder) {
	ctx, span := Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &RequestRecorder{start: time.Now(), span: span}
}

// AddAttributes appends attributes to the span.
func (r *RequestRecorder) AddAttributes(attrs ...attribute.KeyValue) {
	if r == nil {
		return
	}
	r.span.SetAttributes(attrs...)
}

// End finalizes the span, recording err when non-nil.
func (r *RequestRecorder) End(err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}
	r.span.SetAttributes(attribute.Float64("botlists.duration_ms", float64(time.Since(r.start).Milliseconds())))
	r.span.End()
}
