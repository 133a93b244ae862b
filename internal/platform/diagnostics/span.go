package diagnostics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanSink attaches records to the active trace span as events.
type SpanSink struct{}

// Record implements Sink.
func (SpanSink) Record(ctx context.Context, rec Record) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(rec.Attrs)+2)
	attrs = append(attrs,
		attribute.String("diagnostic.level", string(rec.Level)),
		attribute.String("diagnostic.message", rec.Message),
	)
	for key, value := range rec.Attrs {
		attrs = append(attrs, attribute.String(key, value))
	}
	if rec.Err != nil {
		span.RecordError(rec.Err, trace.WithAttributes(attrs...))
		if rec.Level == LevelError {
			span.SetStatus(codes.Error, rec.Message)
		}
		return
	}
	name := rec.Event
	if name == "" {
		name = "diagnostic"
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
