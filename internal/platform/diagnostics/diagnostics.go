// Package diagnostics routes operational log and error records to the
// configured sinks (structured log, trace span, Sentry, storage).
//
// Recording is fire-and-forget: sinks never return errors to callers, so a
// broken sink cannot change the control flow of the code that reports to it.
package diagnostics

import (
	"context"
	"log/slog"
	"time"

	"github.com/travelagency/admin/internal/platform/requestctx"
)

// Level classifies a record.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Record is one diagnostic entry.
type Record struct {
	Time    time.Time
	Level   Level
	Event   string
	Message string
	Err     error
	Attrs   map[string]string
}

// Sink accepts diagnostic records.
type Sink interface {
	Record(ctx context.Context, rec Record)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, rec Record)

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, rec Record) {
	if f != nil {
		f(ctx, rec)
	}
}

// Multi fans a record out to every non-nil sink in order.
type Multi []Sink

// Record implements Sink.
func (m Multi) Record(ctx context.Context, rec Record) {
	for _, sink := range m {
		if sink != nil {
			sink.Record(ctx, rec)
		}
	}
}

// Emitter stamps records with a timestamp before handing them to a sink.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter builds an emitter that forwards to the given sinks.
func NewEmitter(sinks ...Sink) *Emitter {
	return &Emitter{sink: Multi(sinks), clock: time.Now}
}

// Emit records rec. A nil emitter is a no-op.
func (e *Emitter) Emit(ctx context.Context, rec Record) {
	if e == nil || e.sink == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if rec.Time.IsZero() {
		clock := e.clock
		if clock == nil {
			clock = time.Now
		}
		rec.Time = clock().UTC()
	}
	if rec.Level == "" {
		rec.Level = LevelInfo
		if rec.Err != nil {
			rec.Level = LevelError
		}
	}
	e.sink.Record(ctx, rec)
}

// Record lets an Emitter be used wherever a Sink is expected.
func (e *Emitter) Record(ctx context.Context, rec Record) {
	e.Emit(ctx, rec)
}

// LogSink writes records through slog.
type LogSink struct {
	Logger *slog.Logger
}

// Record implements Sink.
func (s LogSink) Record(ctx context.Context, rec Record) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	args := make([]any, 0, 2*len(rec.Attrs)+4)
	if rec.Event != "" {
		args = append(args, "event", rec.Event)
	}
	if rec.Err != nil {
		args = append(args, "error", rec.Err)
	}
	if locale := requestctx.LocaleFromContext(ctx); locale != "" {
		args = append(args, "locale", locale)
	}
	for key, value := range rec.Attrs {
		args = append(args, key, value)
	}
	logger.Log(ctx, slogLevel(rec.Level), rec.Message, args...)
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RecordStore persists diagnostic records.
type RecordStore interface {
	AppendDiagnostic(ctx context.Context, rec Record) error
}

// StoreSink persists records; storage failures are logged and dropped.
type StoreSink struct {
	Store RecordStore
}

// Record implements Sink.
func (s StoreSink) Record(ctx context.Context, rec Record) {
	if s.Store == nil {
		return
	}
	if err := s.Store.AppendDiagnostic(ctx, rec); err != nil {
		slog.WarnContext(ctx, "persist diagnostic", "event", rec.Event, "error", err)
	}
}
