package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/travelagency/admin/internal/platform/requestctx"
)

type fakeRecordStore struct {
	records []Record
	err     error
}

func (s *fakeRecordStore) AppendDiagnostic(_ context.Context, rec Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func TestEmitterNoopWhenNil(t *testing.T) {
	var emitter *Emitter
	emitter.Emit(context.Background(), Record{Message: "ignored"})
}

func TestEmitterAddsTimestampAndLevel(t *testing.T) {
	store := &fakeRecordStore{}
	clockTime := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	emitter := &Emitter{sink: StoreSink{Store: store}, clock: func() time.Time { return clockTime }}

	emitter.Emit(context.Background(), Record{Event: "test", Err: errors.New("boom")})

	if len(store.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(store.records))
	}
	got := store.records[0]
	if !got.Time.Equal(clockTime) {
		t.Fatalf("Time = %v, want %v", got.Time, clockTime)
	}
	if got.Level != LevelError {
		t.Fatalf("Level = %q, want %q", got.Level, LevelError)
	}
}

func TestEmitterPreservesTimestamp(t *testing.T) {
	store := &fakeRecordStore{}
	setTime := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	emitter := NewEmitter(StoreSink{Store: store})

	emitter.Emit(context.Background(), Record{Event: "test", Time: setTime})

	if !store.records[0].Time.Equal(setTime) {
		t.Fatalf("Time = %v, want %v", store.records[0].Time, setTime)
	}
	if store.records[0].Level != LevelInfo {
		t.Fatalf("Level = %q, want info", store.records[0].Level)
	}
}

func TestStoreSinkSwallowsErrors(t *testing.T) {
	store := &fakeRecordStore{err: errors.New("disk full")}
	StoreSink{Store: store}.Record(context.Background(), Record{Event: "test"})
	if len(store.records) != 1 {
		t.Fatalf("expected the record to reach the store")
	}
}

func TestMultiSkipsNilSinks(t *testing.T) {
	var calls int
	sink := Multi{nil, SinkFunc(func(context.Context, Record) { calls++ }), SinkFunc(nil)}
	sink.Record(context.Background(), Record{})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestLogSinkWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := requestctx.WithLocale(context.Background(), "pt-BR")
	LogSink{Logger: logger}.Record(ctx, Record{
		Level:   LevelWarn,
		Event:   "trip.submit.unauthenticated",
		Message: "user not authenticated",
		Attrs:   map[string]string{"country": "France"},
	})

	out := buf.String()
	for _, want := range []string{"level=WARN", "user not authenticated", "event=trip.submit.unauthenticated", "country=France", "locale=pt-BR"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestSpanSinkIgnoresNonRecordingSpan(t *testing.T) {
	SpanSink{}.Record(context.Background(), Record{Message: "no span", Err: errors.New("x")})
}

func TestInitSentryDisabledWithoutDSN(t *testing.T) {
	flush, err := InitSentry(SentryOptions{})
	if err != nil {
		t.Fatalf("InitSentry: %v", err)
	}
	if !flush(time.Millisecond) {
		t.Fatal("expected noop flush to succeed")
	}
	SentrySink{}.Record(context.Background(), Record{Level: LevelError, Message: "dropped"})
}

func TestWrapHTTPWithoutClientReturnsHandler(t *testing.T) {
	if SentryEnabled() {
		t.Skip("sentry client configured by another test")
	}
	handler := http.NotFoundHandler()
	if got := WrapHTTP(handler); got == nil {
		t.Fatal("expected handler")
	}
}

func TestSentryClientOptionsRates(t *testing.T) {
	tests := []struct {
		name         string
		opts         SentryOptions
		wantTraces   float64
		wantProfiles float64
		wantTracing  bool
	}{
		{name: "full", opts: SentryOptions{TracesSampleRate: 1, ProfilesSampleRate: 1}, wantTraces: 1, wantProfiles: 1, wantTracing: true},
		{name: "explicit zero disables tracing", opts: SentryOptions{}, wantTraces: 0, wantProfiles: 0},
		{name: "partial", opts: SentryOptions{TracesSampleRate: 0.25, ProfilesSampleRate: 0.5}, wantTraces: 0.25, wantProfiles: 0.5, wantTracing: true},
		{name: "clamped", opts: SentryOptions{TracesSampleRate: 3, ProfilesSampleRate: -1}, wantTraces: 1, wantProfiles: 0, wantTracing: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clientOptions("https://key@example.com/1", tt.opts)
			if got.TracesSampleRate != tt.wantTraces {
				t.Fatalf("TracesSampleRate = %v, want %v", got.TracesSampleRate, tt.wantTraces)
			}
			if got.ProfilesSampleRate != tt.wantProfiles {
				t.Fatalf("ProfilesSampleRate = %v, want %v", got.ProfilesSampleRate, tt.wantProfiles)
			}
			if got.EnableTracing != tt.wantTracing {
				t.Fatalf("EnableTracing = %v, want %v", got.EnableTracing, tt.wantTracing)
			}
			if !got.SendDefaultPII {
				t.Fatal("expected default PII to be sent")
			}
		})
	}
}
