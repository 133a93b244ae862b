package diagnostics

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/travelagency/admin/internal/platform/requestctx"
)

// SentryOptions configures the Sentry client. An empty DSN disables it.
type SentryOptions struct {
	DSN         string
	Environment string
	Release     string
	// TracesSampleRate and ProfilesSampleRate are clamped to [0,1]; zero
	// turns the feature off.
	TracesSampleRate   float64
	ProfilesSampleRate float64
}

// InitSentry initialises the global Sentry client and returns its flush
// function. With an empty DSN it returns a flush that always succeeds.
func InitSentry(opts SentryOptions) (flush func(time.Duration) bool, err error) {
	noop := func(time.Duration) bool { return true }
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		return noop, nil
	}
	if err := sentry.Init(clientOptions(dsn, opts)); err != nil {
		return noop, err
	}
	return sentry.Flush, nil
}

func clientOptions(dsn string, opts SentryOptions) sentry.ClientOptions {
	traces := clampRate(opts.TracesSampleRate)
	return sentry.ClientOptions{
		Dsn:                dsn,
		Environment:        opts.Environment,
		Release:            opts.Release,
		SendDefaultPII:     true,
		EnableTracing:      traces > 0,
		TracesSampleRate:   traces,
		ProfilesSampleRate: clampRate(opts.ProfilesSampleRate),
	}
}

func clampRate(rate float64) float64 {
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	default:
		return rate
	}
}

// SentryEnabled reports whether a Sentry client is bound to the current hub.
func SentryEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// WrapHTTP adds Sentry request scoping and panic capture to next when a
// Sentry client is configured. Otherwise next is returned unchanged.
func WrapHTTP(next http.Handler) http.Handler {
	if next == nil || !SentryEnabled() {
		return next
	}
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// SentrySink reports warn and error records to Sentry.
type SentrySink struct{}

// Record implements Sink.
func (SentrySink) Record(ctx context.Context, rec Record) {
	if rec.Level == LevelInfo {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(rec.Level))
		if rec.Event != "" {
			scope.SetTag("event", rec.Event)
		}
		if locale := requestctx.LocaleFromContext(ctx); locale != "" {
			scope.SetTag("locale", locale)
		}
		extra := make(sentry.Context, len(rec.Attrs))
		for key, value := range rec.Attrs {
			extra[key] = value
		}
		scope.SetContext("diagnostic", extra)
		if rec.Err != nil {
			hub.CaptureException(errors.Join(errors.New(rec.Message), rec.Err))
			return
		}
		hub.CaptureMessage(rec.Message)
	})
}

func sentryLevel(level Level) sentry.Level {
	switch level {
	case LevelError:
		return sentry.LevelError
	case LevelWarn:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
