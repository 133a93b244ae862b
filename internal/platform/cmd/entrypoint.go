package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/travelagency/admin/internal/platform/config"
	"github.com/travelagency/admin/internal/platform/diagnostics"
	"github.com/travelagency/admin/internal/platform/otel"
)

const defaultTelemetryShutdownTimeout = 5 * time.Second

// ServiceAdmin identifies the admin process in telemetry and logs.
const ServiceAdmin = "travel-admin"

// Telemetry selects the tracing and error-reporting backends for a run.
// Zero values leave both disabled.
type Telemetry struct {
	OTelEndpoint           string
	OTelDisabled           bool
	TraceSampleRatio       float64
	SentryDSN              string
	SentryEnvironment      string
	SentryTracesSampleRate float64
	SentryProfilesRate     float64
	// ShutdownTimeout bounds flushing spans and error reports on exit.
	ShutdownTimeout time.Duration
}

// ParseConfig loads an optional .env file and then environment defaults into cfg.
func ParseConfig[T any](cfg *T, dotEnvPaths ...string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(dotEnvPaths...); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and error reporting, then executes run.
func RunWithTelemetry(ctx context.Context, service string, telemetry Telemetry, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTracing, err := otel.Setup(ctx, otel.Options{
		ServiceName: service,
		Endpoint:    telemetry.OTelEndpoint,
		Disabled:    telemetry.OTelDisabled,
		SampleRatio: telemetry.TraceSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	flushSentry, err := diagnostics.InitSentry(diagnostics.SentryOptions{
		DSN:                telemetry.SentryDSN,
		Environment:        telemetry.SentryEnvironment,
		ProfilesSampleRate: telemetry.SentryProfilesRate,
		Release:            service,
		TracesSampleRate:   telemetry.SentryTracesSampleRate,
	})
	if err != nil {
		_ = shutdownTracing(context.Background())
		return fmt.Errorf("setup sentry: %w", err)
	}

	defer func() {
		timeout := telemetry.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultTelemetryShutdownTimeout
		}
		if !flushSentry(timeout) {
			slog.Warn("sentry flush timed out", "service", service)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "service", service, "error", err)
		}
	}()
	return run(ctx)
}
