// Package admin parses admin service flags and launches the service.
package admin

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/travelagency/admin/internal/platform/cmd"
	"github.com/travelagency/admin/internal/services/admin"
	"github.com/travelagency/admin/internal/services/admin/identity"
)

// devTokenTTL bounds tokens printed by the -dev-token flag.
const devTokenTTL = 12 * time.Hour

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr string `env:"TRAVEL_ADMIN_HTTP_ADDR" envDefault:":8082"`
	DBPath   string `env:"TRAVEL_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	DemoData bool   `env:"TRAVEL_ADMIN_DEMO_DATA"`

	CountriesURL      string        `env:"TRAVEL_ADMIN_COUNTRIES_URL" envDefault:"https://restcountries.com/v3.1"`
	CountriesTimeout  time.Duration `env:"TRAVEL_ADMIN_COUNTRIES_TIMEOUT" envDefault:"0s"`
	CountriesExcluded []string      `env:"TRAVEL_ADMIN_COUNTRIES_EXCLUDED" envSeparator:","`

	SessionSecret string `env:"TRAVEL_ADMIN_SESSION_SECRET"`
	SessionIssuer string `env:"TRAVEL_ADMIN_SESSION_ISSUER" envDefault:"travel-admin"`

	SentryDSN              string  `env:"TRAVEL_ADMIN_SENTRY_DSN"`
	SentryEnvironment      string  `env:"TRAVEL_ADMIN_SENTRY_ENVIRONMENT" envDefault:"development"`
	SentryTracesSampleRate float64 `env:"TRAVEL_ADMIN_SENTRY_TRACES_SAMPLE_RATE" envDefault:"1.0"`
	SentryProfilesRate     float64 `env:"TRAVEL_ADMIN_SENTRY_PROFILES_SAMPLE_RATE" envDefault:"1.0"`

	OTelEndpoint    string  `env:"TRAVEL_ADMIN_OTEL_ENDPOINT"`
	OTelEnabled     bool    `env:"TRAVEL_ADMIN_OTEL_ENABLED" envDefault:"true"`
	OTelSampleRatio float64 `env:"TRAVEL_ADMIN_OTEL_SAMPLE_RATIO" envDefault:"1.0"`

	// DevTokenUser, when set, prints a signed session token for that user id
	// at startup.
	DevTokenUser string
	DevTokenName string
}

// ParseConfig parses .env, environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, ".env"); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.DemoData, "demo-data", cfg.DemoData, "seed the store with sample users and trips")
	fs.StringVar(&cfg.CountriesURL, "countries-url", cfg.CountriesURL, "country reference API base URL")
	fs.DurationVar(&cfg.CountriesTimeout, "countries-timeout", cfg.CountriesTimeout, "country fetch timeout (0 disables)")
	fs.StringVar(&cfg.DevTokenUser, "dev-token", "", "print a session token for this user id at startup")
	fs.StringVar(&cfg.DevTokenName, "dev-token-name", "", "display name carried by the -dev-token session")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the admin server. Issued development tokens are written to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	telemetry := entrypoint.Telemetry{
		OTelEndpoint:           cfg.OTelEndpoint,
		OTelDisabled:           !cfg.OTelEnabled,
		TraceSampleRatio:       cfg.OTelSampleRatio,
		SentryDSN:              cfg.SentryDSN,
		SentryEnvironment:      cfg.SentryEnvironment,
		SentryTracesSampleRate: cfg.SentryTracesSampleRate,
		SentryProfilesRate:     cfg.SentryProfilesRate,
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, telemetry, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, serverConfig(cfg))
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := printDevToken(server, cfg, out); err != nil {
			return err
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) admin.Config {
	return admin.Config{
		HTTPAddr:          cfg.HTTPAddr,
		DBPath:            cfg.DBPath,
		DemoData:          cfg.DemoData,
		CountriesURL:      cfg.CountriesURL,
		CountriesTimeout:  cfg.CountriesTimeout,
		CountriesExcluded: cfg.CountriesExcluded,
		SessionSecret:     cfg.SessionSecret,
		SessionIssuer:     cfg.SessionIssuer,
	}
}

type tokenIssuer interface {
	IssueSessionToken(id identity.Identity, ttl time.Duration) (string, error)
}

func printDevToken(issuer tokenIssuer, cfg Config, out io.Writer) error {
	if cfg.DevTokenUser == "" || out == nil {
		return nil
	}
	name := cfg.DevTokenName
	if name == "" {
		name = cfg.DevTokenUser
	}
	token, err := issuer.IssueSessionToken(identity.Identity{ID: cfg.DevTokenUser, Name: name}, devTokenTTL)
	if err != nil {
		return fmt.Errorf("issue dev token: %w", err)
	}
	_, err = fmt.Fprintf(out, "session token for %s (valid %s):\n%s\n", cfg.DevTokenUser, devTokenTTL, token)
	return err
}
