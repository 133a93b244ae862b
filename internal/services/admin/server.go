package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	"github.com/travelagency/admin/internal/platform/timeouts"
	"github.com/travelagency/admin/internal/services/admin/identity"
	adminsqlite "github.com/travelagency/admin/internal/services/admin/storage/sqlite"
	"github.com/travelagency/admin/internal/services/admin/transport/httpmux"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
	"github.com/travelagency/admin/internal/services/admin/trip/form"
)

// Config defines the inputs for the admin process.
type Config struct {
	HTTPAddr string
	DBPath   string
	// DemoData seeds the store with sample users and trips.
	DemoData bool

	CountriesURL     string
	CountriesTimeout time.Duration
	// CountriesExcluded overrides the default excluded country list.
	CountriesExcluded []string

	SessionSecret string
	SessionIssuer string
}

// Server hosts the admin UI.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *adminsqlite.Store
	resolver   *identity.TokenResolver
}

// NewServer opens storage and builds a configured admin server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.DBPath) == "" {
		return nil, errors.New("database path is required")
	}

	resolver, err := identity.NewTokenResolver(identity.Config{
		Secret: []byte(config.SessionSecret),
		Issuer: config.SessionIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("session resolver: %w", err)
	}
	loader, err := country.NewLoader(country.Config{
		BaseURL:  config.CountriesURL,
		Excluded: config.CountriesExcluded,
		Timeout:  config.CountriesTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("country loader: %w", err)
	}

	var storeOpts []adminsqlite.Option
	if config.DemoData {
		storeOpts = append(storeOpts, adminsqlite.WithDemoData())
	}
	store, err := adminsqlite.Open(ctx, config.DBPath, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("open admin store: %w", err)
	}

	sink := diagnostics.NewEmitter(
		diagnostics.LogSink{},
		diagnostics.SpanSink{},
		diagnostics.SentrySink{},
		diagnostics.StoreSink{Store: store},
	)
	handler := NewHandler(Dependencies{
		Store:       store,
		Countries:   loader,
		Identity:    resolver,
		Finalizer:   form.LogFinalizer{},
		Diagnostics: sink,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           httpmux.Chain(handler, diagnostics.WrapHTTP, withRequestSpan),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
		resolver:   resolver,
	}, nil
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// IssueSessionToken mints a session token for id, for local development.
func (s *Server) IssueSessionToken(id identity.Identity, ttl time.Duration) (string, error) {
	if s == nil || s.resolver == nil {
		return "", errors.New("admin server is not configured")
	}
	return s.resolver.Issue(id, ttl)
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	slog.Info("admin listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		slog.Error("close admin store", "error", err)
	}
}
