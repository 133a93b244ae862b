// Package country loads the reference list of countries offered by the trip
// form from a REST Countries compatible service.
package country

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/travelagency/admin/internal/platform/errors"
)

// DefaultBaseURL is the public REST Countries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

const requestedFields = "name,flag,latlng,maps"

// DefaultExcluded lists the canonical names removed from every load.
var DefaultExcluded = []string{"Israel"}

// Coordinates is a [lat, lng] pair, or empty when the source has none.
type Coordinates []float64

// Country is one selectable destination.
type Country struct {
	// Name is the display label: flag, a space, then the common name.
	Name string
	// Value is the canonical common name.
	Value         string
	Coordinates   Coordinates
	OpenStreetMap string
}

// Option is one combo-box entry.
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Doer sends HTTP requests.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config configures a Loader.
type Config struct {
	BaseURL  string
	Excluded []string
	// Timeout bounds the whole request. Zero means no client timeout.
	Timeout time.Duration
	Client  Doer
}

// Loader fetches countries. It performs exactly one request per Load call.
type Loader struct {
	endpoint string
	excluded map[string]struct{}
	timeout  time.Duration
	client   Doer
}

// NewLoader builds a Loader from cfg, applying defaults.
func NewLoader(cfg Config) (*Loader, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base + "/all")
	if err != nil {
		return nil, fmt.Errorf("parse countries url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("countries url %q must be absolute", base)
	}
	parsed.RawQuery = "fields=" + requestedFields

	excluded := cfg.Excluded
	if excluded == nil {
		excluded = DefaultExcluded
	}
	set := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		set[name] = struct{}{}
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		endpoint: parsed.String(),
		excluded: set,
		timeout:  cfg.Timeout,
		client:   client,
	}, nil
}

// Endpoint returns the full request URL.
func (l *Loader) Endpoint() string {
	return l.endpoint
}

// Load fetches the country list, removes excluded entries and keeps source
// order. Every failure is a CodeDataLoad error.
func (l *Loader) Load(ctx context.Context) ([]Country, error) {
	ctx, span := otel.Tracer("github.com/travelagency/admin/trip/country").Start(ctx, "country.load")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", l.endpoint))

	countries, err := l.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "country load failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("country.count", len(countries)))
	return countries, nil
}

func (l *Loader) load(ctx context.Context) ([]Country, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, dataLoadError("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, dataLoadError("fetch countries", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, apperrors.WithMetadata(apperrors.CodeDataLoad,
			fmt.Sprintf("fetch countries: unexpected status %d", resp.StatusCode),
			map[string]string{"status": resp.Status, "url": l.endpoint})
	}

	records, err := Decode(resp.Body)
	if err != nil {
		return nil, dataLoadError("decode countries", err)
	}

	countries := make([]Country, 0, len(records))
	for _, record := range records {
		if _, skip := l.excluded[record.Name.Common]; skip {
			continue
		}
		countries = append(countries, record.country())
	}
	return countries, nil
}

func dataLoadError(message string, cause error) error {
	err := apperrors.Wrap(apperrors.CodeDataLoad, message, cause)
	err.Key = "error.data_load.body"
	return err
}

// Options reshapes countries into combo-box options.
func Options(countries []Country) []Option {
	options := make([]Option, 0, len(countries))
	for _, c := range countries {
		options = append(options, Option{Text: c.Name, Value: c.Value})
	}
	return options
}

// Filter returns the countries whose lowercased display label contains the
// lowercased query, in order. An empty query returns every country.
func Filter(countries []Country, query string) []Country {
	out := make([]Country, 0, len(countries))
	needle := strings.ToLower(query)
	for _, c := range countries {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the country whose display label or canonical value equals
// selected.
func Find(countries []Country, selected string) (Country, bool) {
	if selected == "" {
		return Country{}, false
	}
	for _, c := range countries {
		if c.Name == selected || c.Value == selected {
			return c, true
		}
	}
	return Country{}, false
}
