package admin

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jszwec/csvutil"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/platform/requestctx"
	"github.com/travelagency/admin/internal/services/admin/identity"
	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
	"github.com/travelagency/admin/internal/services/admin/trip/form"
	"github.com/travelagency/admin/internal/services/shared/htmx"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	stats    storage.DashboardStats
	trips    []storage.Trip
	users    []storage.User
	err      error
	gotLimit int
}

func (s *fakeStore) DashboardStats(context.Context, time.Time) (storage.DashboardStats, error) {
	return s.stats, s.err
}

func (s *fakeStore) RecentTrips(_ context.Context, limit int) ([]storage.Trip, error) {
	s.gotLimit = limit
	if len(s.trips) > limit {
		return s.trips[:limit], s.err
	}
	return s.trips, s.err
}

func (s *fakeStore) ListUsers(context.Context) ([]storage.User, error) {
	return s.users, s.err
}

type fakeLoader struct {
	countries []country.Country
	err       error
	calls     int
}

func (l *fakeLoader) Load(context.Context) ([]country.Country, error) {
	l.calls++
	return l.countries, l.err
}

type recordingSink struct {
	mu      sync.Mutex
	records []diagnostics.Record
}

func (s *recordingSink) Record(_ context.Context, rec diagnostics.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *recordingSink) events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Event)
	}
	return out
}

type testEnv struct {
	handler   http.Handler
	store     *fakeStore
	loader    *fakeLoader
	sink      *recordingSink
	resolver  *identity.TokenResolver
	finalized []form.FormData
	mu        sync.Mutex
}

func testCountries() []country.Country {
	return []country.Country{
		{Name: "🇫🇷 France", Value: "France", Coordinates: country.Coordinates{46, 2}},
		{Name: "🇯🇵 Japan", Value: "Japan", Coordinates: country.Coordinates{36, 138}},
		{Name: "🇦🇶 Antarctica", Value: "Antarctica"},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	resolver, err := identity.NewTokenResolver(identity.Config{
		Secret: []byte("test-secret"),
		Now:    func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("token resolver: %v", err)
	}
	env := &testEnv{
		store: &fakeStore{
			stats: storage.DashboardStats{
				TotalUsers:       10,
				UsersJoined:      storage.MonthCount{CurrentMonth: 6, LastMonth: 4},
				TotalTrips:       5,
				TripsCreated:     storage.MonthCount{CurrentMonth: 1, LastMonth: 4},
				ActiveUsers:      9,
				ActiveUsersMonth: storage.MonthCount{CurrentMonth: 3, LastMonth: 3},
			},
			trips: []storage.Trip{
				{ID: "t1", Name: "Kyoto", Duration: 5},
				{ID: "t2", Name: "Lisbon", Duration: 3},
				{ID: "t3", Name: "Socotra", Duration: 4},
				{ID: "t4", Name: "Baikal", Duration: 6},
				{ID: "t5", Name: "Roraima", Duration: 7},
			},
			users: []storage.User{
				{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", JoinedAt: testNow.AddDate(0, 0, -1), ItineraryCount: 2, Status: storage.StatusAdmin},
				{ID: "u2", Name: "Bob", Email: "bob@example.com", JoinedAt: testNow.AddDate(0, -1, 0), Status: storage.StatusUser},
			},
		},
		loader:   &fakeLoader{countries: testCountries()},
		sink:     &recordingSink{},
		resolver: resolver,
	}
	env.handler = NewHandler(Dependencies{
		Store:     env.store,
		Countries: env.loader,
		Identity:  resolver,
		Finalizer: form.FinalizerFunc(func(_ context.Context, _ identity.Identity, data form.FormData) error {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.finalized = append(env.finalized, data)
			return nil
		}),
		Diagnostics: env.sink,
		Now:         func() time.Time { return testNow },
	})
	return env
}

func (e *testEnv) sessionCookie(t *testing.T, name string) *http.Cookie {
	t.Helper()
	token, err := e.resolver.Issue(identity.Identity{ID: "u1", Name: name, Email: "ada@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return identity.SessionCookie(token, time.Hour)
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	return doc
}

func TestDashboardGuest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	doc := parseDoc(t, rec)
	if got := doc.Find("title").Text(); got != "Dashboard - Travel Agency" {
		t.Fatalf("title = %q", got)
	}
	if got := doc.Find("main h1").Text(); got != "Welcome Guest 👋" {
		t.Fatalf("welcome = %q", got)
	}
	cards := doc.Find(".stats-card")
	if cards.Length() != 3 {
		t.Fatalf("stats cards = %d, want 3", cards.Length())
	}
	wantTrends := []string{"increment", "decrement", "no change"}
	cards.Each(func(i int, card *goquery.Selection) {
		if got := card.AttrOr("data-trend", ""); got != wantTrends[i] {
			t.Errorf("card %d trend = %q, want %q", i, got, wantTrends[i])
		}
	})
	if got := doc.Find(".trip-card").Length(); got != 4 {
		t.Fatalf("trip cards = %d, want 4", got)
	}
	if env.store.gotLimit != dashboardTripLimit {
		t.Fatalf("trip limit = %d, want %d", env.store.gotLimit, dashboardTripLimit)
	}
}

func TestDashboardSignedIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(env.sessionCookie(t, "Ada"))
	doc := parseDoc(t, env.do(req))
	if got := doc.Find("main h1").Text(); got != "Welcome Ada 👋" {
		t.Fatalf("welcome = %q", got)
	}
	if got := doc.Find(".current-user").Text(); got != "Ada" {
		t.Fatalf("current user = %q", got)
	}
}

func TestDashboardLocalized(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	doc := parseDoc(t, rec)
	if got := doc.Find("main h1").Text(); got != "Bem-vindo Visitante 👋" {
		t.Fatalf("welcome = %q", got)
	}
	if got := doc.Find("html").AttrOr("lang", ""); got != "pt-BR" {
		t.Fatalf("lang = %q", got)
	}
	var persisted bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "ta_lang" && cookie.Value == "pt-BR" {
			persisted = true
		}
	}
	if !persisted {
		t.Fatal("language cookie not set")
	}
}

func TestDashboardHTMXReturnsMainContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(htmx.RequestHeader, "true")
	rec := env.do(req)
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<title>Dashboard - Travel Agency</title>") {
		t.Fatalf("htmx body missing title prefix: %q", body)
	}
	if strings.Contains(body, "<aside") || strings.Contains(body, "<main") {
		t.Fatalf("htmx body contains layout: %q", body)
	}
}

func TestDashboardStoreFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.err = errors.New("disk gone")
	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk gone") {
		t.Fatal("storage error leaked into page")
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	if rec := env.do(httptest.NewRequest(http.MethodGet, "/nope", nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUsersPage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/users", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if got := doc.Find("title").Text(); got != "All Users - Travel Agency" {
		t.Fatalf("title = %q", got)
	}
	rows := doc.Find("tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("rows = %d, want 2", rows.Length())
	}
	if got := rows.First().Find(".avatar").Text(); got != "AL" {
		t.Fatalf("initials = %q", got)
	}
	if got := rows.First().Find("td").Eq(2).Text(); got != "Mar 14, 2026" {
		t.Fatalf("joined = %q", got)
	}
}

func TestUsersExportCSV(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/users/export.csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("content type = %q", got)
	}
	dec, err := csvutil.NewDecoder(csv.NewReader(strings.NewReader(rec.Body.String())))
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	var users []storage.User
	if err := dec.Decode(&users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 2 || users[0].Email != "ada@example.com" || users[0].ItineraryCount != 2 {
		t.Fatalf("users = %+v", users)
	}
	if !users[1].JoinedAt.Equal(testNow.AddDate(0, -1, 0)) {
		t.Fatalf("joined_at = %v", users[1].JoinedAt)
	}
}

func TestUsersExportEmptyHasHeader(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.users = nil
	rec := env.do(httptest.NewRequest(http.MethodGet, "/users/export.csv", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "id,name,email,image_url,joined_at,itinerary_count,status" {
		t.Fatalf("body = %q", got)
	}
}

func TestStaticAssets(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	for _, path := range []string{"/static/app.css", "/static/trips.js"} {
		rec := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if rec.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s missing cache header", path)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodDelete, "/users", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRenderErrorStatusFromCode(t *testing.T) {
	t.Parallel()
	h := newHandler(Dependencies{})
	rec := httptest.NewRecorder()
	h.renderError(rec, httptest.NewRequest(http.MethodGet, "/trips/create", nil), apperrors.New(apperrors.CodeNotFound, "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := parseDoc(t, rec).Find(".error-page h1").Text(); got != "Page not found" {
		t.Fatalf("heading = %q", got)
	}
}

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode json %q: %v", rec.Body.String(), err)
	}
}

func TestWithRequestLocaleStoresResolvedTag(t *testing.T) {
	t.Parallel()
	var got string
	h := withRequestLocale(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestctx.LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", got)
	}
}
