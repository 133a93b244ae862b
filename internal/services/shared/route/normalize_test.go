package route

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRedirectTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantOK   bool
		wantCode int
		wantLoc  string
	}{
		{name: "no trailing slash", target: "/users", wantCode: http.StatusOK},
		{name: "root", target: "/", wantCode: http.StatusOK},
		{name: "trailing slash", target: "/users/", wantOK: true, wantCode: http.StatusMovedPermanently, wantLoc: "/users"},
		{name: "keeps query", target: "/trips/create/?lang=pt-BR", wantOK: true, wantCode: http.StatusMovedPermanently, wantLoc: "/trips/create?lang=pt-BR"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if got := RedirectTrailingSlash(rec, req); got != tc.wantOK {
				t.Fatalf("RedirectTrailingSlash = %v, want %v", got, tc.wantOK)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
				t.Fatalf("Location = %q, want %q", loc, tc.wantLoc)
			}
		})
	}
	if RedirectTrailingSlash(nil, nil) {
		t.Fatal("nil inputs must not redirect")
	}
}

func TestMethodHandlers(t *testing.T) {
	t.Parallel()

	var called string
	handlers := MethodHandlers{
		http.MethodGet:  func(http.ResponseWriter, *http.Request) { called = "get" },
		http.MethodPost: func(http.ResponseWriter, *http.Request) { called = "post" },
	}

	tests := []struct {
		method   string
		wantCall string
		wantCode int
	}{
		{method: http.MethodGet, wantCall: "get", wantCode: http.StatusOK},
		{method: http.MethodHead, wantCall: "get", wantCode: http.StatusOK},
		{method: http.MethodPost, wantCall: "post", wantCode: http.StatusOK},
		{method: http.MethodDelete, wantCode: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		called = ""
		rec := httptest.NewRecorder()
		handlers.ServeHTTP(rec, httptest.NewRequest(tc.method, "/", nil))
		if rec.Code != tc.wantCode || called != tc.wantCall {
			t.Fatalf("%s: status = %d call = %q", tc.method, rec.Code, called)
		}
		if tc.wantCode == http.StatusMethodNotAllowed {
			if allow := rec.Header().Get("Allow"); allow != "GET, HEAD, POST" {
				t.Fatalf("Allow = %q", allow)
			}
		}
	}
}
