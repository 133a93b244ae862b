package trips

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall  string
	lastField string
}

func (f *fakeService) HandleTripCreatePage(http.ResponseWriter, *http.Request) {
	f.lastCall = "create_page"
}

func (f *fakeService) HandleTripSubmit(http.ResponseWriter, *http.Request) {
	f.lastCall = "submit"
}

func (f *fakeService) HandleTripField(http.ResponseWriter, *http.Request) {
	f.lastCall = "field"
}

func (f *fakeService) HandleTripOverlay(http.ResponseWriter, *http.Request) {
	f.lastCall = "overlay"
}

func (f *fakeService) HandleTripOptions(_ http.ResponseWriter, _ *http.Request, field string) {
	f.lastCall = "options"
	f.lastField = field
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	tests := []struct {
		method    string
		path      string
		wantCode  int
		wantCall  string
		wantField string
	}{
		{method: http.MethodGet, path: "/trips/create", wantCode: http.StatusOK, wantCall: "create_page"},
		{method: http.MethodPost, path: "/trips/create", wantCode: http.StatusOK, wantCall: "submit"},
		{method: http.MethodPost, path: "/trips/create/field", wantCode: http.StatusOK, wantCall: "field"},
		{method: http.MethodGet, path: "/trips/create/field", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/trips/create/overlay", wantCode: http.StatusOK, wantCall: "overlay"},
		{method: http.MethodGet, path: "/trips/create/options/groupType?q=so", wantCode: http.StatusOK, wantCall: "options", wantField: "groupType"},
		{method: http.MethodGet, path: "/trips/create/options/country", wantCode: http.StatusOK, wantCall: "options", wantField: "country"},
		{method: http.MethodGet, path: "/trips/create/options/", wantCode: http.StatusMovedPermanently},
		{method: http.MethodGet, path: "/trips/create/options/a/b", wantCode: http.StatusNotFound},
		{method: http.MethodDelete, path: "/trips/create", wantCode: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			svc.lastCall, svc.lastField = "", ""
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall || svc.lastField != tc.wantField {
				t.Fatalf("call = %q field = %q, want %q %q", svc.lastCall, svc.lastField, tc.wantCall, tc.wantField)
			}
		})
	}
}

func TestHandleOptionsPathNilService(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	HandleOptionsPath(rec, httptest.NewRequest(http.MethodGet, "/trips/create/options/budget", nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
