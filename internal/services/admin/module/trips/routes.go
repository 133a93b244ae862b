package trips

import (
	"net/http"

	sharedpath "github.com/travelagency/admin/internal/services/admin/module/sharedpath"
	routepath "github.com/travelagency/admin/internal/services/admin/routepath"
	sharedroute "github.com/travelagency/admin/internal/services/shared/route"
)

// Service defines trip creation route handlers consumed by this route module.
type Service interface {
	HandleTripCreatePage(w http.ResponseWriter, r *http.Request)
	HandleTripSubmit(w http.ResponseWriter, r *http.Request)
	HandleTripField(w http.ResponseWriter, r *http.Request)
	HandleTripOverlay(w http.ResponseWriter, r *http.Request)
	HandleTripOptions(w http.ResponseWriter, r *http.Request, field string)
}

// RegisterRoutes wires trip creation routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.Handle(routepath.TripsCreate, sharedroute.MethodHandlers{
		http.MethodGet:  service.HandleTripCreatePage,
		http.MethodPost: service.HandleTripSubmit,
	})
	mux.Handle(routepath.TripsCreateField, sharedroute.MethodHandlers{http.MethodPost: service.HandleTripField})
	mux.Handle(routepath.TripsCreateOverlay, sharedroute.MethodHandlers{http.MethodGet: service.HandleTripOverlay})
	mux.Handle(routepath.TripsCreateOptionsPrefix, sharedroute.MethodHandlers{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			HandleOptionsPath(w, r, service)
		},
	})
}

// HandleOptionsPath parses the field segment of an options URL and
// dispatches to the service.
func HandleOptionsPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}
	parts := sharedpath.Segments(r.URL.Path, routepath.TripsCreateOptionsPrefix)
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	service.HandleTripOptions(w, r, parts[0])
}
