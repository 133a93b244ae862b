package dashboard

import (
	"net/http"

	routepath "github.com/travelagency/admin/internal/services/admin/routepath"
	sharedroute "github.com/travelagency/admin/internal/services/shared/route"
)

// Service defines dashboard route handlers consumed by this route module.
type Service interface {
	HandleDashboard(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires dashboard routes into the provided mux. The root
// pattern is a catch-all, so anything but "/" itself is a 404.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.Handle(routepath.Root, sharedroute.MethodHandlers{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != routepath.Root {
				http.NotFound(w, r)
				return
			}
			service.HandleDashboard(w, r)
		},
	})
}
