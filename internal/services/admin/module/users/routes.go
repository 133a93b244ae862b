package users

import (
	"net/http"

	routepath "github.com/travelagency/admin/internal/services/admin/routepath"
	sharedroute "github.com/travelagency/admin/internal/services/shared/route"
)

// Service defines users route handlers consumed by this route module.
type Service interface {
	HandleUsersPage(w http.ResponseWriter, r *http.Request)
	HandleUsersExport(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires user routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.Handle(routepath.Users, sharedroute.MethodHandlers{http.MethodGet: service.HandleUsersPage})
	mux.Handle(routepath.UsersExport, sharedroute.MethodHandlers{http.MethodGet: service.HandleUsersExport})
	mux.HandleFunc(routepath.Users+"/", func(w http.ResponseWriter, r *http.Request) {
		if sharedroute.RedirectTrailingSlash(w, r) {
			return
		}
		http.NotFound(w, r)
	})
}
