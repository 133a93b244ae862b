package admin

import (
	"net/http"

	dashboardmodule "github.com/travelagency/admin/internal/services/admin/module/dashboard"
	tripsmodule "github.com/travelagency/admin/internal/services/admin/module/trips"
	usersmodule "github.com/travelagency/admin/internal/services/admin/module/users"
)

type dashboardModuleService struct {
	handler *Handler
}

func newDashboardModuleService(h *Handler) dashboardmodule.Service {
	if h == nil {
		return nil
	}
	return dashboardModuleService{handler: h}
}

func (s dashboardModuleService) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s.handler.handleDashboard(w, r)
}

type usersModuleService struct {
	handler *Handler
}

func newUsersModuleService(h *Handler) usersmodule.Service {
	if h == nil {
		return nil
	}
	return usersModuleService{handler: h}
}

func (s usersModuleService) HandleUsersPage(w http.ResponseWriter, r *http.Request) {
	s.handler.handleUsersPage(w, r)
}

func (s usersModuleService) HandleUsersExport(w http.ResponseWriter, r *http.Request) {
	s.handler.handleUsersExport(w, r)
}

type tripsModuleService struct {
	handler *Handler
}

func newTripsModuleService(h *Handler) tripsmodule.Service {
	if h == nil {
		return nil
	}
	return tripsModuleService{handler: h}
}

func (s tripsModuleService) HandleTripCreatePage(w http.ResponseWriter, r *http.Request) {
	s.handler.handleTripCreatePage(w, r)
}

func (s tripsModuleService) HandleTripSubmit(w http.ResponseWriter, r *http.Request) {
	s.handler.handleTripSubmit(w, r)
}

func (s tripsModuleService) HandleTripField(w http.ResponseWriter, r *http.Request) {
	s.handler.handleTripField(w, r)
}

func (s tripsModuleService) HandleTripOverlay(w http.ResponseWriter, r *http.Request) {
	s.handler.handleTripOverlay(w, r)
}

func (s tripsModuleService) HandleTripOptions(w http.ResponseWriter, r *http.Request, field string) {
	s.handler.handleTripOptions(w, r, field)
}
