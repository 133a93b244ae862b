package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/travelagency/admin/internal/platform/timeouts"
	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/templates"
	"github.com/travelagency/admin/internal/services/shared/htmx"
)

// dashboardTripLimit is how many created trips the dashboard lists.
const dashboardTripLimit = 4

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r, "dashboard.title")

	welcome := page.UserName
	if welcome == "" {
		welcome = templates.T(loc, "core.guest")
	}
	view := templates.DashboardView{PageContext: page, WelcomeName: welcome}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.DashboardQuery)
		defer cancel()
		stats, err := h.store.DashboardStats(ctx, h.now())
		if err != nil {
			slog.ErrorContext(ctx, "load dashboard stats", "error", err)
			h.renderError(w, r, err)
			return
		}
		trips, err := h.store.RecentTrips(ctx, dashboardTripLimit)
		if err != nil {
			slog.ErrorContext(ctx, "load created trips", "error", err)
			h.renderError(w, r, err)
			return
		}
		view.Stats = statsCards(stats)
		view.Trips = tripCards(trips)
	} else {
		view.Stats = statsCards(storage.DashboardStats{})
	}

	htmx.RenderPage(w, r, nil, templates.DashboardPage(view), htmx.TitleTag(page.Title()))
}

func tripCards(trips []storage.Trip) []templates.TripCard {
	cards := make([]templates.TripCard, 0, len(trips))
	for _, trip := range trips {
		cards = append(cards, templates.TripCard{
			ID:       trip.ID,
			Name:     trip.Name,
			ImageURL: trip.ImageURL,
			Location: trip.Location,
			Tags:     trip.Tags,
			Price:    trip.EstimatedPrice,
			Days:     trip.Duration,
		})
	}
	return cards
}
