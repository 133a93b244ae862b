package admin

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/services/admin/routepath"
	"github.com/travelagency/admin/internal/services/admin/templates"
	"github.com/travelagency/admin/internal/services/admin/trip/catalog"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
	"github.com/travelagency/admin/internal/services/admin/trip/form"
	"github.com/travelagency/admin/internal/services/admin/trip/overlay"
	"github.com/travelagency/admin/internal/services/shared/htmx"
)

const (
	// fieldParam names the form field a field update targets.
	fieldParam = "field"
	// queryParam carries the combo-box search text.
	queryParam = "q"
	// overlayUpdatedEvent tells the map script to redraw.
	overlayUpdatedEvent = "trip-overlay-updated"
)

// overlayResponse is the JSON body of the overlay endpoint.
type overlayResponse struct {
	DataSource []overlay.Entry            `json:"dataSource"`
	GeoJSON    *geojson.FeatureCollection `json:"geojson"`
}

func (h *Handler) handleTripCreatePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.countries == nil {
		h.renderError(w, r, apperrors.New(apperrors.CodeDataLoad, "country loader is not configured"))
		return
	}
	countries, err := h.countries.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "load countries", "error", err)
		h.sink.Record(ctx, diagnostics.Record{
			Event:   "country.load.failed",
			Message: "country data could not be loaded",
			Err:     err,
		})
		h.renderError(w, r, err)
		return
	}

	controller := form.NewController(countries, form.Dependencies{
		Identity:    h.identity,
		Finalizer:   h.finalizer,
		Diagnostics: h.sink,
	})
	h.startFormSession(w, r, controller)

	loc, lang := h.localizer(w, r)
	view := h.tripFormView(h.pageContext(lang, loc, r, "trips.title"), controller, false)
	htmx.RenderPage(w, r, nil, templates.TripCreatePage(view), htmx.TitleTag(view.Title()))
}

func (h *Handler) handleTripField(w http.ResponseWriter, r *http.Request) {
	controller, ok := h.formController(r)
	if !ok {
		http.Error(w, "form session not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	field := strings.TrimSpace(r.PostForm.Get(fieldParam))
	if err := controller.Update(field, r.PostForm.Get(field)); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, form.ErrSubmitInFlight) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	loc, _ := h.localizer(w, r)
	htmx.Trigger(w, overlayUpdatedEvent)
	mapView := tripMapView(controller.Data().Country, controller.Countries())
	htmx.RenderPage(w, r, templates.TripMap(loc, mapView), nil, "")
}

func (h *Handler) handleTripOptions(w http.ResponseWriter, r *http.Request, field string) {
	query := r.URL.Query().Get(queryParam)
	if field == form.FieldCountry {
		controller, ok := h.formController(r)
		if !ok {
			http.Error(w, "form session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, r, country.Options(country.Filter(controller.Countries(), query)))
		return
	}
	values, err := h.catalog.Filter(field, query)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	options := make([]country.Option, 0, len(values))
	for _, value := range values {
		options = append(options, country.Option{Text: value, Value: value})
	}
	writeJSON(w, r, options)
}

func (h *Handler) handleTripOverlay(w http.ResponseWriter, r *http.Request) {
	controller, ok := h.formController(r)
	if !ok {
		http.Error(w, "form session not found", http.StatusNotFound)
		return
	}
	entries := overlay.Build(controller.Data().Country, controller.Countries())
	writeJSON(w, r, overlayResponse{DataSource: entries, GeoJSON: overlay.FeatureCollection(entries)})
}

func (h *Handler) handleTripSubmit(w http.ResponseWriter, r *http.Request) {
	controller, ok := h.formController(r)
	if !ok {
		if htmx.IsHTMXRequest(r) {
			w.Header().Set("HX-Redirect", routepath.TripsCreate)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, routepath.TripsCreate, http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	for _, field := range form.Fields() {
		if _, present := r.PostForm[field]; !present {
			continue
		}
		err := controller.Update(field, r.PostForm.Get(field))
		if errors.Is(err, form.ErrSubmitInFlight) {
			// Submit reports the busy outcome below.
			break
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result := controller.Submit(r.Context())
	status := http.StatusOK
	switch result.Outcome {
	case form.OutcomeInvalid:
		status = apperrors.CodeValidation.HTTPStatus()
	case form.OutcomeBusy:
		status = http.StatusConflict
	case form.OutcomeUnauthenticated, form.OutcomeFailed:
		slog.WarnContext(r.Context(), "trip submit did not complete", "outcome", string(result.Outcome), "error", result.Err)
	}

	loc, lang := h.localizer(w, r)
	view := h.tripFormView(h.pageContext(lang, loc, r, "trips.title"), controller, result.Outcome == form.OutcomeSucceeded)
	if htmx.IsHTMXRequest(r) {
		htmx.RenderPageWithStatus(w, r, templates.TripForm(view), nil, "", status)
		return
	}
	htmx.RenderPageWithStatus(w, r, nil, templates.TripCreatePage(view), "", status)
}

func (h *Handler) tripFormView(page templates.PageContext, controller *form.Controller, submitted bool) templates.TripFormView {
	snapshot := controller.Snapshot()
	data := snapshot.Data
	countries := controller.Countries()

	countryOptions := make([]templates.Option, 0, len(countries))
	for _, c := range countries {
		countryOptions = append(countryOptions, templates.Option{
			Text:     c.Name,
			Value:    c.Value,
			Selected: data.Country != "" && (data.Country == c.Name || data.Country == c.Value),
		})
	}

	return templates.TripFormView{
		PageContext:    page,
		Action:         routepath.TripsCreate,
		FieldURL:       routepath.TripsCreateField,
		CountryOptions: countryOptions,
		CountryURL:     routepath.TripsCreateOptions(form.FieldCountry),
		Duration:       data.Duration,
		SelectFields:   h.selectFields(page.Loc, data),
		ErrorMessage:   localizedError(page.Loc, snapshot),
		Loading:        snapshot.Loading,
		Submitted:      submitted,
		Map:            tripMapView(data.Country, countries),
	}
}

func (h *Handler) selectFields(loc templates.Localizer, data form.FormData) []templates.SelectField {
	keys := catalog.SelectFields()
	fields := make([]templates.SelectField, 0, len(keys))
	for _, key := range keys {
		values, err := h.catalog.Values(key)
		if err != nil {
			continue
		}
		selected := data.Value(key)
		options := make([]templates.Option, 0, len(values))
		for _, value := range values {
			options = append(options, templates.Option{Text: value, Value: value, Selected: value == selected})
		}
		label := templates.T(loc, "trips.field."+key)
		if label == "trips.field."+key {
			label = catalog.FormatKey(key)
		}
		fields = append(fields, templates.SelectField{
			Key:        key,
			Label:      label,
			Options:    options,
			OptionsURL: routepath.TripsCreateOptions(key),
		})
	}
	return fields
}

// localizedError prefers the translated message for the snapshot's error key.
func localizedError(loc templates.Localizer, snapshot form.Snapshot) string {
	if snapshot.ErrorKey != "" && loc != nil {
		if text := templates.T(loc, snapshot.ErrorKey); text != snapshot.ErrorKey {
			return text
		}
	}
	return snapshot.ErrorMessage
}

func tripMapView(selected string, countries []country.Country) templates.TripMapView {
	entries := overlay.Build(selected, countries)
	entry := entries[0]
	view := templates.TripMapView{
		Country:    entry.Country,
		Color:      entry.Color,
		OverlayURL: routepath.TripsCreateOverlay,
		DataSource: template.JS("[]"),
	}
	if len(entry.Coordinates) == 2 {
		view.HasCoords = true
		view.Lat, view.Lng = entry.Coordinates[0], entry.Coordinates[1]
	}
	if encoded, err := json.Marshal(entries); err == nil {
		view.DataSource = template.JS(encoded)
	}
	return view
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "encode json response", "path", r.URL.Path, "error", err)
	}
}
