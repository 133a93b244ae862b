package admin

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/message"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/platform/requestctx"
	"github.com/travelagency/admin/internal/services/admin/i18n"
	"github.com/travelagency/admin/internal/services/admin/identity"
	dashboardmodule "github.com/travelagency/admin/internal/services/admin/module/dashboard"
	tripsmodule "github.com/travelagency/admin/internal/services/admin/module/trips"
	usersmodule "github.com/travelagency/admin/internal/services/admin/module/users"
	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/templates"
	"github.com/travelagency/admin/internal/services/admin/transport/httpmux"
	"github.com/travelagency/admin/internal/services/admin/trip/catalog"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
	"github.com/travelagency/admin/internal/services/admin/trip/form"
	"github.com/travelagency/admin/internal/services/shared/htmx"
)

//go:embed static
var staticFiles embed.FS

// CountryLoader fetches the country reference list for a form visit.
type CountryLoader interface {
	Load(ctx context.Context) ([]country.Country, error)
}

// PageStore is the storage surface the pages read from.
type PageStore interface {
	storage.DashboardStore
	storage.UserStore
}

// Dependencies wires the handler's collaborators.
type Dependencies struct {
	Store       PageStore
	Countries   CountryLoader
	Catalog     *catalog.Catalog
	Identity    form.IdentityResolver
	Finalizer   form.Finalizer
	Diagnostics diagnostics.Sink
	Now         func() time.Time
}

// Handler routes admin requests.
type Handler struct {
	store     PageStore
	countries CountryLoader
	catalog   *catalog.Catalog
	identity  form.IdentityResolver
	finalizer form.Finalizer
	sink      diagnostics.Sink
	forms     *formSessionStore
	now       func() time.Time
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(deps Dependencies) http.Handler {
	return newHandler(deps).routes()
}

func newHandler(deps Dependencies) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	sink := deps.Diagnostics
	if sink == nil {
		sink = diagnostics.LogSink{}
	}
	return &Handler{
		store:     deps.Store,
		countries: deps.Countries,
		catalog:   cat,
		identity:  deps.Identity,
		finalizer: deps.Finalizer,
		sink:      sink,
		forms:     newFormSessionStore(now),
		now:       now,
	}
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	adminMux := http.NewServeMux()
	dashboardmodule.RegisterRoutes(adminMux, newDashboardModuleService(h))
	usersmodule.RegisterRoutes(adminMux, newUsersModuleService(h))
	tripsmodule.RegisterRoutes(adminMux, newTripsModuleService(h))

	rootMux := http.NewServeMux()
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		slog.Error("admin static assets unavailable", "error", err)
	} else {
		httpmux.MountStatic(rootMux, static, withStaticCache)
	}
	httpmux.MountAdminRoutes(rootMux, adminMux)
	return httpmux.Chain(rootMux, identity.Middleware, withRequestLocale)
}

// withRequestLocale stores the resolved language tag for diagnostics.
func withRequestLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, _ := i18n.ResolveTag(r)
		next.ServeHTTP(w, r.WithContext(requestctx.WithLocale(r.Context(), tag.String())))
	})
}

func withStaticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

// currentIdentity resolves the signed-in user, treating any failure as a
// guest visit.
func (h *Handler) currentIdentity(ctx context.Context) identity.Identity {
	if h.identity == nil {
		return identity.Identity{}
	}
	who, err := h.identity.CurrentIdentity(ctx)
	if err != nil {
		slog.DebugContext(ctx, "session identity unavailable", "error", err)
		return identity.Identity{}
	}
	return who
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request, titleKey string) templates.PageContext {
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		TitleKey:     titleKey,
		UserName:     h.currentIdentity(r.Context()).Name,
		Languages:    i18n.LanguageOptions(lang, r.URL.Path, r.URL.RawQuery),
	}
}

// renderError renders the error page with the status mapped from err's code.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	loc, lang := h.localizer(w, r)
	code := apperrors.CodeOf(err)
	view := templates.ErrorView{
		HeadingKey: "error.generic.title",
		Status:     code.HTTPStatus(),
	}
	switch code {
	case apperrors.CodeDataLoad:
		view.HeadingKey = "error.data_load.title"
		view.BodyKey = apperrors.KeyOf(err)
	case apperrors.CodeNotFound:
		view.HeadingKey = "error.not_found.title"
	}
	view.PageContext = h.pageContext(lang, loc, r, view.HeadingKey)
	htmx.RenderPageWithStatus(w, r, nil, templates.ErrorPage(view), htmx.TitleTag(view.Title()), view.Status)
}
