package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

//go:embed html/*.html html/partials/*.html
var files embed.FS

// Page template names. Each page file defines "content" and is executed
// through the shared "layout".
const (
	pageDashboard  = "dashboard"
	pageUsers      = "users"
	pageTripCreate = "trip_create"
	pageError      = "error"
)

var pages = mustParsePages(pageDashboard, pageUsers, pageTripCreate, pageError)

// parseFuncs are placeholders replaced per render with the request localizer.
func parseFuncs() template.FuncMap {
	return template.FuncMap{
		"t":     func(key string, args ...any) string { return key },
		"join":  strings.Join,
		"lower": strings.ToLower,
		"header": func(heading, subtitle string) pageHeader {
			return pageHeader{Heading: heading, Subtitle: subtitle}
		},
	}
}

type pageHeader struct {
	Heading  string
	Subtitle string
}

func parsePages(names ...string) (map[string]*template.Template, error) {
	base, err := template.New("base").Funcs(parseFuncs()).ParseFS(files, "html/layout.html", "html/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	sets := make(map[string]*template.Template, len(names))
	for _, name := range names {
		set, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := set.ParseFS(files, "html/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		sets[name] = set
	}
	return sets, nil
}

func mustParsePages(names ...string) map[string]*template.Template {
	sets, err := parsePages(names...)
	if err != nil {
		panic(err)
	}
	return sets
}

// component executes entry from the named page set with "t" bound to loc.
func component(page, entry string, loc Localizer, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		set, ok := pages[page]
		if !ok {
			return fmt.Errorf("unknown page template %q", page)
		}
		tmpl, err := set.Clone()
		if err != nil {
			return fmt.Errorf("clone page %s: %w", page, err)
		}
		tmpl.Funcs(template.FuncMap{
			"t": func(key string, args ...any) string { return T(loc, key, args...) },
		})
		if err := tmpl.ExecuteTemplate(w, entry, data); err != nil {
			return fmt.Errorf("render %s/%s: %w", page, entry, err)
		}
		return nil
	})
}

// DashboardPage renders the full dashboard.
func DashboardPage(view DashboardView) templ.Component {
	return component(pageDashboard, "layout", view.Loc, view)
}

// UsersPage renders the full users page.
func UsersPage(view UsersView) templ.Component {
	return component(pageUsers, "layout", view.Loc, view)
}

// TripCreatePage renders the full create-trip page.
func TripCreatePage(view TripFormView) templ.Component {
	return component(pageTripCreate, "layout", view.Loc, view)
}

// TripForm renders only the form section, used as the HTMX swap target
// after a submit.
func TripForm(view TripFormView) templ.Component {
	return component(pageTripCreate, "trip-form", view.Loc, view)
}

// TripMap renders the map overlay fragment.
func TripMap(loc Localizer, view TripMapView) templ.Component {
	return component(pageTripCreate, "trip-map", loc, view)
}

// ErrorPage renders a full error page.
func ErrorPage(view ErrorView) templ.Component {
	return component(pageError, "layout", view.Loc, view)
}
