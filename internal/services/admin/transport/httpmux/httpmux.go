// Package httpmux assembles the admin root mux and its middleware chain.
package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/travelagency/admin/internal/services/admin/routepath"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// MountStatic serves staticFS under the static prefix, wrapped by mw.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, mw ...Middleware) {
	if rootMux == nil || staticFS == nil {
		return
	}
	var staticHandler http.Handler = http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	rootMux.Handle(routepath.StaticPrefix, Chain(staticHandler, mw...))
}

// MountAdminRoutes mounts the admin page routes under the root path.
func MountAdminRoutes(rootMux *http.ServeMux, adminMux *http.ServeMux) {
	if rootMux == nil || adminMux == nil {
		return
	}
	rootMux.Handle(routepath.Root, adminMux)
}

// Chain applies mw so that the first middleware is the outermost.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			h = mw[i](h)
		}
	}
	return h
}
