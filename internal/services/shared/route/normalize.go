// Package route holds request-shape helpers shared by route modules.
package route

import (
	"net/http"
	"strings"
)

// RedirectTrailingSlash canonicalizes request paths by stripping trailing "/" characters.
//
// It returns true when a redirect was written. Route handlers should stop further
// processing when true.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}
	canonical := strings.TrimRight(r.URL.Path, "/")
	if canonical == "" {
		canonical = "/"
	}
	if canonical == r.URL.Path {
		return false
	}
	target := canonical
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
	return true
}

// MethodHandlers dispatches by HTTP method. GET handlers also serve HEAD.
type MethodHandlers map[string]http.HandlerFunc

// ServeHTTP implements http.Handler, answering 405 with an Allow header for
// unsupported methods.
func (m MethodHandlers) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodHead {
		if _, ok := m[http.MethodHead]; !ok {
			method = http.MethodGet
		}
	}
	if handler, ok := m[method]; ok && handler != nil {
		handler(w, r)
		return
	}
	w.Header().Set("Allow", m.allow())
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func (m MethodHandlers) allow() string {
	order := []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	allowed := make([]string, 0, len(m)+1)
	for _, method := range order {
		if method == http.MethodHead {
			if _, ok := m[http.MethodGet]; ok {
				allowed = append(allowed, method)
				continue
			}
		}
		if _, ok := m[method]; ok {
			allowed = append(allowed, method)
		}
	}
	return strings.Join(allowed, ", ")
}
