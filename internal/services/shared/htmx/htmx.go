// Package htmx renders templ components for full page loads and HTMX swaps.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeader marks requests issued by HTMX.
	RequestHeader = "HX-Request"
	// TriggerHeader asks the client to dispatch a named event after the swap.
	TriggerHeader = "HX-Trigger"
)

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// Trigger appends a client event name to the HX-Trigger response header.
func Trigger(w http.ResponseWriter, event string) {
	event = strings.TrimSpace(event)
	if w == nil || event == "" {
		return
	}
	existing := w.Header().Get(TriggerHeader)
	if existing == "" {
		w.Header().Set(TriggerHeader, event)
		return
	}
	w.Header().Set(TriggerHeader, existing+", "+event)
}

// RenderPage renders a page with status 200. See RenderPageWithStatus.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment, full templ.Component, htmxTitle string) {
	RenderPageWithStatus(w, r, fragment, full, htmxTitle, http.StatusOK)
}

// RenderPageWithStatus renders full for normal requests. HTMX requests get the
// <main> body of full (or fragment when full is nil), prefixed with htmxTitle
// when the body carries no title of its own.
func RenderPageWithStatus(w http.ResponseWriter, r *http.Request, fragment, full templ.Component, htmxTitle string, status int) {
	if status <= 0 {
		status = http.StatusOK
	}
	if !IsHTMXRequest(r) {
		if full == nil {
			full = fragment
		}
		if full == nil {
			return
		}
		templ.Handler(full, templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}

	target, fromFull := fragment, false
	if full != nil {
		target, fromFull = full, true
	}
	if target == nil {
		return
	}
	var buf bytes.Buffer
	if err := target.Render(r.Context(), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	if fromFull {
		if main, ok := extractMainContent(body); ok {
			body = main
		}
	}
	body = prependTitle(body, htmxTitle)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func prependTitle(body []byte, title string) []byte {
	if strings.TrimSpace(title) == "" {
		return body
	}
	if bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	out := make([]byte, 0, len(title)+len(body))
	out = append(out, title...)
	return append(out, body...)
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.IndexByte(body[start:], '>')
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.LastIndex(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
