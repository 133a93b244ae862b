// Package routepath holds the admin URL paths and builders.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Users       = "/users"
	UsersExport = "/users/export.csv"
)

const (
	TripsCreate              = "/trips/create"
	TripsCreateField         = "/trips/create/field"
	TripsCreateOverlay       = "/trips/create/overlay"
	TripsCreateOptionsPrefix = "/trips/create/options/"
)

// TripsCreateOptions returns the combo-box data URL for field.
func TripsCreateOptions(field string) string {
	return TripsCreateOptionsPrefix + escapeSegment(field)
}

// TripsCreateOptionsQuery returns the combo-box data URL filtered by query.
func TripsCreateOptionsQuery(field string, query string) string {
	path := TripsCreateOptions(field)
	if strings.TrimSpace(query) == "" {
		return path
	}
	return path + "?" + url.Values{"q": {query}}.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
