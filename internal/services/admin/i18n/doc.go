// Package i18n resolves the admin UI language for a request.
package i18n
