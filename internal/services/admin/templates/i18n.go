package templates

import "golang.org/x/text/message"

// Localizer provides translated strings for page templates.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string, or the key itself when no localizer is set.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}
