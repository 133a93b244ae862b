package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/travelagency/admin/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "ta_lang"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

var (
	supportedTags   = catalog.Default().Tags()
	tagMatcher      = language.NewMatcher(supportedTags)
	supportedTagSet = func() map[string]language.Tag {
		set := make(map[string]language.Tag, len(supportedTags))
		for _, tag := range supportedTags {
			set[tag.String()] = tag
			if base, confidence := tag.Base(); confidence == language.Exact {
				if _, exists := set[base.String()]; !exists {
					set[base.String()] = tag
				}
			}
		}
		return set
	}()
)

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supportedTags[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the best language tag for the request: the lang
// query parameter, then the cookie, then Accept-Language. The bool reports
// whether the query parameter should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := parseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				return supportedTags[index], false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageOptions lists the supported languages with links that switch to
// them on the current page.
func LanguageOptions(active string, path string, rawQuery string) []LanguageOption {
	options := make([]LanguageOption, 0, len(supportedTags))
	for _, tag := range supportedTags {
		display := tag.String()
		options = append(options, LanguageOption{
			Tag:    display,
			Label:  languageLabel(tag),
			URL:    LanguageURL(path, rawQuery, display),
			Active: display == active,
		})
	}
	return options
}

// LanguageURL returns path with the lang query parameter set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func languageLabel(tag language.Tag) string {
	switch tag.String() {
	case "pt-BR":
		return "Português"
	default:
		return "English"
	}
}

func parseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	tag, ok := supportedTagSet[parsed.String()]
	return tag, ok
}
