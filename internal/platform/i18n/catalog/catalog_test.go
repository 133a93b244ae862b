package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := len(bundle.NamespaceMessages("en-US", "admin")); got == 0 {
		t.Fatal("expected en-US admin namespace messages")
	}
}

func TestLocalesHaveSameKeys(t *testing.T) {
	bundle := Default()
	base := bundle.locales[BaseLocale].messages
	for _, locale := range bundle.Locales() {
		messages := bundle.locales[locale].messages
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Errorf("%s: missing key %q", locale, key)
			}
		}
		for key := range messages {
			if _, ok := base[key]; !ok {
				t.Errorf("%s: key %q not in base locale", locale, key)
			}
		}
	}
}

func TestValidationMessagesAreExact(t *testing.T) {
	tests := map[string]string{
		"trip.error.missing_fields": "Please provide values for all fields.",
		"trip.error.duration_range": "Duration must be between 1 and 10 days",
	}
	printer := message.NewPrinter(language.AmericanEnglish)
	for key, want := range tests {
		got, ok := Default().Message(BaseLocale, key)
		if !ok || got != want {
			t.Fatalf("Message(%q) = %q, %v; want %q", key, got, ok, want)
		}
		if printed := printer.Sprintf(key); printed != want {
			t.Fatalf("printer.Sprintf(%q) = %q, want %q", key, printed, want)
		}
	}
}

func TestRegisterAddsBaseLanguage(t *testing.T) {
	printer := message.NewPrinter(language.Portuguese)
	if got := printer.Sprintf("nav.dashboard"); got != "Painel" {
		t.Fatalf("pt printer = %q, want Painel", got)
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	got, ok := Default().Message("fr-FR", "nav.users")
	if !ok || got != "All Users" {
		t.Fatalf("Message fallback = %q, %v", got, ok)
	}
	if _, ok := Default().Message("en-US", " "); ok {
		t.Fatal("expected blank key to miss")
	}
}

func TestLoadFromFSErrors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name:  "no files",
			files: fstest.MapFS{},
		},
		{
			name: "core key outside core namespace",
			files: fstest.MapFS{
				"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.good: ok\n")},
				"locales/en-US/web.yaml":  {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  core.bad: nope\n")},
			},
		},
		{
			name: "duplicate keys across namespaces",
			files: fstest.MapFS{
				"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  a.key: a\n")},
				"locales/en-US/web.yaml":  {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  a.key: b\n")},
			},
		},
		{
			name: "locale path mismatch",
			files: fstest.MapFS{
				"locales/en-US/core.yaml": {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  a.key: a\n")},
			},
		},
		{
			name: "missing base locale",
			files: fstest.MapFS{
				"locales/pt-BR/core.yaml": {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  a.key: a\n")},
			},
		},
		{
			name: "invalid yaml",
			files: fstest.MapFS{
				"locales/en-US/core.yaml": {Data: []byte("locale: [\n")},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFromFS(tc.files); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
