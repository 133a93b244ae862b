package templates

import admini18n "github.com/travelagency/admin/internal/services/admin/i18n"

// PageContext carries the layout data shared by every admin page.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	// TitleKey is the catalog key of the page heading used in <title>.
	TitleKey  string
	UserName  string
	Languages []admini18n.LanguageOption
}

// Title returns the localized document title for the page.
func (p PageContext) Title() string {
	return T(p.Loc, "page.title", T(p.Loc, p.TitleKey))
}

// NavActive reports whether path is the current navigation entry.
func (p PageContext) NavActive(path string) bool {
	if path == "/" {
		return p.CurrentPath == "/"
	}
	return p.CurrentPath == path || len(p.CurrentPath) > len(path) && p.CurrentPath[:len(path)+1] == path+"/"
}
