package templates

import "html/template"

// Trend keys rendered on stats cards.
const (
	TrendIncrement = "increment"
	TrendDecrement = "decrement"
	TrendNoChange  = "no change"
)

// StatsCard is one dashboard counter with its month-over-month trend.
type StatsCard struct {
	HeaderKey    string
	Total        int
	CurrentMonth int
	LastMonth    int
	Trend        string
	Percentage   int
}

// TrendKey returns the catalog key describing the card's trend.
func (c StatsCard) TrendKey() string {
	switch c.Trend {
	case TrendIncrement:
		return "dashboard.trend.increment"
	case TrendDecrement:
		return "dashboard.trend.decrement"
	default:
		return "dashboard.trend.no_change"
	}
}

// TripCard summarizes a created trip.
type TripCard struct {
	ID       string
	Name     string
	ImageURL string
	Location string
	Tags     []string
	Price    string
	Days     int
}

// DashboardView is the dashboard page data.
type DashboardView struct {
	PageContext
	WelcomeName string
	Stats       []StatsCard
	Trips       []TripCard
}

// UserRow is one row of the users table.
type UserRow struct {
	Name     string
	Email    string
	ImageURL string
	Joined   string
	Trips    int
	Status   string
	IsAdmin  bool
	Initials string
}

// UsersView is the users page data.
type UsersView struct {
	PageContext
	Rows      []UserRow
	ExportURL string
}

// Option is a select or combo-box choice.
type Option struct {
	Text     string
	Value    string
	Selected bool
}

// SelectField is one catalog-backed dropdown of the trip form.
type SelectField struct {
	Key        string
	Label      string
	Options    []Option
	OptionsURL string
}

// TripMapView is the map overlay fragment. DataSource is pre-encoded JSON.
type TripMapView struct {
	Country    string
	Color      string
	HasCoords  bool
	Lat        float64
	Lng        float64
	DataSource template.JS
	OverlayURL string
}

// TripFormView is the create-trip page data.
type TripFormView struct {
	PageContext
	Action         string
	FieldURL       string
	CountryOptions []Option
	CountryURL     string
	Duration       int
	SelectFields   []SelectField
	ErrorMessage   string
	Loading        bool
	Submitted      bool
	Map            TripMapView
}

// ErrorView is a full-page error.
type ErrorView struct {
	PageContext
	HeadingKey string
	BodyKey    string
	Status     int
}
