// Package form holds the per-visit trip form state, its validator and the
// submission state machine.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/travelagency/admin/internal/services/admin/trip/catalog"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
)

// Field keys that are not catalog fields.
const (
	FieldCountry  = "country"
	FieldDuration = "duration"
)

// Fields lists every form field key in display order.
func Fields() []string {
	return append([]string{FieldCountry, FieldDuration}, catalog.SelectFields()...)
}

// FormData is the trip being composed.
type FormData struct {
	Country     string
	TravelStyle string
	Interest    string
	Budget      string
	Duration    int
	GroupType   string
}

// NewFormData returns the initial form: the first country's display label
// and zero values for everything else.
func NewFormData(countries []country.Country) FormData {
	var data FormData
	if len(countries) > 0 {
		data.Country = countries[0].Name
	}
	return data
}

// With returns a copy of d with field set to value. Duration is parsed as an
// integer and an unparsable value becomes 0.
func (d FormData) With(field, value string) (FormData, error) {
	switch field {
	case FieldCountry:
		d.Country = value
	case catalog.FieldTravelStyle:
		d.TravelStyle = value
	case catalog.FieldInterest:
		d.Interest = value
	case catalog.FieldBudget:
		d.Budget = value
	case catalog.FieldGroupType:
		d.GroupType = value
	case FieldDuration:
		d.Duration = parseDuration(value)
	default:
		return d, fmt.Errorf("unknown form field %q", field)
	}
	return d, nil
}

// Value returns the string form of field, or "" for an unknown field.
func (d FormData) Value(field string) string {
	switch field {
	case FieldCountry:
		return d.Country
	case catalog.FieldTravelStyle:
		return d.TravelStyle
	case catalog.FieldInterest:
		return d.Interest
	case catalog.FieldBudget:
		return d.Budget
	case catalog.FieldGroupType:
		return d.GroupType
	case FieldDuration:
		if d.Duration == 0 {
			return ""
		}
		return strconv.Itoa(d.Duration)
	}
	return ""
}

// LogAttrs flattens d into key/value pairs for structured logging.
func (d FormData) LogAttrs() []any {
	return []any{
		FieldCountry, d.Country,
		catalog.FieldTravelStyle, d.TravelStyle,
		catalog.FieldInterest, d.Interest,
		catalog.FieldBudget, d.Budget,
		FieldDuration, d.Duration,
		catalog.FieldGroupType, d.GroupType,
	}
}

func parseDuration(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	// Accept integral decimals such as "5.0" the way a number input reports them.
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
