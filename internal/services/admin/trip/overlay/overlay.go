// Package overlay derives the world map highlight for the selected country.
package overlay

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/travelagency/admin/internal/services/admin/trip/country"
)

// HighlightColor fills the selected country.
const HighlightColor = "#EA382E"

// Entry is one map layer data record. Coordinates are [lat, lng] or empty.
type Entry struct {
	Country     string    `json:"country"`
	Color       string    `json:"color"`
	Coordinates []float64 `json:"coordinates"`
}

// Build returns exactly one entry for selected. The selection matches a
// country by display label or canonical value; an unknown selection yields
// empty coordinates.
func Build(selected string, countries []country.Country) []Entry {
	entry := Entry{Country: selected, Color: HighlightColor, Coordinates: []float64{}}
	if match, ok := country.Find(countries, selected); ok && len(match.Coordinates) == 2 {
		entry.Coordinates = []float64{match.Coordinates[0], match.Coordinates[1]}
	}
	return []Entry{entry}
}

// FeatureCollection renders entries as GeoJSON points. Entries without
// coordinates are skipped.
func FeatureCollection(entries []Entry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, entry := range entries {
		if len(entry.Coordinates) != 2 {
			continue
		}
		// GeoJSON positions are [lng, lat].
		feature := geojson.NewFeature(orb.Point{entry.Coordinates[1], entry.Coordinates[0]})
		feature.Properties["country"] = entry.Country
		feature.Properties["color"] = entry.Color
		fc.Append(feature)
	}
	return fc
}
