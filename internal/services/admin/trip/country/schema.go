package country

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errSchema = errors.New("schema mismatch")

// Record is one element of the /all response restricted to the requested
// fields.
type Record struct {
	Name   RecordName  `json:"name"`
	Flag   string      `json:"flag"`
	LatLng []float64   `json:"latlng"`
	Maps   *RecordMaps `json:"maps,omitempty"`
}

// RecordName holds the country names.
type RecordName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// RecordMaps holds map links.
type RecordMaps struct {
	GoogleMaps     string `json:"googleMaps,omitempty"`
	OpenStreetMaps string `json:"openStreetMaps,omitempty"`
}

// Decode parses and validates the response body. The body must be a JSON
// array whose every element has a non-empty name.common and a latlng with
// zero or two numbers.
func Decode(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", errSchema)
	}
	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", errSchema, err)
	}
	for i, record := range records {
		if err := record.validate(); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", errSchema, i, err)
		}
	}
	return records, nil
}

func (r Record) validate() error {
	if strings.TrimSpace(r.Name.Common) == "" {
		return fmt.Errorf("name.common is required")
	}
	if n := len(r.LatLng); n != 0 && n != 2 {
		return fmt.Errorf("latlng must have 0 or 2 numbers, got %d", n)
	}
	return nil
}

func (r Record) country() Country {
	c := Country{
		Name:  r.Flag + " " + r.Name.Common,
		Value: r.Name.Common,
	}
	if len(r.LatLng) == 2 {
		c.Coordinates = Coordinates{r.LatLng[0], r.LatLng[1]}
	}
	if r.Maps != nil {
		c.OpenStreetMap = r.Maps.OpenStreetMaps
	}
	return c
}
