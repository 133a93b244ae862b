// Package catalog holds the fixed option lists for the categorical trip
// fields and the substring filter shared by every combo-box.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Field keys in form order.
const (
	FieldTravelStyle = "travelStyle"
	FieldInterest    = "interest"
	FieldBudget      = "budget"
	FieldGroupType   = "groupType"
)

//go:embed catalogs.yaml
var embeddedCatalogs []byte

var defaultCatalog = mustParse(embeddedCatalogs)

type fileField struct {
	Key    string   `yaml:"key"`
	Values []string `yaml:"values"`
}

type file struct {
	Fields []fileField `yaml:"fields"`
}

// Catalog maps field keys to their ordered values. It is immutable once built.
type Catalog struct {
	order  []string
	values map[string][]string
}

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var parsed file
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(parsed.Fields) == 0 {
		return nil, fmt.Errorf("parse catalog: no fields defined")
	}
	c := &Catalog{values: make(map[string][]string, len(parsed.Fields))}
	for _, field := range parsed.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return nil, fmt.Errorf("parse catalog: field key is required")
		}
		if _, exists := c.values[key]; exists {
			return nil, fmt.Errorf("parse catalog: duplicate field %q", key)
		}
		if len(field.Values) == 0 {
			return nil, fmt.Errorf("parse catalog: field %q has no values", key)
		}
		c.order = append(c.order, key)
		c.values[key] = append([]string(nil), field.Values...)
	}
	return c, nil
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Fields returns the field keys in form order.
func (c *Catalog) Fields() []string {
	return append([]string(nil), c.order...)
}

// Values returns a copy of the values for field.
func (c *Catalog) Values(field string) ([]string, error) {
	values, ok := c.values[field]
	if !ok {
		return nil, fmt.Errorf("unknown catalog field %q", field)
	}
	return append([]string(nil), values...), nil
}

// Filter returns the values of field matching query. See Filter.
func (c *Catalog) Filter(field, query string) ([]string, error) {
	values, ok := c.values[field]
	if !ok {
		return nil, fmt.Errorf("unknown catalog field %q", field)
	}
	return Filter(values, query), nil
}

// SelectFields returns the embedded catalog's field keys in form order.
func SelectFields() []string {
	return defaultCatalog.Fields()
}

// Filter returns, in order, the values whose lowercase form contains the
// lowercased query. The input slice is never modified.
func Filter(values []string, query string) []string {
	out := make([]string, 0, len(values))
	needle := strings.ToLower(query)
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), needle) {
			out = append(out, value)
		}
	}
	return out
}

// FormatKey turns a camelCase key into a title-cased label: "groupType"
// becomes "Group Type".
func FormatKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
