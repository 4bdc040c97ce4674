package core

import (
	"fmt"
	"strings"
)

// House is one building's parsed, typed record.
type House struct {
	Address         string  `json:"address"`
	FloorCount      int     `json:"floorCount"`
	HeatingValue    float64 `json:"heatingValue"`
	AreaResidential float64 `json:"areaResidential"`
	Population      int     `json:"population"`
}

// Row is a single input row keyed by column name, before coercion.
type Row map[string]string

// Category is a building height category derived from the floor count.
// The zero value is not a valid category.
type Category int

const (
	LowRise Category = iota + 1
	MidRise
	HighRise
)

// Band limits (inclusive upper bounds) for Low-rise and Mid-rise.
const (
	lowRiseMaxFloors = 5
	midRiseMaxFloors = 16
)

var categoryLabels = map[Category]string{
	LowRise:  "Low-rise",
	MidRise:  "Mid-rise",
	HighRise: "High-rise",
}

// Categories returns every category in band order.
func Categories() []Category {
	return []Category{LowRise, MidRise, HighRise}
}

// Valid reports whether c is one of the three defined categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// String returns the display label, e.g. "Mid-rise".
func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category as its label so it can be used as a JSON map key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a category label.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory converts a label back into a Category.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
