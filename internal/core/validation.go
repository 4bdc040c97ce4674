package core

// validation.go defines the expected columns and checks input against them.
//
// Validation happens at two levels:
//  1. Header validation: all required columns must be present (CSV input only)
//  2. Field validation: each cell must coerce to its FieldSpec type (loader.go)
//
// Both levels report *FormatError so callers can match ErrFormat.

import "strings"

// FieldType represents the expected data type for an input column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldReal
)

// Column names of the house dataset.
const (
	ColAddress         = "house_address"
	ColFloorCount      = "floor_count"
	ColHeatingValue    = "heating_value"
	ColAreaResidential = "area_residential"
	ColPopulation      = "population"
)

// FieldSpec defines validation rules for a single input column.
type FieldSpec struct {
	Name     string    // Column header name (matched case-insensitively)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the header
}

// HouseFields lists the columns every dataset must provide.
var HouseFields = []FieldSpec{
	{Name: ColAddress, Type: FieldText, Required: true},
	{Name: ColFloorCount, Type: FieldInteger, Required: true},
	{Name: ColHeatingValue, Type: FieldReal, Required: true},
	{Name: ColAreaResidential, Type: FieldReal, Required: true},
	{Name: ColPopulation, Type: FieldInteger, Required: true},
}

// ColumnNames returns the HouseFields names in declaration order.
func ColumnNames() []string {
	names := make([]string, len(HouseFields))
	for i, spec := range HouseFields {
		names[i] = spec.Name
	}
	return names
}

// ValidateHeaders checks that all required columns exist in the CSV header.
// Returns the header index, or a FormatError listing the missing columns.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &FormatError{
			Line:   1,
			Field:  strings.Join(missing, ", "),
			Reason: "missing required column",
		}
	}
	return idx, nil
}

// String returns a human-readable name for a field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldReal:
		return "number"
	default:
		return "value"
	}
}
