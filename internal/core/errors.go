package core

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is; the CLI and web layers map
// them to user messages via MapError.
var (
	// ErrFormat: a row is missing a required field or a value cannot be coerced.
	ErrFormat = errors.New("invalid input format")

	// ErrNotInteger: a floor count was supplied as something other than an integer.
	ErrNotInteger = errors.New("floor count must be an integer")

	// ErrNotPositive: a floor count was zero or negative.
	ErrNotPositive = errors.New("floor count must be a positive number")

	// ErrEmptyInput: an aggregate that needs at least one house got none.
	ErrEmptyInput = errors.New("no houses to evaluate")

	// ErrZeroPopulation: a house cannot be used as a divisor for the area ratio.
	ErrZeroPopulation = errors.New("population must be positive to compute area per resident")
)

// FormatError describes a single field that could not be loaded.
type FormatError struct {
	Line   int    // CSV line (or 1-based record number when Row-based)
	Field  string // Column name
	Value  string // Raw value, empty when the field is missing
	Reason string // Human-readable reason
}

func (e *FormatError) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf("line %d: ", e.Line)
	}
	switch {
	case e.Field == "":
		return loc + e.Reason
	case e.Value == "":
		return fmt.Sprintf("%s%s %q", loc, e.Reason, e.Field)
	}
	return fmt.Sprintf("%s%s for %q: %q", loc, e.Reason, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrFormat) true for every FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// PopulationError reports the house whose population made the ratio undefined.
type PopulationError struct {
	Address    string
	Population int
}

func (e *PopulationError) Error() string {
	return fmt.Sprintf("house %q has population %d: %v", e.Address, e.Population, ErrZeroPopulation)
}

func (e *PopulationError) Unwrap() error {
	return ErrZeroPopulation
}
