package core

// convert.go turns raw CSV cells into typed values.
//
// Cells go through the same cleanup regardless of target type:
//   - Surrounding whitespace and quotes are removed
//   - Excel formula prefixes (="value") are unwrapped
//   - Commas are dropped from numbers only when they group thousands
//     ("1,250.5"); any other comma, space or underscore makes the cell invalid
//
// Conversion failures return an error whose message is the reason stored in
// FormatError, so callers can attach the field name and line.

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// numericRegex validates a real number after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// integerRegex validates a whole number after cleanup.
var integerRegex = regexp.MustCompile(`^[+-]?\d+$`)

// groupedRegex matches a number whose commas separate groups of three digits.
// A decimal comma such as "45,5" does not match.
var groupedRegex = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	errInvalidNumber  = errors.New("invalid number")
	errInvalidInteger = errors.New("invalid integer")
	errOutOfRange     = errors.New("number out of range")
)

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
// When a column name repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// cleanNumber removes thousands separators from a numeric cell. Commas that
// do not form valid groups are kept so the value fails validation.
func cleanNumber(s string) string {
	s = CleanCell(s)
	if groupedRegex.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

// ParseFloat converts a cell to float64.
func ParseFloat(s string) (float64, error) {
	s = cleanNumber(s)
	if !numericRegex.MatchString(s) {
		return 0, errInvalidNumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errOutOfRange
	}
	return f, nil
}

// ParseInt converts a cell to int. Decimal values such as "3.5" or "3.0"
// are rejected rather than truncated.
func ParseInt(s string) (int, error) {
	s = cleanNumber(s)
	if !integerRegex.MatchString(s) {
		return 0, errInvalidInteger
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errOutOfRange
	}
	return i, nil
}

// sanitizeInput strips a UTF-8 BOM and replaces invalid UTF-8 sequences
// with U+FFFD so the CSV reader never sees broken text.
func sanitizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte("\uFFFD"))
}
