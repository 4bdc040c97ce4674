package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// CSVOptions controls how delimited input is read.
type CSVOptions struct {
	// Delimiter separates fields (default ',').
	Delimiter rune
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// fieldParser coerces the fields of one row, keeping only the first error.
type fieldParser struct {
	get  func(name string) (string, bool)
	line int
	err  error
}

func (p *fieldParser) raw(name string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.get(name)
	if !ok {
		p.err = &FormatError{Line: p.line, Field: name, Reason: "missing required field"}
		return "", false
	}
	return v, true
}

func (p *fieldParser) fail(name, value string, err error) {
	value = CleanCell(value)
	reason := err.Error()
	if value == "" {
		reason = "empty value for required field"
	}
	p.err = &FormatError{Line: p.line, Field: name, Value: value, Reason: reason}
}

func (p *fieldParser) text(name string) string {
	v, ok := p.raw(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func (p *fieldParser) integer(name string) int {
	v, ok := p.raw(name)
	if !ok {
		return 0
	}
	i, err := ParseInt(v)
	if err != nil {
		p.fail(name, v, err)
	}
	return i
}

func (p *fieldParser) real(name string) float64 {
	v, ok := p.raw(name)
	if !ok {
		return 0
	}
	f, err := ParseFloat(v)
	if err != nil {
		p.fail(name, v, err)
	}
	return f
}

// parseHouse builds a House from a field getter. line is used for error reporting.
func parseHouse(get func(name string) (string, bool), line int) (House, error) {
	p := &fieldParser{get: get, line: line}
	h := House{
		Address:         p.text(ColAddress),
		FloorCount:      p.integer(ColFloorCount),
		HeatingValue:    p.real(ColHeatingValue),
		AreaResidential: p.real(ColAreaResidential),
		Population:      p.integer(ColPopulation),
	}
	if p.err != nil {
		return House{}, p.err
	}
	return h, nil
}

// LoadRows coerces rows into houses, preserving order.
// Field names are matched case-insensitively. The first bad field aborts the
// load with a *FormatError whose Line is the 1-based record number; no
// partial result is returned.
func LoadRows(rows []Row) ([]House, error) {
	houses := make([]House, 0, len(rows))
	for i, row := range rows {
		h, err := parseHouse(row.lookup, i+1)
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, nil
}

// lookup finds a field by exact name first, then case-insensitively. When
// several keys differ only in case, the lexically smallest one is used.
func (r Row) lookup(name string) (string, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	key, found := "", false
	for k := range r {
		if strings.EqualFold(CleanCell(k), name) && (!found || k < key) {
			key, found = k, true
		}
	}
	if !found {
		return "", false
	}
	return r[key], true
}

// ReadCSV reads a delimited file with a header row into Rows.
// The header must name every column in HouseFields; extra columns are kept.
// Fully blank lines are skipped.
func ReadCSV(r io.Reader, opts CSVOptions) ([]Row, error) {
	rows, _, err := readCSV(r, opts)
	return rows, err
}

// LoadCSV reads and coerces a delimited file in one step. FormatErrors carry
// the line number within the file.
func LoadCSV(r io.Reader, opts CSVOptions) ([]House, error) {
	rows, lines, err := readCSV(r, opts)
	if err != nil {
		return nil, err
	}

	houses := make([]House, 0, len(rows))
	for i, row := range rows {
		h, err := parseHouse(row.lookup, lines[i])
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, nil
}

// readCSV returns the rows and, for each, its starting line in the file.
func readCSV(r io.Reader, opts CSVOptions) ([]Row, []int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	data = sanitizeInput(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, &FormatError{Reason: "empty file"}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	// Trimming would swallow empty fields between whitespace delimiters
	reader.TrimLeadingSpace = !unicode.IsSpace(reader.Comma)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &FormatError{Line: 1, Reason: "invalid csv header: " + err.Error()}
	}
	idx, err := ValidateHeaders(header, HouseFields)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows  []Row
		lines []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, nil, &FormatError{Line: perr.StartLine, Reason: "invalid csv: " + perr.Err.Error()}
			}
			return nil, nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		row := make(Row, len(idx))
		for name, pos := range idx {
			if pos < len(record) {
				row[name] = record[pos]
			}
		}
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return rows, lines, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
