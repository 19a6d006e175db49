/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/humaidq/postop/labs"
)

// ParameterColumn is the heading of the parameter name column.
const ParameterColumn = "Parâmetro"

var parameterAliases = []string{fold(ParameterColumn), "parameter", "exame"}

var missingMarkers = map[string]struct{}{
	"":    {},
	"-":   {},
	"nan": {},
	"na":  {},
	"n/a": {},
}

// Table is a measurement table ready for classification.
type Table struct {
	Rows []labs.Row
}

// Parameters returns the parameter names in table order.
func (t Table) Parameters() []string {
	names := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		names = append(names, row.Parameter)
	}

	return names
}

// LoadTable reads the measurement table at path.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	return table, nil
}

// ReadTable parses a CSV measurement table. The header must name the
// parameter column and the four time-point columns; other columns are
// ignored. Both ',' and ';' separators are accepted, and a decimal comma is
// read as a decimal point.
func ReadTable(r io.Reader) (Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read CSV data: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectSeparator(raw)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse CSV data: %w", err)
	}
	if len(records) == 0 {
		return Table{}, errEmptyTable
	}

	paramCol, valueCols, err := resolveColumns(records[0])
	if err != nil {
		return Table{}, err
	}

	var table Table
	for i, record := range records[1:] {
		line := i + 2

		name := strings.TrimSpace(cell(record, paramCol))
		if name == "" {
			logger.Debug("Skipping row without parameter name", "line", line)
			continue
		}

		values := make([]*float64, labs.TimePoints)
		for tp, col := range valueCols {
			v, err := ParseValue(cell(record, col))
			if err != nil {
				return Table{}, fmt.Errorf("line %d, column %q: %w", line, records[0][col], err)
			}
			values[tp] = v
		}

		series, err := labs.NewSeries(values...)
		if err != nil {
			return Table{}, fmt.Errorf("line %d: %w", line, err)
		}

		table.Rows = append(table.Rows, labs.Row{Parameter: name, Series: series})
	}

	return table, nil
}

// ParseValue converts one cell to an observation. Empty cells and the
// markers "-", "NaN", "NA" and "N/A" are missing and yield nil.
func ParseValue(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if _, missing := missingMarkers[strings.ToLower(s)]; missing {
		return nil, nil
	}

	normalized := s
	if strings.Contains(normalized, ",") && !strings.Contains(normalized, ".") {
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	return &v, nil
}

func resolveColumns(header []string) (int, [labs.TimePoints]int, error) {
	var valueCols [labs.TimePoints]int

	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = fold(h)
	}

	paramCol := indexOfAny(folded, parameterAliases...)
	if paramCol < 0 {
		return 0, valueCols, fmt.Errorf("%w: %q", ErrMissingColumn, ParameterColumn)
	}

	for _, tp := range labs.Timeline() {
		col := indexOfAny(folded, fold(tp.Label()))
		if col < 0 {
			return 0, valueCols, fmt.Errorf("%w: %q", ErrMissingColumn, tp.Label())
		}
		valueCols[tp] = col
	}

	return paramCol, valueCols, nil
}

func indexOfAny(haystack []string, needles ...string) int {
	for i, h := range haystack {
		for _, n := range needles {
			if h == n {
				return i
			}
		}
	}

	return -1
}

func cell(record []string, col int) string {
	if col >= len(record) {
		return ""
	}

	return record[col]
}

// detectSeparator picks ';' when the header line uses it and ',' otherwise.
func detectSeparator(raw []byte) rune {
	header := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
	}

	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}

	return ','
}
