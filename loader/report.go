/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Report categories. A pasted report starts with the post-operative block
// and switches to pre-operative after a heading that names it.
const (
	CategoryPostOp = "Pós-operatório"
	CategoryPreOp  = "Pré-operatório"
)

// ReportEntry is one "Exam: value" line of a free-text exam report.
type ReportEntry struct {
	Category string
	Exam     string
	Value    string
}

// ParseReport reads a free-text exam report, one "Exam: value" per line.
// Blank lines and lines without a colon are ignored. Values are kept as
// written, units included.
func ParseReport(r io.Reader) ([]ReportEntry, error) {
	var entries []ReportEntry

	category := CategoryPostOp
	preOpHeading := fold(CategoryPreOp)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(fold(line), preOpHeading) {
			category = CategoryPreOp
			continue
		}

		exam, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		entries = append(entries, ReportEntry{
			Category: category,
			Exam:     strings.TrimSpace(exam),
			Value:    strings.TrimSpace(value),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return entries, nil
}

// WriteReportCSV writes entries as CSV with a Categoria,Exame,Valor header.
func WriteReportCSV(w io.Writer, entries []ReportEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Categoria", "Exame", "Valor"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write([]string{e.Category, e.Exam, e.Value}); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Exam, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
