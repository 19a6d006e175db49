/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"encoding/json"
	"strings"
)

// Row is one line of the measurement table: a parameter and its series.
type Row struct {
	Parameter string
	Series    Series
}

// Analysis holds the classifications of one measurement table.
type Analysis struct {
	// Results is keyed by parameter name. Only catalogued parameters appear.
	Results map[string]Classification
	// Order lists the keys of Results in first-seen table order.
	Order []string
	// Skipped lists parameters without a catalog entry, in table order.
	Skipped []string
}

// Analyze classifies every row whose parameter is in the catalog. Rows for
// unknown parameters are left out of Results and recorded in Skipped. When a
// parameter repeats, the last row wins and the first position is kept.
func Analyze(catalog *Catalog, rows []Row) Analysis {
	a := Analysis{
		Results: make(map[string]Classification, len(rows)),
	}
	skipped := make(map[string]struct{})

	for _, row := range rows {
		name := strings.TrimSpace(row.Parameter)

		entry, ok := catalog.Lookup(name)
		if !ok {
			if _, seen := skipped[name]; !seen {
				skipped[name] = struct{}{}
				a.Skipped = append(a.Skipped, name)
			}
			continue
		}

		if _, seen := a.Results[entry.Name]; !seen {
			a.Order = append(a.Order, entry.Name)
		}
		a.Results[entry.Name] = Classify(entry, row.Series)
	}

	return a
}

// Classifications returns the results in table order.
func (a Analysis) Classifications() []Classification {
	out := make([]Classification, 0, len(a.Order))
	for _, name := range a.Order {
		out = append(out, a.Results[name])
	}

	return out
}

// MarshalJSON encodes the analysis as the parameter-keyed mapping.
func (a Analysis) MarshalJSON() ([]byte, error) {
	if a.Results == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(a.Results)
}
