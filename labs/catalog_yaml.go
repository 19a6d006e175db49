/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Parameters []catalogFileEntry `yaml:"parameters"`
}

type catalogFileEntry struct {
	Name           string   `yaml:"name"`
	Unit           *string  `yaml:"unit"`
	Min            *float64 `yaml:"min"`
	Max            *float64 `yaml:"max"`
	Directionality string   `yaml:"directionality"`
}

// LoadCatalogYAML reads reference range overrides and returns a new catalog
// with base's entries followed by any new parameters. Entries whose name
// already exists in base replace it in place. base is not modified.
//
//	parameters:
//	  - name: "Lactato (mmol/L)"
//	    min: 0.5
//	    max: 2.0
//	  - name: "SatO₂ (%)"
//	    unit: "%"
//	    min: 95
//	    max: 100
//	    directionality: corridor
func LoadCatalogYAML(r io.Reader, base *Catalog) (*Catalog, error) {
	var file catalogFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	entries := base.Entries()
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}

	for i, fe := range file.Parameters {
		name := strings.TrimSpace(fe.Name)
		if name == "" {
			return nil, fmt.Errorf("parameter %d: %w", i+1, errEmptyParameterName)
		}
		if fe.Min == nil || fe.Max == nil {
			return nil, fmt.Errorf("parameter %q: %w", name, errMissingBound)
		}

		iv, err := NewInterval(*fe.Min, *fe.Max)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}

		dir, err := ParseDirectionality(fe.Directionality)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}

		entry := Entry{Name: name, Unit: UnitOf(name), Interval: iv, Directionality: dir}
		if fe.Unit != nil {
			entry.Unit = strings.TrimSpace(*fe.Unit)
		}

		if pos, ok := index[name]; ok {
			if fe.Unit == nil {
				entry.Unit = entries[pos].Unit
			}
			if strings.TrimSpace(fe.Directionality) == "" {
				entry.Directionality = entries[pos].Directionality
			}
			entries[pos] = entry
			continue
		}

		index[name] = len(entries)
		entries = append(entries, entry)
	}

	return NewCatalog(entries...)
}

// LoadCatalogFile opens path and applies it over base with LoadCatalogYAML.
func LoadCatalogFile(path string, base *Catalog) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	return LoadCatalogYAML(f, base)
}
