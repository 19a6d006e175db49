// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labs

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultCatalogDirectionality(t *testing.T) {
	t.Parallel()

	corridor := map[string]bool{
		"pH (Gasometria)":  true,
		"pCO₂ (mmHg)":      true,
		"pO₂ (mmHg)":       true,
		"HCO₃⁻ (mmol/L)":   true,
		"BE (Base Excess)": true,
	}

	catalog := DefaultCatalog()
	if catalog.Len() != len(referenceDefinitions) {
		t.Fatalf("expected %d entries, got %d", len(referenceDefinitions), catalog.Len())
	}

	for _, entry := range catalog.Entries() {
		want := Monotonic
		if corridor[entry.Name] {
			want = Corridor
		}
		if entry.Directionality != want {
			t.Fatalf("%s: expected %v, got %v", entry.Name, want, entry.Directionality)
		}
		if entry.Interval.Min() > entry.Interval.Max() {
			t.Fatalf("%s: inverted interval %v", entry.Name, entry.Interval)
		}
	}
}

func TestDefaultCatalogIsShared(t *testing.T) {
	t.Parallel()

	if DefaultCatalog() != DefaultCatalog() {
		t.Fatal("expected DefaultCatalog to return the same instance")
	}

	entries := DefaultCatalog().Entries()
	entries[0].Name = "mutated"

	if _, ok := DefaultCatalog().Lookup("mutated"); ok {
		t.Fatal("expected Entries to return a copy")
	}
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()

	entry, ok := DefaultCatalog().Lookup("  Creatinina (mg/dL) ")
	if !ok {
		t.Fatal("expected lookup to ignore surrounding whitespace")
	}
	if entry.Interval.Min() != 0.7 || entry.Interval.Max() != 1.2 {
		t.Fatalf("unexpected creatinine interval %v", entry.Interval)
	}
	if entry.Unit != "mg/dL" {
		t.Fatalf("expected unit mg/dL, got %q", entry.Unit)
	}

	if _, ok := DefaultCatalog().Lookup("XYZ-Unlisted"); ok {
		t.Fatal("expected unknown parameter lookup to miss")
	}

	var nilCatalog *Catalog
	if _, ok := nilCatalog.Lookup("PCR (mg/L)"); ok {
		t.Fatal("expected nil catalog lookup to miss")
	}
}

func TestNewInterval(t *testing.T) {
	t.Parallel()

	if _, err := NewInterval(1, 1); err != nil {
		t.Fatalf("expected degenerate interval to be valid, got %v", err)
	}

	for _, bounds := range [][2]float64{{2, 1}, {math.NaN(), 1}, {0, math.NaN()}, {0, math.Inf(1)}, {math.Inf(-1), 0}} {
		_, err := NewInterval(bounds[0], bounds[1])
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("bounds %v: expected ErrInvalidInterval, got %v", bounds, err)
		}
	}
}

func TestIntervalEdgeDistance(t *testing.T) {
	t.Parallel()

	iv, err := NewInterval(35, 45)
	if err != nil {
		t.Fatalf("failed to build interval: %v", err)
	}

	tests := []struct {
		value float64
		want  float64
	}{
		{30, 5},
		{36, 1},
		{40, 5},
		{44, 1},
		{50, 5},
	}

	for _, tt := range tests {
		if got := iv.EdgeDistance(tt.value); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("value %v: expected %v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestNewCatalogRejectsBadEntries(t *testing.T) {
	t.Parallel()

	iv, _ := NewInterval(0, 1)

	if _, err := NewCatalog(Entry{Name: " ", Interval: iv}); !errors.Is(err, errEmptyParameterName) {
		t.Fatalf("expected empty name error, got %v", err)
	}

	_, err := NewCatalog(Entry{Name: "A", Interval: iv}, Entry{Name: "A", Interval: iv})
	if !errors.Is(err, errDuplicateParameter) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = NewCatalog(Entry{Name: "B", Interval: Interval{min: 3, max: 1}})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected invalid interval error, got %v", err)
	}
}

func TestParseDirectionality(t *testing.T) {
	t.Parallel()

	tests := map[string]Directionality{
		"":           Monotonic,
		"monotonic":  Monotonic,
		" Corridor ": Corridor,
	}
	for in, want := range tests {
		got, err := ParseDirectionality(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}

	if _, err := ParseDirectionality("sideways"); !errors.Is(err, errUnknownDirectionality) {
		t.Fatalf("expected unknown directionality error, got %v", err)
	}
}

func TestUnitOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Creatinina (mg/dL)": "mg/dL",
		"Ureia ( mg/dL )":    "mg/dL",
		"INR/TAP":            "",
		"Sódio (mEq/L":       "",
	}
	for in, want := range tests {
		if got := UnitOf(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	t.Parallel()

	doc := `
parameters:
  - name: "Lactato (mmol/L)"
    min: 0.5
    max: 2.0
  - name: "pH (Gasometria)"
    min: 7.30
    max: 7.50
  - name: "Ureia (mg/dL)"
    min: 15
    max: 45
  - name: "SatO₂"
    unit: "%"
    min: 95
    max: 100
    directionality: corridor
`

	catalog, err := LoadCatalogYAML(strings.NewReader(doc), DefaultCatalog())
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	if catalog.Len() != DefaultCatalog().Len()+2 {
		t.Fatalf("expected two new entries, got %d total", catalog.Len())
	}

	lactate, _ := catalog.Lookup("Lactato (mmol/L)")
	if lactate.Interval.Max() != 2.0 || lactate.Unit != "mmol/L" {
		t.Fatalf("unexpected lactate override %+v", lactate)
	}

	ph, _ := catalog.Lookup("pH (Gasometria)")
	if ph.Directionality != Corridor {
		t.Fatalf("expected override to keep corridor directionality, got %v", ph.Directionality)
	}

	urea, _ := catalog.Lookup("Ureia (mg/dL)")
	if urea.Unit != "mg/dL" || urea.Directionality != Monotonic {
		t.Fatalf("unexpected urea entry %+v", urea)
	}

	sat, _ := catalog.Lookup("SatO₂")
	if sat.Unit != "%" || sat.Directionality != Corridor {
		t.Fatalf("unexpected saturation entry %+v", sat)
	}

	base, _ := DefaultCatalog().Lookup("Lactato (mmol/L)")
	if base.Interval.Max() != 1.6 {
		t.Fatal("expected default catalog to stay untouched")
	}

	entries := catalog.Entries()
	if entries[len(entries)-1].Name != "SatO₂" {
		t.Fatalf("expected new entries appended in file order, got %q last", entries[len(entries)-1].Name)
	}
}

func TestLoadCatalogYAMLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing bound", "parameters:\n  - name: A\n    min: 1\n", errMissingBound},
		{"inverted", "parameters:\n  - name: A\n    min: 2\n    max: 1\n", ErrInvalidInterval},
		{"infinite max", "parameters:\n  - name: A\n    min: 0\n    max: .inf\n", ErrInvalidInterval},
		{"infinite min", "parameters:\n  - name: A\n    min: -.inf\n    max: 1\n", ErrInvalidInterval},
		{"empty name", "parameters:\n  - min: 1\n    max: 2\n", errEmptyParameterName},
		{"directionality", "parameters:\n  - name: A\n    min: 1\n    max: 2\n    directionality: up\n", errUnknownDirectionality},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadCatalogYAML(strings.NewReader(tt.doc), nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadCatalogYAML(strings.NewReader("parameters:\n  - name: A\n    bogus: 1\n"), nil); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadCatalogYAMLEmptyDocument(t *testing.T) {
	t.Parallel()

	catalog, err := LoadCatalogYAML(strings.NewReader(""), DefaultCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Len() != DefaultCatalog().Len() {
		t.Fatalf("expected %d entries, got %d", DefaultCatalog().Len(), catalog.Len())
	}
}

func TestDirectionalityJSONRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal([]Directionality{Monotonic, Corridor})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(raw) != `["monotonic","corridor"]` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var got []Directionality
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(got) != 2 || got[1] != Corridor {
		t.Fatalf("unexpected decoding %v", got)
	}

	var d Directionality
	if err := json.Unmarshal([]byte(`"sideways"`), &d); !errors.Is(err, errUnknownDirectionality) {
		t.Fatalf("expected unknown directionality error, got %v", err)
	}
}
