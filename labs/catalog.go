/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
)

// Directionality describes which deviations from the reference interval are
// judged when deriving a trend.
type Directionality int

const (
	// Monotonic parameters are judged "lower is better" above the interval
	// and "higher is better" below it.
	Monotonic Directionality = iota
	// Corridor parameters are abnormal in both directions; trend follows the
	// distance to the nearest interval edge.
	Corridor
)

func (d Directionality) String() string {
	switch d {
	case Monotonic:
		return "monotonic"
	case Corridor:
		return "corridor"
	default:
		return fmt.Sprintf("Directionality(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Directionality) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirectionality parses "monotonic" or "corridor". An empty string is
// Monotonic.
func ParseDirectionality(s string) (Directionality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monotonic":
		return Monotonic, nil
	case "corridor":
		return Corridor, nil
	default:
		return Monotonic, fmt.Errorf("%w: %q", errUnknownDirectionality, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Directionality) UnmarshalText(text []byte) error {
	parsed, err := ParseDirectionality(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// Interval is an inclusive clinical reference range.
type Interval struct {
	min float64
	max float64
}

// NewInterval returns the interval [min, max]. It returns ErrInvalidInterval
// when min > max or either bound is not a finite number.
func NewInterval(min, max float64) (Interval, error) {
	if !isFinite(min) || !isFinite(max) || min > max {
		return Interval{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidInterval, min, max)
	}

	return Interval{min: min, max: max}, nil
}

// Min returns the lower bound.
func (i Interval) Min() float64 { return i.min }

// Max returns the upper bound.
func (i Interval) Max() float64 { return i.max }

// Contains reports whether v lies inside the interval, bounds included.
func (i Interval) Contains(v float64) bool {
	return v >= i.min && v <= i.max
}

// EdgeDistance is the distance from v to the nearest bound. It does not
// look at which side of a bound v is on.
func (i Interval) EdgeDistance(v float64) float64 {
	return math.Min(math.Abs(v-i.min), math.Abs(v-i.max))
}

// MarshalJSON encodes the interval as [min, max].
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{i.min, i.max})
}

// Entry is one parameter of the reference catalog.
type Entry struct {
	Name           string
	Unit           string
	Interval       Interval
	Directionality Directionality
}

// Catalog maps parameter names to their reference entries. A Catalog is
// never modified after construction and is safe for concurrent use.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// NewCatalog builds a catalog from entries, keeping their order.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}

	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, errEmptyParameterName
		}
		if _, exists := c.entries[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", errDuplicateParameter, e.Name)
		}
		if _, err := NewInterval(e.Interval.min, e.Interval.max); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", e.Name, err)
		}

		c.entries[e.Name] = e
		c.order = append(c.order, e.Name)
	}

	return c, nil
}

// Lookup returns the entry for name. The boolean is false for parameters
// that have no defined reference range; that is not an error.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	e, ok := c.entries[strings.TrimSpace(name)]

	return e, ok
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	out := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name])
	}

	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.order)
}

// UnitOf returns the parenthesised suffix of a parameter name, e.g. "mg/dL"
// for "Creatinina (mg/dL)". Catalogued entries carry their unit explicitly;
// this is the fallback for parameters outside the catalog.
func UnitOf(name string) string {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, ")") {
		return ""
	}

	open := strings.LastIndex(name, "(")
	if open < 0 {
		return ""
	}

	return strings.TrimSpace(name[open+1 : len(name)-1])
}

// referenceDefinitions is the authoritative adult post-operative panel.
var referenceDefinitions = []struct {
	name string
	unit string
	min  float64
	max  float64
	dir  Directionality
}{
	// Coagulation
	{"INR/TAP", "", 0.8, 1.2, Monotonic},
	{"Fibrinogênio (mg/dL)", "mg/dL", 200, 400, Monotonic},
	{"Plaquetas (x10³/µL)", "x10³/µL", 150, 400, Monotonic},

	// Perfusion and liver
	{"Lactato (mmol/L)", "mmol/L", 0.5, 1.6, Monotonic},
	{"AST (U/L)", "U/L", 5, 40, Monotonic},
	{"ALT (U/L)", "U/L", 7, 56, Monotonic},
	{"Bilirrubina Total (mg/dL)", "mg/dL", 0.3, 1.2, Monotonic},
	{"Bilirrubina Direta (mg/dL)", "mg/dL", 0.1, 0.3, Monotonic},
	{"Bilirrubina Indireta (mg/dL)", "mg/dL", 0.2, 0.9, Monotonic},

	// Blood gas and acid-base: both directions are abnormal
	{"pH (Gasometria)", "", 7.35, 7.45, Corridor},
	{"pCO₂ (mmHg)", "mmHg", 35, 45, Corridor},
	{"pO₂ (mmHg)", "mmHg", 80, 100, Corridor},
	{"HCO₃⁻ (mmol/L)", "mmol/L", 22, 26, Corridor},
	{"BE (Base Excess)", "mmol/L", -2, 2, Corridor},

	// Renal and metabolic
	{"Creatinina (mg/dL)", "mg/dL", 0.7, 1.2, Monotonic},
	{"Glicemia (mg/dL)", "mg/dL", 70, 100, Monotonic},

	// Inflammation
	{"Leucócitos (x10³/µL)", "x10³/µL", 4.0, 11.0, Monotonic},
	{"PCR (mg/L)", "mg/L", 0, 10, Monotonic},
	{"Procalcitonina (ng/mL)", "ng/mL", 0, 0.5, Monotonic},
}

// DefaultCatalog returns the process-wide built-in catalog. It is built on
// first use and shared read-only afterwards.
var DefaultCatalog = sync.OnceValue(func() *Catalog {
	entries := make([]Entry, 0, len(referenceDefinitions))
	for _, def := range referenceDefinitions {
		iv, err := NewInterval(def.min, def.max)
		if err != nil {
			panic(fmt.Sprintf("labs: reference range for %q: %v", def.name, err))
		}

		entries = append(entries, Entry{
			Name:           def.name,
			Unit:           def.unit,
			Interval:       iv,
			Directionality: def.dir,
		})
	}

	c, err := NewCatalog(entries...)
	if err != nil {
		panic(fmt.Sprintf("labs: default catalog: %v", err))
	}

	return c
})

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
