/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"encoding/json"
	"fmt"
)

// Status places the current value relative to the reference interval.
type Status int

// Status values. The zero value is StatusInsufficient.
const (
	StatusInsufficient Status = iota
	StatusBelow
	StatusNormal
	StatusAbove
)

func (s Status) String() string {
	switch s {
	case StatusInsufficient:
		return "Insufficient"
	case StatusBelow:
		return "Below"
	case StatusNormal:
		return "Normal"
	case StatusAbove:
		return "Above"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Label returns the text shown on the dashboard.
func (s Status) Label() string {
	switch s {
	case StatusBelow:
		return "Abaixo"
	case StatusNormal:
		return "Normal"
	case StatusAbove:
		return "Acima"
	default:
		return "Insuficiente"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Trend is the judgment derived from the two most recent observations.
type Trend int

// Trend values. The zero value is TrendInsufficient.
const (
	TrendInsufficient Trend = iota
	TrendImproving
	TrendWorsening
	TrendNormalized
	TrendOscillating
)

func (t Trend) String() string {
	switch t {
	case TrendInsufficient:
		return "Insufficient"
	case TrendImproving:
		return "Improving"
	case TrendWorsening:
		return "Worsening"
	case TrendNormalized:
		return "Normalized"
	case TrendOscillating:
		return "Oscillating"
	default:
		return fmt.Sprintf("Trend(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Direction is the raw movement between the two most recent observations.
type Direction int

// Direction values. DirectionNone means fewer than two observations.
const (
	DirectionNone Direction = iota
	DirectionRising
	DirectionFalling
	DirectionFlat
)

func (d Direction) String() string {
	switch d {
	case DirectionRising:
		return "rising"
	case DirectionFalling:
		return "falling"
	case DirectionFlat:
		return "flat"
	default:
		return "none"
	}
}

// Arrow returns the glyph used next to trend labels.
func (d Direction) Arrow() string {
	switch d {
	case DirectionRising:
		return "↑"
	case DirectionFalling:
		return "↓"
	case DirectionFlat:
		return "→"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TrendLabel renders a trend for display, with the movement arrow.
func TrendLabel(t Trend, d Direction) string {
	switch t {
	case TrendImproving:
		return "MELHORANDO " + d.Arrow()
	case TrendWorsening:
		return "PIORANDO " + d.Arrow()
	case TrendNormalized:
		return "NORMALIZADO ✓"
	case TrendOscillating:
		return "OSCILANDO →"
	default:
		return "Insuficiente"
	}
}

// Classification is the derived result for one parameter.
type Classification struct {
	Parameter      string
	Unit           string
	Series         Series
	Interval       Interval
	Directionality Directionality
	Status         Status
	Trend          Trend
	Direction      Direction
	// Current is the most recent non-missing observation, nil when none.
	Current *float64
}

// MarshalJSON encodes the record handed to the presentation layer.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Series            Series         `json:"series"`
		ReferenceInterval Interval       `json:"reference_interval"`
		Unit              string         `json:"unit,omitempty"`
		Directionality    Directionality `json:"directionality"`
		Status            Status         `json:"status"`
		StatusLabel       string         `json:"status_label"`
		Trend             Trend          `json:"trend"`
		TrendLabel        string         `json:"trend_label"`
		Direction         Direction      `json:"direction"`
		CurrentValue      *float64       `json:"current_value"`
	}{
		Series:            c.Series,
		ReferenceInterval: c.Interval,
		Unit:              c.Unit,
		Directionality:    c.Directionality,
		Status:            c.Status,
		StatusLabel:       c.Status.Label(),
		Trend:             c.Trend,
		TrendLabel:        TrendLabel(c.Trend, c.Direction),
		Direction:         c.Direction,
		CurrentValue:      c.Current,
	})
}

// Classify derives status and trend for one parameter's series. It is a pure
// function of its inputs and is safe to call concurrently.
//
// Fewer than two usable observations yield StatusInsufficient and
// TrendInsufficient. Otherwise the status comes from the last usable value
// and the trend from the last two, following the entry's directionality.
func Classify(entry Entry, series Series) Classification {
	c := Classification{
		Parameter:      entry.Name,
		Unit:           entry.Unit,
		Series:         series,
		Interval:       entry.Interval,
		Directionality: entry.Directionality,
	}

	available := series.Available()
	if len(available) > 0 {
		c.Current = Value(available[len(available)-1])
	}
	if len(available) < 2 {
		return c
	}

	prev, last := available[len(available)-2], available[len(available)-1]

	c.Status = statusOf(entry.Interval, last)
	c.Direction = directionOf(prev, last)

	switch entry.Directionality {
	case Corridor:
		c.Trend = corridorTrend(entry.Interval, prev, last)
	default:
		c.Trend = monotonicTrend(entry.Interval, prev, last)
	}

	return c
}

// NaiveTrend judges the last two usable observations without any reference
// interval: rising is Worsening, falling is Improving, unchanged is
// Oscillating.
func NaiveTrend(series Series) Trend {
	switch series.Direction() {
	case DirectionNone:
		return TrendInsufficient
	case DirectionRising:
		return TrendWorsening
	case DirectionFalling:
		return TrendImproving
	default:
		return TrendOscillating
	}
}

// Direction returns the movement between the last two usable observations.
func (s Series) Direction() Direction {
	available := s.Available()
	if len(available) < 2 {
		return DirectionNone
	}

	return directionOf(available[len(available)-2], available[len(available)-1])
}

func statusOf(iv Interval, v float64) Status {
	switch {
	case v < iv.min:
		return StatusBelow
	case v > iv.max:
		return StatusAbove
	default:
		return StatusNormal
	}
}

func directionOf(prev, last float64) Direction {
	switch {
	case last > prev:
		return DirectionRising
	case last < prev:
		return DirectionFalling
	default:
		return DirectionFlat
	}
}

// corridorTrend compares nearest-edge distances only. A move between two
// points inside the interval can therefore report Improving or Worsening.
func corridorTrend(iv Interval, prev, last float64) Trend {
	if iv.EdgeDistance(last) < iv.EdgeDistance(prev) {
		return TrendImproving
	}

	return TrendWorsening
}

func monotonicTrend(iv Interval, prev, last float64) Trend {
	switch {
	case last > iv.max:
		if last < prev {
			return TrendImproving
		}
		return TrendWorsening
	case last < iv.min:
		if last > prev {
			return TrendImproving
		}
		return TrendWorsening
	default:
		return TrendNormalized
	}
}
