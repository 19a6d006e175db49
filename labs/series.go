/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"encoding/json"
	"fmt"
	"math"
)

// TimePoint identifies a collection moment relative to the surgical procedure.
type TimePoint int

// TimePoint values, in chronological order.
const (
	PreOp TimePoint = iota
	PostOp24h
	PostOp48h
	PostOp72h
)

// TimePoints is the number of collection moments on the timeline.
const TimePoints = 4

var timePointLabels = [TimePoints]string{
	"Pré-Operatório",
	"Pós-Operatório (24h)",
	"Pós-Operatório (48h)",
	"Pós-Operatório (72h)",
}

// Label returns the column heading used for the time point.
func (tp TimePoint) Label() string {
	if tp < 0 || int(tp) >= TimePoints {
		return fmt.Sprintf("TimePoint(%d)", int(tp))
	}

	return timePointLabels[tp]
}

// Timeline returns every time point in chronological order.
func Timeline() []TimePoint {
	return []TimePoint{PreOp, PostOp24h, PostOp48h, PostOp72h}
}

// Value returns a pointer to f. Use it to build observations from literals.
func Value(f float64) *float64 {
	return &f
}

// Series is an ordered, immutable run of up to TimePoints observations for
// one parameter. A nil observation (or NaN) is missing.
type Series struct {
	values [TimePoints]*float64
	n      int
}

// NewSeries copies the given observations into a Series. It returns
// ErrSeriesTooLong if more observations than time points are supplied.
func NewSeries(values ...*float64) (Series, error) {
	if len(values) > TimePoints {
		return Series{}, fmt.Errorf("%w: got %d, max %d", ErrSeriesTooLong, len(values), TimePoints)
	}

	var s Series
	for i, v := range values {
		if v != nil {
			s.values[i] = Value(*v)
		}
	}
	s.n = len(values)

	return s, nil
}

// Len returns the number of slots in the series, missing ones included.
func (s Series) Len() int {
	return s.n
}

// At returns a copy of the observation at i, or nil when it is missing or
// out of range.
func (s Series) At(i int) *float64 {
	if i < 0 || i >= s.n || isMissing(s.values[i]) {
		return nil
	}

	return Value(*s.values[i])
}

// Values returns copies of every slot, nil for missing observations.
func (s Series) Values() []*float64 {
	out := make([]*float64, s.n)
	for i := range out {
		out[i] = s.At(i)
	}

	return out
}

// Available returns the non-missing observations in chronological order.
func (s Series) Available() []float64 {
	out := make([]float64, 0, s.n)
	for i := 0; i < s.n; i++ {
		if !isMissing(s.values[i]) {
			out = append(out, *s.values[i])
		}
	}

	return out
}

// MarshalJSON encodes the series as an array with null for missing slots.
func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func isMissing(v *float64) bool {
	return v == nil || math.IsNaN(*v)
}
