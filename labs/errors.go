/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import "errors"

var (
	// ErrSeriesTooLong is returned when a series holds more observations than
	// there are collection time points.
	ErrSeriesTooLong = errors.New("series has more observations than time points")
	// ErrInvalidInterval is returned for intervals with min > max or NaN bounds.
	ErrInvalidInterval = errors.New("invalid reference interval")

	errUnknownDirectionality = errors.New("unknown directionality")
	errEmptyParameterName    = errors.New("parameter name is empty")
	errDuplicateParameter    = errors.New("duplicate parameter")
	errMissingBound          = errors.New("reference interval bound missing")
)
