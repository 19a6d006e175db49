/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package loader

import "errors"

var (
	// ErrMissingColumn is returned when a required table column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidValue is returned for cells that are neither numeric nor a
	// recognised missing marker.
	ErrInvalidValue = errors.New("invalid numeric value")

	errEmptyTable = errors.New("table has no header row")
)
