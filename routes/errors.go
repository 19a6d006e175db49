/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errMissingParameter = errors.New("missing parameter")
	errUnknownParameter = errors.New("parameter not in table")
	errMissingUpload    = errors.New("no dataset file uploaded")
	errUploadTooLarge   = errors.New("dataset file too large")
)
