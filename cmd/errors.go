/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errCSRFSecretRequired = errors.New("csrf-secret is required (set via --csrf-secret or CSRF_SECRET env var)")
	errInputRequired      = errors.New("input is required")
)
