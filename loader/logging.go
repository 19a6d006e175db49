/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package loader

import "github.com/humaidq/postop/logging"

var logger = logging.Logger(logging.SourceLoader)
