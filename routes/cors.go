/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"

	"github.com/flamego/flamego"
)

// DefaultAllowedOrigins are the dashboard front-end origins.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://192.168.0.104:3000",
	"http://10.0.50.217:3000",
}

// CORS answers cross-origin requests from the allowed origins with
// credentials enabled. Preflight requests end here with 204.
func CORS(allowedOrigins []string) flamego.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(c flamego.Context) {
		origin := c.Request().Header.Get("Origin")
		_, ok := allowed[origin]

		header := c.ResponseWriter().Header()
		if ok {
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Add("Vary", "Origin")
		}

		if c.Request().Method == http.MethodOptions {
			if ok {
				header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

				if reqHeaders := c.Request().Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					header.Set("Access-Control-Allow-Headers", reqHeaders)
				}
			}
			c.ResponseWriter().WriteHeader(http.StatusNoContent)

			return
		}

		c.Next()
	}
}
