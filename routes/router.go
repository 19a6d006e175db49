/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
)

// apiPaths are the endpoints open to the cross-origin dashboard.
var apiPaths = []string{
	"/api/dashboard",
	"/dashboard-y",
	"/api/analyze",
	"/api/catalog",
	"/chart",
}

// RegisterAPI mounts the JSON and chart endpoints behind CORS.
func RegisterAPI(f *flamego.Flame, d *Dashboard, allowedOrigins []string) {
	cors := CORS(allowedOrigins)

	f.Group("", func() {
		f.Get("/api/dashboard", d.API)
		f.Get("/dashboard-y", d.API)
		f.Post("/api/analyze", d.Analyze)
		f.Get("/api/catalog", d.CatalogJSON)
		f.Get("/chart", d.Chart)
	}, cors)

	for _, path := range apiPaths {
		f.Options(path, cors)
	}
}

// RegisterPages mounts the HTML dashboard and its upload form. The session,
// CSRF and template middleware must already be installed.
func RegisterPages(f *flamego.Flame, d *Dashboard) {
	f.Group("", func() {
		f.Get("/", d.Home)
		f.Post("/upload", LimitRequestBody(maxUploadBytes), csrf.Validate, d.Upload)
	}, PageHeaders(), CSRFInjector(), FlashInjector())
}
