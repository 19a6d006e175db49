/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

// maxUploadBytes leaves room for the multipart envelope around a table.
const maxUploadBytes = maxTableBytes + 64<<10

// pageHeaders are set on every dashboard page response.
var pageHeaders = map[string]string{
	"X-Robots-Tag":           "noindex, nofollow",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "same-origin",
}

// CSRFInjector exposes the CSRF token to the upload form.
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// PageHeaders keeps patient data out of shared caches and search indexes.
// Reads are never cached; writes only get the static headers.
func PageHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		for k, v := range pageHeaders {
			header.Set(k, v)
		}

		switch c.Request().Method {
		case http.MethodGet, http.MethodHead:
			header.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}

// LimitRequestBody caps the request body at n bytes. It has to run before
// anything that parses the form, CSRF validation included, since form
// parsing reads the whole body.
func LimitRequestBody(n int64) flamego.Handler {
	return func(c flamego.Context) {
		r := c.Request().Request
		if r.ContentLength > n {
			requestLogger.Warn("Request body too large", "path", r.URL.Path, "content_length", r.ContentLength, "limit", n)
			http.Error(c.ResponseWriter(), errUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)

			return
		}

		r.Body = http.MaxBytesReader(c.ResponseWriter(), r.Body, n)
		c.Next()
	}
}
