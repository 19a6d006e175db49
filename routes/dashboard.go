/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/postop/labs"
	"github.com/humaidq/postop/loader"
	"github.com/humaidq/postop/logging"
	"github.com/humaidq/postop/plot"
)

var analysisLogger = logging.Logger(logging.SourceAnalysis)

// maxTableBytes bounds uploaded and posted measurement tables.
const maxTableBytes = 1 << 20

// Dashboard serves the analysis of the measurement table at DatasetPath
// against Catalog. The table is read again on every request so edits and
// uploads show up without a restart.
type Dashboard struct {
	DatasetPath string
	Catalog     *labs.Catalog
}

// NewDashboard returns a dashboard over the table at datasetPath. A nil
// catalog selects the built-in one.
func NewDashboard(datasetPath string, catalog *labs.Catalog) *Dashboard {
	if catalog == nil {
		catalog = labs.DefaultCatalog()
	}

	return &Dashboard{
		DatasetPath: datasetPath,
		Catalog:     catalog,
	}
}

// dashboardResponse is the payload consumed by the dashboard front-end.
type dashboardResponse struct {
	Charts   map[string]string `json:"charts"`
	Analysis labs.Analysis     `json:"analysis"`
}

// load reads and classifies the configured table.
func (d *Dashboard) load() (loader.Table, labs.Analysis, error) {
	table, err := loader.LoadTable(d.DatasetPath)
	if err != nil {
		return loader.Table{}, labs.Analysis{}, err
	}

	a := d.analyze(table)

	return table, a, nil
}

func (d *Dashboard) analyze(table loader.Table) labs.Analysis {
	a := labs.Analyze(d.Catalog, table.Rows)
	if len(a.Skipped) > 0 {
		analysisLogger.Debug("Parameters without reference range", "parameters", strings.Join(a.Skipped, ", "))
	}

	return a
}

// API returns every chart of the table plus the analysis of catalogued
// parameters.
func (d *Dashboard) API(c flamego.Context) {
	table, a, err := d.load()
	if err != nil {
		analysisLogger.Error("Failed to load dataset", "path", d.DatasetPath, "error", err)
		writeJSONError(c, http.StatusInternalServerError, err.Error())

		return
	}

	charts, err := plot.RenderAll(table.Rows, a)
	if err != nil {
		analysisLogger.Error("Failed to render charts", "error", err)
		writeJSONError(c, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(c, http.StatusOK, dashboardResponse{
		Charts:   charts,
		Analysis: a,
	})
}

// Analyze classifies a CSV table posted as the request body.
func (d *Dashboard) Analyze(c flamego.Context) {
	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Request.Body, maxTableBytes)

	table, err := loader.ReadTable(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(c, http.StatusRequestEntityTooLarge, errUploadTooLarge.Error())

			return
		}

		writeJSONError(c, http.StatusBadRequest, err.Error())

		return
	}

	writeJSON(c, http.StatusOK, d.analyze(table))
}

// catalogEntry is the JSON form of one reference entry.
type catalogEntry struct {
	Name           string              `json:"name"`
	Unit           string              `json:"unit,omitempty"`
	Min            float64             `json:"min"`
	Max            float64             `json:"max"`
	Directionality labs.Directionality `json:"directionality"`
}

// CatalogJSON lists the reference entries in catalog order.
func (d *Dashboard) CatalogJSON(c flamego.Context) {
	entries := d.Catalog.Entries()

	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntry{
			Name:           e.Name,
			Unit:           e.Unit,
			Min:            e.Interval.Min(),
			Max:            e.Interval.Max(),
			Directionality: e.Directionality,
		})
	}

	writeJSON(c, http.StatusOK, out)
}

// Chart renders the chart of one parameter as an HTML document.
func (d *Dashboard) Chart(c flamego.Context) {
	name := strings.TrimSpace(c.Query("parameter"))
	if name == "" {
		http.Error(c.ResponseWriter(), errMissingParameter.Error(), http.StatusBadRequest)
		return
	}

	table, a, err := d.load()
	if err != nil {
		analysisLogger.Error("Failed to load dataset", "path", d.DatasetPath, "error", err)
		http.Error(c.ResponseWriter(), "failed to load dataset", http.StatusInternalServerError)

		return
	}

	ch, err := chartFor(table, a, name)
	if err != nil {
		http.Error(c.ResponseWriter(), err.Error(), http.StatusNotFound)
		return
	}

	html, err := plot.Render(ch)
	if err != nil {
		analysisLogger.Error("Failed to render chart", "parameter", name, "error", err)
		http.Error(c.ResponseWriter(), "failed to render chart", http.StatusInternalServerError)

		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.ResponseWriter().WriteHeader(http.StatusOK)
	_, _ = c.ResponseWriter().Write([]byte(html))
}

// chartFor finds the last row for name, matching the analysis rule for
// repeated parameters.
func chartFor(table loader.Table, a labs.Analysis, name string) (plot.Chart, error) {
	if cl, ok := a.Results[name]; ok {
		return plot.ForClassification(cl), nil
	}

	for i := len(table.Rows) - 1; i >= 0; i-- {
		if table.Rows[i].Parameter == name {
			return plot.ForUncatalogued(table.Rows[i]), nil
		}
	}

	return plot.Chart{}, fmt.Errorf("%w: %s", errUnknownParameter, name)
}

// writeJSON encodes v before writing the status, so an encoding failure
// becomes a 500 instead of an empty 200.
func writeJSON(c flamego.Context, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		analysisLogger.Error("Failed to encode response", "error", err)
		http.Error(c.ResponseWriter(), "failed to encode response", http.StatusInternalServerError)

		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)
	_, _ = c.ResponseWriter().Write(buf.Bytes())
}

func writeJSONError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}
