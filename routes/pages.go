/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/humaidq/postop/labs"
	"github.com/humaidq/postop/loader"
	"github.com/humaidq/postop/plot"
)

// uploadField is the multipart field holding the dataset file.
const uploadField = "dataset"

// dashboardRow is one line of the status table on the dashboard page.
type dashboardRow struct {
	Parameter   string
	Unit        string
	Current     *float64
	Reference   string
	StatusLabel string
	Status      string
	TrendLabel  string
	Chart       htmltemplate.HTML
}

// Home renders the dashboard page for the configured table.
func (d *Dashboard) Home(t template.Template, data template.Data) {
	data["Title"] = "Evolução Pós-Operatória"
	data["DatasetPath"] = d.DatasetPath

	table, a, err := d.load()
	if err != nil {
		analysisLogger.Error("Failed to load dataset", "path", d.DatasetPath, "error", err)
		data["LoadError"] = err.Error()
		t.HTML(http.StatusOK, "dashboard")

		return
	}

	var rows []dashboardRow
	for _, cl := range a.Classifications() {
		chart, err := plot.Render(plot.ForClassification(cl))
		if err != nil {
			analysisLogger.Error("Failed to render chart", "parameter", cl.Parameter, "error", err)
		}

		rows = append(rows, dashboardRow{
			Parameter:   cl.Parameter,
			Unit:        cl.Unit,
			Current:     cl.Current,
			Reference:   fmt.Sprintf("%g – %g", cl.Interval.Min(), cl.Interval.Max()),
			StatusLabel: cl.Status.Label(),
			Status:      cl.Status.String(),
			TrendLabel:  labs.TrendLabel(cl.Trend, cl.Direction),
			Chart:       htmltemplate.HTML(chart),
		})
	}

	var others []dashboardRow
	for _, row := range table.Rows {
		if _, ok := a.Results[row.Parameter]; ok {
			continue
		}

		ch := plot.ForUncatalogued(row)
		chart, err := plot.Render(ch)
		if err != nil {
			analysisLogger.Error("Failed to render chart", "parameter", row.Parameter, "error", err)
		}

		others = append(others, dashboardRow{
			Parameter:  row.Parameter,
			Unit:       ch.Unit,
			TrendLabel: labs.TrendLabel(labs.NaiveTrend(row.Series), row.Series.Direction()),
			Chart:      htmltemplate.HTML(chart),
		})
	}

	data["Rows"] = rows
	data["Others"] = others
	data["Skipped"] = a.Skipped

	t.HTML(http.StatusOK, "dashboard")
}

// Upload replaces the configured table with an uploaded CSV file once it
// parses. An invalid file leaves the current table untouched.
func (d *Dashboard) Upload(c flamego.Context, s session.Session) {
	uploadID := uuid.NewString()

	raw, err := readUpload(c)
	if err != nil {
		requestLogger.Warn("Rejected dataset upload", "upload_id", uploadID, "error", err)
		SetErrorFlash(s, "Falha no envio: "+err.Error())
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	table, err := loader.ReadTable(bytes.NewReader(raw))
	if err != nil {
		requestLogger.Warn("Rejected dataset upload", "upload_id", uploadID, "error", err)
		SetErrorFlash(s, "Arquivo inválido: "+err.Error())
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	if err := replaceFile(d.DatasetPath, raw); err != nil {
		requestLogger.Error("Failed to store dataset", "upload_id", uploadID, "path", d.DatasetPath, "error", err)
		SetErrorFlash(s, "Falha ao salvar o arquivo")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	requestLogger.Info("Dataset replaced", "upload_id", uploadID, "path", d.DatasetPath, "rows", len(table.Rows))
	SetSuccessFlash(s, fmt.Sprintf("Dados atualizados: %d parâmetros (envio %s)", len(table.Rows), uploadID))
	c.Redirect("/", http.StatusSeeOther)
}

func readUpload(c flamego.Context) ([]byte, error) {
	file, _, err := c.Request().Request.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errUploadTooLarge
		}

		return nil, errMissingUpload
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxTableBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(raw) > maxTableBytes {
		return nil, errUploadTooLarge
	}

	return raw, nil
}

// replaceFile writes data next to path and renames it into place, so
// concurrent readers see either the old or the new table.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
