/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plot

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/postop/labs"
)

// Chart describes one parameter chart.
type Chart struct {
	Parameter string
	Unit      string
	Series    labs.Series
	// Reference is nil for parameters without a catalog entry.
	Reference *labs.Interval
	Subtitle  string
}

// ForClassification builds the chart of a classified parameter.
func ForClassification(c labs.Classification) Chart {
	iv := c.Interval

	return Chart{
		Parameter: c.Parameter,
		Unit:      c.Unit,
		Series:    c.Series,
		Reference: &iv,
		Subtitle:  fmt.Sprintf("%s · %s", c.Status.Label(), labs.TrendLabel(c.Trend, c.Direction)),
	}
}

// ForUncatalogued builds the chart of a parameter with no reference
// range. The subtitle carries the naive trend.
func ForUncatalogued(row labs.Row) Chart {
	return Chart{
		Parameter: row.Parameter,
		Unit:      labs.UnitOf(row.Parameter),
		Series:    row.Series,
		Subtitle:  "Sem intervalo de referência · " + labs.TrendLabel(labs.NaiveTrend(row.Series), row.Series.Direction()),
	}
}

// Render draws a line chart of the series over the fixed timeline, with
// dashed reference lines and a shaded healthy band when a reference
// interval is known. It returns a self-contained HTML document.
func Render(ch Chart) (string, error) {
	timeline := labs.Timeline()

	xAxis := make([]string, 0, len(timeline))
	yData := make([]opts.LineData, 0, len(timeline))
	for i, tp := range timeline {
		xAxis = append(xAxis, tp.Label())

		if v := ch.Series.At(i); v != nil {
			yData = append(yData, opts.LineData{Value: *v})
		} else {
			// "-" is how echarts marks a gap in a series.
			yData = append(yData, opts.LineData{Value: "-"})
		}
	}

	yAxisMin, yAxisMax := axisBounds(ch.Series.Available(), ch.Reference)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Evolução do " + ch.Parameter,
			Subtitle: ch.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: ch.Unit,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol:   opts.Bool(true),
			ConnectNulls: opts.Bool(true),
		}),
	}

	if ch.Reference != nil {
		refMin, refMax := ch.Reference.Min(), ch.Reference.Max()

		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: []interface{}{
					opts.MarkLineNameYAxisItem{Name: fmt.Sprintf("Min: %g", refMin), YAxis: refMin},
					opts.MarkLineNameYAxisItem{Name: fmt.Sprintf("Max: %g", refMax), YAxis: refMax},
				},
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
			s.MarkAreas = &opts.MarkAreas{
				Data: []interface{}{
					[]opts.MarkAreaNameYAxisItem{
						{Name: "Referência", YAxis: refMin},
						{YAxis: refMax},
					},
				},
				MarkAreaStyle: opts.MarkAreaStyle{
					ItemStyle: &opts.ItemStyle{
						Color: "rgba(0, 128, 0, 0.1)",
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(ch.Parameter, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart for %s: %w", ch.Parameter, err)
	}

	return buf.String(), nil
}

// RenderAll charts every row of the table, catalogued or not, keyed by
// parameter name. Rows that repeat a parameter overwrite earlier charts.
func RenderAll(rows []labs.Row, analysis labs.Analysis) (map[string]string, error) {
	out := make(map[string]string, len(rows))

	for _, row := range rows {
		ch := ForUncatalogued(row)
		if c, ok := analysis.Results[row.Parameter]; ok {
			ch = ForClassification(c)
		}

		html, err := Render(ch)
		if err != nil {
			return nil, err
		}
		out[row.Parameter] = html
	}

	return out, nil
}

// axisBounds widens the y-axis to include the reference range with 10%
// padding, and further when the data leaves that range. Without a
// reference range echarts picks the scale.
func axisBounds(values []float64, ref *labs.Interval) (interface{}, interface{}) {
	if ref == nil {
		return nil, nil
	}

	refMin, refMax := ref.Min(), ref.Max()
	padding := (refMax - refMin) * 0.1
	minVal := refMin - padding
	maxVal := refMax + padding

	if len(values) == 0 {
		return minVal, maxVal
	}

	dataMin, dataMax := values[0], values[0]
	for _, v := range values[1:] {
		if v < dataMin {
			dataMin = v
		}
		if v > dataMax {
			dataMax = v
		}
	}

	spread := dataMax - dataMin
	if dataMin < minVal {
		minVal = dataMin - spread*0.05
	}
	if dataMax > maxVal {
		maxVal = dataMax + spread*0.05
	}

	return minVal, maxVal
}
