// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package plot

import (
	"strings"
	"testing"

	"github.com/humaidq/postop/labs"
)

func mustSeries(t *testing.T, values ...*float64) labs.Series {
	t.Helper()

	s, err := labs.NewSeries(values...)
	if err != nil {
		t.Fatalf("failed to build series: %v", err)
	}

	return s
}

func TestRenderCatalogued(t *testing.T) {
	t.Parallel()

	entry, ok := labs.DefaultCatalog().Lookup("Creatinina (mg/dL)")
	if !ok {
		t.Fatal("expected creatinine in default catalog")
	}

	c := labs.Classify(entry, mustSeries(t, labs.Value(0.9), labs.Value(1.1), nil, labs.Value(1.5)))

	html, err := Render(ForClassification(c))
	if err != nil {
		t.Fatalf("failed to render chart: %v", err)
	}

	for _, want := range []string{
		"Evolução do Creatinina (mg/dL)",
		"Pré-Operatório",
		"Pós-Operatório (72h)",
		"markLine",
		"markArea",
		"Acima · PIORANDO ↑",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}
}

func TestRenderUncatalogued(t *testing.T) {
	t.Parallel()

	row := labs.Row{
		Parameter: "XYZ (U/L)",
		Series:    mustSeries(t, labs.Value(4), labs.Value(3)),
	}

	ch := ForUncatalogued(row)
	if ch.Reference != nil {
		t.Fatal("expected no reference interval")
	}
	if ch.Unit != "U/L" {
		t.Fatalf("expected unit from name, got %q", ch.Unit)
	}
	if ch.Subtitle != "Sem intervalo de referência · MELHORANDO ↓" {
		t.Fatalf("unexpected subtitle %q", ch.Subtitle)
	}

	html, err := Render(ch)
	if err != nil {
		t.Fatalf("failed to render chart: %v", err)
	}
	if strings.Contains(html, "markArea") {
		t.Fatal("expected no reference band without an interval")
	}
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	rows := []labs.Row{
		{Parameter: "pH (Gasometria)", Series: mustSeries(t, labs.Value(7.25), labs.Value(7.31))},
		{Parameter: "Unlisted", Series: mustSeries(t, labs.Value(1))},
	}

	a := labs.Analyze(labs.DefaultCatalog(), rows)

	out, err := RenderAll(rows, a)
	if err != nil {
		t.Fatalf("failed to render charts: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected a chart per row, got %d", len(out))
	}
	if !strings.Contains(out["pH (Gasometria)"], "markLine") {
		t.Fatal("expected reference lines on catalogued chart")
	}
	if !strings.Contains(out["Unlisted"], "Insuficiente") {
		t.Fatal("expected insufficient trend on single-value chart")
	}
}

func TestAxisBounds(t *testing.T) {
	t.Parallel()

	iv, err := labs.NewInterval(10, 20)
	if err != nil {
		t.Fatalf("failed to build interval: %v", err)
	}

	lo, hi := axisBounds([]float64{12, 15}, &iv)
	if lo.(float64) != 9 || hi.(float64) != 21 {
		t.Fatalf("expected padded reference bounds, got %v..%v", lo, hi)
	}

	lo, hi = axisBounds([]float64{0, 40}, &iv)
	if lo.(float64) != -2 || hi.(float64) != 42 {
		t.Fatalf("expected data bounds with margin, got %v..%v", lo, hi)
	}

	lo, hi = axisBounds([]float64{1}, nil)
	if lo != nil || hi != nil {
		t.Fatalf("expected automatic scale without interval, got %v..%v", lo, hi)
	}
}
