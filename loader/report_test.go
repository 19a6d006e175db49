// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"strings"
	"testing"
)

const sampleReport = `
pH: 7,25
pCO₂: 30 mmHg
HCO₃⁻: 15 mEq/L
Lactato: 4,5 mmol/L

Pré-operatório
pH: 7,40
pCO₂: 40 mmHg
observação sem valor
HCO₃⁻: 24 mEq/L
Lactato: 1,2 mmol/L

`

func TestParseReport(t *testing.T) {
	t.Parallel()

	entries, err := ParseReport(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}

	if len(entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Category != CategoryPostOp || first.Exam != "pH" || first.Value != "7,25" {
		t.Fatalf("unexpected first entry %+v", first)
	}

	if entries[1].Value != "30 mmHg" {
		t.Fatalf("expected value with unit, got %q", entries[1].Value)
	}

	for _, e := range entries[4:] {
		if e.Category != CategoryPreOp {
			t.Fatalf("expected pre-operative category after heading, got %+v", e)
		}
	}
}

func TestParseReportSplitsOnFirstColon(t *testing.T) {
	t.Parallel()

	entries, err := ParseReport(strings.NewReader("Coleta: 06:30\n"))
	if err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}

	if len(entries) != 1 || entries[0].Exam != "Coleta" || entries[0].Value != "06:30" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestWriteReportCSV(t *testing.T) {
	t.Parallel()

	entries := []ReportEntry{
		{Category: CategoryPostOp, Exam: "pH", Value: "7,25"},
		{Category: CategoryPreOp, Exam: "Lactato", Value: "1,2 mmol/L"},
	}

	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, entries); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	want := "Categoria,Exame,Valor\n" +
		"Pós-operatório,pH,\"7,25\"\n" +
		"Pré-operatório,Lactato,\"1,2 mmol/L\"\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
