/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/postop/labs"
	"github.com/humaidq/postop/loader"
)

func datasetFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "dataset",
		Sources: cli.EnvVars("DATASET_PATH"),
		Value:   "dataset.csv",
		Usage:   "CSV measurement table with one row per parameter",
	}
}

var CmdAnalyze = &cli.Command{
	Name:  "analyze",
	Usage: "Classify the measurement table and print the analysis as JSON",
	Flags: []cli.Flag{
		datasetFlag(),
		catalogFlag(),
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "indent the JSON output",
		},
	},
	Action: analyze,
}

func analyze(_ context.Context, cmd *cli.Command) error {
	catalog, err := loadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}

	table, err := loader.LoadTable(cmd.String("dataset"))
	if err != nil {
		return err
	}

	a := labs.Analyze(catalog, table.Rows)
	if len(a.Skipped) > 0 {
		appLogger.Warn("Parameters without reference range were skipped", "count", len(a.Skipped))
	}

	return writeAnalysis(cmd.Root().Writer, a, cmd.Bool("pretty"))
}

func writeAnalysis(w io.Writer, a labs.Analysis, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(a)
}
