/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/postop/loader"
)

var CmdConvert = &cli.Command{
	Name:  "convert",
	Usage: "Convert a free-text exam report into a Categoria,Exame,Valor CSV",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "report text file, one \"Exam: value\" per line",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "CSV file to write (default: stdout)",
		},
	},
	Action: convert,
}

func convert(_ context.Context, cmd *cli.Command) (err error) {
	input := cmd.String("input")
	if input == "" {
		return errInputRequired
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open report: %w", err)
	}
	defer in.Close()

	entries, err := loader.ParseReport(in)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.Root().Writer
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	if err := loader.WriteReportCSV(out, entries); err != nil {
		return err
	}

	appLogger.Info("Converted report", "input", input, "entries", len(entries))

	return nil
}
