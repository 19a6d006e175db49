/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/postop/labs"
)

func catalogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "catalog",
		Sources: cli.EnvVars("CATALOG_PATH"),
		Usage:   "YAML file overriding or extending the built-in reference ranges",
	}
}

var CmdCatalog = &cli.Command{
	Name:   "catalog",
	Usage:  "Print the effective reference catalog",
	Flags:  []cli.Flag{catalogFlag()},
	Action: printCatalog,
}

// loadCatalog returns the built-in catalog, with the overrides at path
// applied when path is set.
func loadCatalog(path string) (*labs.Catalog, error) {
	if path == "" {
		return labs.DefaultCatalog(), nil
	}

	catalog, err := labs.LoadCatalogFile(path, labs.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	appLogger.Info("Loaded catalog overrides", "path", path, "entries", catalog.Len())

	return catalog, nil
}

func printCatalog(_ context.Context, cmd *cli.Command) error {
	catalog, err := loadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}

	return writeCatalog(cmd.Root().Writer, catalog)
}

func writeCatalog(w io.Writer, catalog *labs.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tMIN\tMAX\tUNIT\tDIRECTIONALITY")

	for _, e := range catalog.Entries() {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%s\t%s\n", e.Name, e.Interval.Min(), e.Interval.Max(), e.Unit, e.Directionality)
	}

	return tw.Flush()
}
