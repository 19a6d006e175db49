/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/postop/cmd"
	"github.com/humaidq/postop/logging"
)

func main() {
	logging.Init()
	logger := logging.Logger(logging.SourceApp)

	app := &cli.Command{
		Name:  "postop",
		Usage: "Post-operative lab results dashboard",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdAnalyze,
			cmd.CmdConvert,
			cmd.CmdCatalog,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}
