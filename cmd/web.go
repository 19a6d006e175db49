/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/postop/routes"
	"github.com/humaidq/postop/static"
	"github.com/humaidq/postop/templates"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8000",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:  "host",
			Value: "0.0.0.0",
			Usage: "the address to listen on",
		},
		datasetFlag(),
		catalogFlag(),
		&cli.StringSliceFlag{
			Name:    "allowed-origins",
			Sources: cli.EnvVars("ALLOWED_ORIGINS"),
			Value:   routes.DefaultAllowedOrigins,
			Usage:   "origins allowed to call the JSON API from a browser",
		},
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars("CSRF_SECRET"),
			Usage:   "secret used to sign CSRF tokens",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (for templates)",
		},
	},
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	csrfSecret := cmd.String("csrf-secret")
	if csrfSecret == "" {
		return errCSRFSecretRequired
	}

	catalog, err := loadCatalog(cmd.String("catalog"))
	if err != nil {
		return err
	}

	datasetPath := cmd.String("dataset")
	if _, err := os.Stat(datasetPath); err != nil {
		appLogger.Warn("Dataset not readable yet; the dashboard will report it until one is uploaded", "path", datasetPath, "error", err)
	}

	f, err := newServer(serverOptions{
		Dashboard:      routes.NewDashboard(datasetPath, catalog),
		AllowedOrigins: cmd.StringSlice("allowed-origins"),
		CSRFSecret:     csrfSecret,
		Dev:            cmd.Bool("dev"),
	})
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cmd.String("host"), cmd.String("port"))
	srv := &http.Server{
		Addr:              addr,
		Handler:           f,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          webStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting web server", "addr", addr, "dataset", datasetPath, "catalog_entries", catalog.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

type serverOptions struct {
	Dashboard      *routes.Dashboard
	AllowedOrigins []string
	CSRFSecret     string
	Dev            bool
}

// newServer wires middleware and routes. Templates are read from the
// embedded filesystem, or from ./templates with reloading in dev mode.
func newServer(opts serverOptions) (*flamego.Flame, error) {
	templateOpts := template.Options{
		FuncMaps: []htmltemplate.FuncMap{templateFuncs()},
	}

	if opts.Dev {
		flamego.SetEnv(flamego.EnvTypeDev)
		templateOpts.Directory = "templates"
	} else {
		flamego.SetEnv(flamego.EnvTypeProd)

		fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
		if err != nil {
			return nil, fmt.Errorf("failed to load templates: %w", err)
		}
		templateOpts.FileSystem = fs
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer(csrf.Options{
		Secret: opts.CSRFSecret,
	}))
	f.Use(template.Templater(templateOpts))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
		Prefix:     "static",
	}))

	routes.RegisterAPI(f, opts.Dashboard, opts.AllowedOrigins)
	routes.RegisterPages(f, opts.Dashboard)

	configureEmptyNotFoundHandler(f)

	return f, nil
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}

func templateFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"value": formatValue,
	}
}

// formatValue renders an optional measurement, "—" when missing.
func formatValue(v *float64) string {
	if v == nil {
		return "—"
	}

	return strconv.FormatFloat(*v, 'g', -1, 64)
}
