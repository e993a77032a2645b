// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tvlens/tvlens/internal/api"
	"github.com/tvlens/tvlens/internal/logging"
	"github.com/tvlens/tvlens/internal/report"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the reports as a read-only HTTP API",
	Long: `Serve the analytical reports over HTTP. The dataset is loaded once at
startup and treated as read-only for the lifetime of the server.

Routes:

  GET /api/v1/health           liveness and loaded row count
  GET /api/v1/reports          the available reports
  GET /api/v1/reports/{name}   rows of the named report as JSON
  GET /metrics                 Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	registry := report.NewRegistry(db, cfg.Analytics.InvalidRowPolicy)
	router := api.NewRouter(registry, db)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}
