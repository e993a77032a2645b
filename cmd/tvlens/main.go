// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package main is the tvlens command line interface.
//
// tvlens loads a CSV catalog of television listings into an embedded
// DuckDB database and answers ten named analytical reports over it:
// filters, per-brand and per-OS aggregates, discount analysis, size and
// price bucketing, and a price-per-rating-point ranking.
//
// # Commands
//
//	tvlens load [csv-file]   load the listings CSV into the database
//	tvlens list              list the available reports
//	tvlens report <name>     run one report and print it as a table
//	tvlens report --all      run every report in canonical order
//	tvlens serve             serve the reports as a read-only HTTP API
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the TVLENS_ prefix
//   - Config file (tvlens.yaml, or --config / TVLENS_CONFIG)
//   - Built-in defaults
//
// The default database is in-memory: each invocation loads the
// configured CSV before running reports. Point database.path at a file
// to load once with `tvlens load` and reuse the database afterwards.
//
// # Example Usage
//
//	export TVLENS_DATASET_CSV_PATH=Ecommerce.csv
//	tvlens report brand-summary
//
//	export TVLENS_DATABASE_PATH=tvlens.db
//	tvlens load Ecommerce.csv
//	tvlens serve
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tvlens/tvlens/internal/config"
	"github.com/tvlens/tvlens/internal/database"
	"github.com/tvlens/tvlens/internal/logging"
	"github.com/tvlens/tvlens/internal/metrics"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tvlens",
	Short: "analytical reports over a television listings catalog",
	Long: `tvlens loads a CSV of television listings into an embedded DuckDB
database and answers ten named analytical reports over it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the tvlens config file (default: tvlens.yaml, /etc/tvlens/tvlens.yaml)")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// loadConfig loads the layered configuration and initializes the global
// logger from it. Called at the start of every subcommand so config
// errors surface before any database work.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	return cfg, nil
}

// openDatabase opens the configured database and guarantees the
// listings table is populated: an empty table is loaded from the
// configured dataset CSV. The caller owns the returned database.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	count, err := db.CountListings(ctx)
	if err != nil {
		closeDatabase(db)
		return nil, err
	}

	if count == 0 {
		count, err = db.LoadCSV(ctx, cfg.Dataset.CSVPath)
		if err != nil {
			closeDatabase(db)
			return nil, err
		}
	}

	metrics.ListingsLoaded.Set(float64(count))
	return db, nil
}

func closeDatabase(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
