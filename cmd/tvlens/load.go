// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tvlens/tvlens/internal/database"
	"github.com/tvlens/tvlens/internal/logging"
	"github.com/tvlens/tvlens/internal/metrics"
)

var loadCmd = &cobra.Command{
	Use:   "load [csv-file]",
	Short: "load the listings CSV into the database",
	Long: `Load the television listings CSV into the database, replacing any
previously loaded rows. The file argument overrides dataset.csv_path
from the configuration.

The load fails with a descriptive error when a required column is
missing from the CSV header or a numeric column fails to parse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Dataset.CSVPath
	if len(args) == 1 {
		path = args[0]
	}

	if cfg.Database.Path == ":memory:" {
		logging.Warn().Msg("Loading into an in-memory database; rows will not outlive this process")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	loaded, err := db.LoadCSV(cmd.Context(), path)
	if err != nil {
		return err
	}
	metrics.ListingsLoaded.Set(float64(loaded))

	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d listings from %s\n", loaded, path)
	return nil
}
