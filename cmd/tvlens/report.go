// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tvlens/tvlens/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the available reports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var reportAll bool

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "run a named report and print its rows as a table",
	Long: `Run one of the named analytical reports against the loaded listings
and print the result as a table. With --all, every report runs in
canonical order. Use "tvlens list" for the report names.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "run every report in canonical order")
}

func runList(cmd *cobra.Command, args []string) error {
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

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"name", "title"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, rep := range registry.Reports() {
		table.Append([]string{rep.Name, rep.Title})
	}
	table.Render()

	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportAll == (len(args) == 1) {
		return fmt.Errorf("specify exactly one report name or --all")
	}

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

	names := args
	if reportAll {
		names = registry.Names()
	}

	out := cmd.OutOrStdout()
	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(out)
		}

		result, err := registry.Run(cmd.Context(), name)
		if err != nil {
			return err
		}
		if err := report.Render(out, result); err != nil {
			return err
		}
	}

	return nil
}
