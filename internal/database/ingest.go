// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tvlens/tvlens/internal/logging"
)

// csvColumn pairs a required CSV header with the DuckDB type it must
// parse as.
type csvColumn struct {
	Name string
	Type string
}

// csvColumns lists the required CSV headers in source order. A file
// missing any of these fails the load; extra columns are ignored and
// column order in the file does not matter since columns are selected
// by header name.
var csvColumns = []csvColumn{
	{"Brand", "VARCHAR"},
	{"Resolution", "VARCHAR"},
	{"Size", "DOUBLE"},
	{"Selling Price", "DOUBLE"},
	{"Original Price", "DOUBLE"},
	{"Operating System", "VARCHAR"},
	{"Rating", "DOUBLE"},
}

// LoadCSV loads the listings table from the CSV file at path, replacing
// any previously loaded rows. Each row is assigned a listing_id in file
// order; listing_id is the deterministic tie-break key for ranked
// reports.
//
// The load fails fast with a descriptive error when a required column
// is missing from the header or a numeric column fails to parse; no
// value is silently coerced.
func (db *DB) LoadCSV(ctx context.Context, path string) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.validateCSVHeader(ctx, path); err != nil {
		return 0, err
	}

	if _, err := db.conn.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return 0, fmt.Errorf("failed to clear listings table: %w", err)
	}

	// read_csv takes the file path as part of the statement text, not
	// as a bind parameter, so the path is escaped explicitly. Columns
	// are selected by header name with explicit casts: a malformed
	// numeric fails the load instead of being coerced to text.
	query := fmt.Sprintf(`INSERT INTO listings
	SELECT
		row_number() OVER () AS listing_id,
		CAST("Brand" AS VARCHAR) AS brand,
		CAST("Resolution" AS VARCHAR) AS resolution,
		CAST("Size" AS DOUBLE) AS size_inches,
		CAST("Selling Price" AS DOUBLE) AS selling_price,
		CAST("Original Price" AS DOUBLE) AS original_price,
		NULLIF(TRIM(CAST("Operating System" AS VARCHAR)), '') AS operating_system,
		CAST("Rating" AS DOUBLE) AS rating
	FROM read_csv('%s', header = true, auto_detect = true, nullstr = '')`,
		escapeSQLString(path))

	res, err := db.conn.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to load csv %s: %w", path, err)
	}

	loaded, err := res.RowsAffected()
	if err != nil {
		// Driver could not report the count; fall back to a table scan.
		loaded, err = db.CountListings(ctx)
		if err != nil {
			return 0, err
		}
	}

	logging.Info().Str("path", path).Int64("rows", loaded).Msg("Listings loaded")
	return loaded, nil
}

// validateCSVHeader sniffs the file's header and fails with an error
// naming the first required column that is missing.
func (db *DB) validateCSVHeader(ctx context.Context, path string) error {
	query := fmt.Sprintf(
		`SELECT column_name FROM (DESCRIBE SELECT * FROM read_csv('%s', header = true, auto_detect = true))`,
		escapeSQLString(path))

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to read csv header from %s: %w", path, err)
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan csv header: %w", err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}

	for _, col := range csvColumns {
		if !found[col.Name] {
			return fmt.Errorf("csv file %s is missing required column %q", path, col.Name)
		}
	}

	return nil
}

// escapeSQLString doubles single quotes for safe inlining in SQL text.
func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
