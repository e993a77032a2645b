// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tvlens/tvlens/internal/logging"
)

// DiscountViewName is the name of the virtual (brand, resolution)
// discount view. The view is re-evaluated on every read; nothing is
// materialized.
const DiscountViewName = "brand_resolution_discounts"

// BrandPriceIndexName is the name of the secondary index on
// (brand, selling_price).
const BrandPriceIndexName = "idx_listings_brand_price"

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core listings table.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	query := `CREATE TABLE IF NOT EXISTS listings (
		listing_id BIGINT PRIMARY KEY,
		brand VARCHAR NOT NULL,
		resolution VARCHAR,
		size_inches DOUBLE,
		selling_price DOUBLE,
		original_price DOUBLE,
		operating_system VARCHAR,
		rating DOUBLE
	);`

	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create listings table: %w", err)
	}

	return nil
}

// createDiscountView defines the brand_resolution_discounts view: one
// row per (brand, resolution) group with model count, average prices,
// and the average absolute discount, all rounded to 2 decimals.
func (db *DB) createDiscountView() error {
	ctx, cancel := schemaContext()
	defer cancel()

	query := `CREATE OR REPLACE VIEW ` + DiscountViewName + ` AS
	SELECT
		brand,
		resolution,
		COUNT(*) AS total_models,
		ROUND(AVG(selling_price), 2) AS avg_selling_price,
		ROUND(AVG(original_price), 2) AS avg_original_price,
		ROUND(AVG(original_price - selling_price), 2) AS avg_discount
	FROM listings
	GROUP BY brand, resolution;`

	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create view %s: %w", DiscountViewName, err)
	}

	return nil
}

// CreateBrandPriceIndex creates the secondary index on
// (brand, selling_price) to accelerate brand-scoped price lookups and
// sorts. Creation is idempotent: re-running against an existing index
// is a benign no-op, never an error and never a data change.
func (db *DB) CreateBrandPriceIndex(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `CREATE INDEX IF NOT EXISTS ` + BrandPriceIndexName + ` ON listings(brand, selling_price);`

	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		// Some engines report an existing index instead of honoring
		// IF NOT EXISTS; treat that as the benign already-exists case.
		if strings.Contains(err.Error(), "already exists") {
			logging.Debug().Str("index", BrandPriceIndexName).Msg("Index already exists")
			return nil
		}
		return fmt.Errorf("failed to create index %s: %w", BrandPriceIndexName, err)
	}

	logging.Debug().Str("index", BrandPriceIndexName).Msg("Index ensured")
	return nil
}
