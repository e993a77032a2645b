// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tvlens/tvlens/internal/config"
	"github.com/tvlens/tvlens/internal/models"
)

// BudgetPriceCeiling and BudgetMinRating bound the budget picks report.
const (
	BudgetPriceCeiling = 20000.0
	BudgetMinRating    = 4.5
)

// ValueMinRating bounds the value ranking report; it also keeps the
// rating divisor strictly positive.
const ValueMinRating = 4.0

// ValueRankingLimit is the number of rows the value ranking returns.
const ValueRankingLimit = 10

// GetBudgetPicks returns listings priced under the budget ceiling with
// a rating above the threshold, best rated first. Rating ties resolve
// by listing_id for a stable result.
func (db *DB) GetBudgetPicks(ctx context.Context) ([]models.BudgetPick, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT brand, resolution, size_inches, selling_price, rating
	FROM listings
	WHERE selling_price < ? AND rating > ?
	ORDER BY rating DESC, listing_id`

	scanPick := func(rows *sql.Rows) (models.BudgetPick, error) {
		var p models.BudgetPick
		err := rows.Scan(&p.Brand, &p.Resolution, &p.SizeInches, &p.SellingPrice, &p.Rating)
		return p, err
	}

	picks, err := queryAndScan(ctx, db.conn, query,
		[]interface{}{BudgetPriceCeiling, BudgetMinRating}, scanPick)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget picks: %w", err)
	}

	return picks, nil
}

// GetPremiumListings returns listings whose selling price strictly
// exceeds the average selling price of their own brand, ordered by
// brand then ascending price.
func (db *DB) GetPremiumListings(ctx context.Context) ([]models.PremiumListing, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		l.brand,
		l.resolution,
		l.size_inches,
		l.selling_price,
		ROUND((SELECT AVG(b.selling_price) FROM listings b WHERE b.brand = l.brand), 2) AS brand_avg_price
	FROM listings l
	WHERE l.selling_price > (SELECT AVG(b.selling_price) FROM listings b WHERE b.brand = l.brand)
	ORDER BY l.brand, l.selling_price ASC`

	scanListing := func(rows *sql.Rows) (models.PremiumListing, error) {
		var p models.PremiumListing
		err := rows.Scan(&p.Brand, &p.Resolution, &p.SizeInches, &p.SellingPrice, &p.BrandAvgPrice)
		return p, err
	}

	listings, err := queryAndScan(ctx, db.conn, query, nil, scanListing)
	if err != nil {
		return nil, fmt.Errorf("failed to query premium listings: %w", err)
	}

	return listings, nil
}

// GetBestValue returns the top listings by ascending price paid per
// rating point, at most ValueRankingLimit rows. Ties resolve by
// listing_id ascending, i.e. stable source row order.
//
// Rating is a divisor here. The rating > 4 filter already excludes
// NULL and non-positive ratings from the ranking; under PolicyError the
// presence of any such row in the table fails the report instead.
func (db *DB) GetBestValue(ctx context.Context, policy config.InvalidRowPolicy) ([]models.ValuePick, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if policy == config.PolicyError {
		if err := db.failOnUnratedRows(ctx); err != nil {
			return nil, err
		}
	}

	query := `
	SELECT listing_id, brand, resolution, selling_price, rating,
		ROUND(selling_price / rating, 2) AS value_ratio
	FROM listings
	WHERE rating > ?
	ORDER BY value_ratio ASC, listing_id ASC
	LIMIT ?`

	scanPick := func(rows *sql.Rows) (models.ValuePick, error) {
		var v models.ValuePick
		err := rows.Scan(&v.ListingID, &v.Brand, &v.Resolution, &v.SellingPrice, &v.Rating, &v.ValueRatio)
		return v, err
	}

	picks, err := queryAndScan(ctx, db.conn, query,
		[]interface{}{ValueMinRating, ValueRankingLimit}, scanPick)
	if err != nil {
		return nil, fmt.Errorf("failed to query best value listings: %w", err)
	}

	return picks, nil
}

// failOnUnratedRows errors when any row carries a rating unusable as a
// divisor (NULL or <= 0).
func (db *DB) failOnUnratedRows(ctx context.Context) error {
	var bad int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM listings WHERE rating IS NULL OR rating <= 0`).Scan(&bad)
	if err != nil {
		return fmt.Errorf("failed to check rating divisors: %w", err)
	}
	if bad > 0 {
		return fmt.Errorf("%d listing(s) have a NULL or non-positive rating; rejected by invalid_row_policy=error", bad)
	}
	return nil
}
