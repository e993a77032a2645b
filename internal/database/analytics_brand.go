// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tvlens/tvlens/internal/models"
)

// BrandSummaryMinModels is the exclusive lower bound on models per
// brand for the brand summary; brands with fewer or equal models are
// dropped from the result.
const BrandSummaryMinModels = 5

// GetBrandSummaries aggregates listings per brand: model count and
// average price and rating rounded to 2 decimals. Brands with 5 or
// fewer models are excluded; priciest brands first.
func (db *DB) GetBrandSummaries(ctx context.Context) ([]models.BrandSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		brand,
		COUNT(*) AS total_models,
		ROUND(AVG(selling_price), 2) AS avg_price,
		ROUND(AVG(rating), 2) AS avg_rating
	FROM listings
	GROUP BY brand
	HAVING COUNT(*) > ?
	ORDER BY avg_price DESC`

	scanSummary := func(rows *sql.Rows) (models.BrandSummary, error) {
		var s models.BrandSummary
		err := rows.Scan(&s.Brand, &s.TotalModels, &s.AvgPrice, &s.AvgRating)
		return s, err
	}

	summaries, err := queryAndScan(ctx, db.conn, query,
		[]interface{}{BrandSummaryMinModels}, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand summaries: %w", err)
	}

	return summaries, nil
}

// GetOperatingSystemSummaries aggregates listings per operating system:
// model count, average price and rating, and the number of distinct
// brands shipping that OS. Rows without an operating system are
// excluded. Most common OS first.
func (db *DB) GetOperatingSystemSummaries(ctx context.Context) ([]models.OSSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		operating_system,
		COUNT(*) AS tv_count,
		ROUND(AVG(selling_price), 2) AS avg_price,
		ROUND(AVG(rating), 2) AS avg_rating,
		COUNT(DISTINCT brand) AS distinct_brands
	FROM listings
	WHERE operating_system IS NOT NULL
	GROUP BY operating_system
	ORDER BY tv_count DESC`

	scanSummary := func(rows *sql.Rows) (models.OSSummary, error) {
		var s models.OSSummary
		err := rows.Scan(&s.OperatingSystem, &s.TVCount, &s.AvgPrice, &s.AvgRating, &s.DistinctBrands)
		return s, err
	}

	summaries, err := queryAndScan(ctx, db.conn, query, nil, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to query operating system summaries: %w", err)
	}

	return summaries, nil
}
