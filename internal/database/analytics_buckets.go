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

// SizeBucketLabels are the four screen-size ranges in ascending order.
// Upper bounds are inclusive; together the buckets cover every size, so
// each listing falls into exactly one.
var SizeBucketLabels = []string{"<=32", "33-43", "44-55", ">55"}

// PriceBucketLabels are the four selling-price ranges in ascending
// order, upper bound inclusive, collectively exhaustive.
var PriceBucketLabels = []string{"<=15000", "15000-30000", "30000-50000", ">50000"}

// GetSizeBuckets aggregates listings into the four fixed screen-size
// ranges: count, average price, and average rating per bucket, rounded
// to 2 decimals, cheapest bucket first.
func (db *DB) GetSizeBuckets(ctx context.Context) ([]models.SizeBucketStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		CASE
			WHEN size_inches <= 32 THEN '<=32'
			WHEN size_inches <= 43 THEN '33-43'
			WHEN size_inches <= 55 THEN '44-55'
			ELSE '>55'
		END AS size_range,
		COUNT(*) AS tv_count,
		ROUND(AVG(selling_price), 2) AS avg_price,
		ROUND(AVG(rating), 2) AS avg_rating
	FROM listings
	GROUP BY size_range
	ORDER BY avg_price ASC`

	scanBucket := func(rows *sql.Rows) (models.SizeBucketStats, error) {
		var b models.SizeBucketStats
		err := rows.Scan(&b.SizeRange, &b.TVCount, &b.AvgPrice, &b.AvgRating)
		return b, err
	}

	buckets, err := queryAndScan(ctx, db.conn, query, nil, scanBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to query size buckets: %w", err)
	}

	return buckets, nil
}

// GetPriceBuckets aggregates listings into the four fixed selling-price
// ranges: count, average rating rounded to 2 decimals, and distinct
// brand count per bucket, largest bucket first.
func (db *DB) GetPriceBuckets(ctx context.Context) ([]models.PriceBucketStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		CASE
			WHEN selling_price <= 15000 THEN '<=15000'
			WHEN selling_price <= 30000 THEN '15000-30000'
			WHEN selling_price <= 50000 THEN '30000-50000'
			ELSE '>50000'
		END AS price_range,
		COUNT(*) AS tv_count,
		ROUND(AVG(rating), 2) AS avg_rating,
		COUNT(DISTINCT brand) AS distinct_brands
	FROM listings
	GROUP BY price_range
	ORDER BY tv_count DESC`

	scanBucket := func(rows *sql.Rows) (models.PriceBucketStats, error) {
		var b models.PriceBucketStats
		err := rows.Scan(&b.PriceRange, &b.TVCount, &b.AvgRating, &b.DistinctBrands)
		return b, err
	}

	buckets, err := queryAndScan(ctx, db.conn, query, nil, scanBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to query price buckets: %w", err)
	}

	return buckets, nil
}
