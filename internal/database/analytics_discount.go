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

// DiscountMinRating and DiscountGroupMinModels bound the discount
// percentage report: only rows rated above the threshold count, and
// groups with 3 or fewer models are dropped.
const (
	DiscountMinRating      = 4.0
	DiscountGroupMinModels = 3
)

// GetDiscountGroups reads the brand_resolution_discounts view. The view
// is virtual: every call re-evaluates it against the current table, so
// two reads without an intervening load return identical rows.
func (db *DB) GetDiscountGroups(ctx context.Context) ([]models.DiscountGroup, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
	SELECT brand, resolution, total_models, avg_selling_price, avg_original_price, avg_discount
	FROM ` + DiscountViewName + `
	ORDER BY brand, resolution`

	scanGroup := func(rows *sql.Rows) (models.DiscountGroup, error) {
		var g models.DiscountGroup
		err := rows.Scan(&g.Brand, &g.Resolution, &g.TotalModels,
			&g.AvgSellingPrice, &g.AvgOriginalPrice, &g.AvgDiscount)
		return g, err
	}

	groups, err := queryAndScan(ctx, db.conn, query, nil, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", DiscountViewName, err)
	}

	return groups, nil
}

// GetDiscountLeaders ranks (brand, resolution) groups of well-rated
// listings by discount percentage:
//
//	(AVG(original) - AVG(selling)) / AVG(original) * 100
//
// The divisor is NULLIF-guarded; a group whose average original price
// is zero yields a nil DiscountPercentage rather than a division error.
//
// The policy controls rows that violate the selling <= original
// invariant: PolicyExclude drops them (and zero-priced originals) before
// aggregating, PolicyClamp floors each row's discount at zero by
// substituting GREATEST(original, selling) for the original price, and
// PolicyError fails the report when any such row exists.
func (db *DB) GetDiscountLeaders(ctx context.Context, policy config.InvalidRowPolicy) ([]models.DiscountLeader, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rowFilter := "rating > ?"
	originalExpr := "original_price"

	switch policy {
	case config.PolicyExclude:
		rowFilter += " AND original_price >= selling_price AND original_price > 0"
	case config.PolicyClamp:
		originalExpr = "GREATEST(original_price, selling_price)"
	case config.PolicyError:
		if err := db.failOnNegativeDiscounts(ctx); err != nil {
			return nil, err
		}
	}

	query := fmt.Sprintf(`
	SELECT
		brand,
		resolution,
		COUNT(*) AS total_models,
		ROUND(AVG(selling_price), 2) AS avg_selling_price,
		ROUND(AVG(%[1]s), 2) AS avg_original_price,
		ROUND((AVG(%[1]s) - AVG(selling_price)) / NULLIF(AVG(%[1]s), 0) * 100, 2) AS discount_percentage
	FROM listings
	WHERE %[2]s
	GROUP BY brand, resolution
	HAVING COUNT(*) > ?
	ORDER BY discount_percentage DESC NULLS LAST, brand, resolution`, originalExpr, rowFilter)

	scanLeader := func(rows *sql.Rows) (models.DiscountLeader, error) {
		var l models.DiscountLeader
		err := rows.Scan(&l.Brand, &l.Resolution, &l.TotalModels,
			&l.AvgSellingPrice, &l.AvgOriginalPrice, &l.DiscountPercentage)
		return l, err
	}

	leaders, err := queryAndScan(ctx, db.conn, query,
		[]interface{}{DiscountMinRating, DiscountGroupMinModels}, scanLeader)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount leaders: %w", err)
	}

	return leaders, nil
}

// failOnNegativeDiscounts errors when any row breaks the discount
// assumptions: an original price below the selling price or a
// non-positive original price.
func (db *DB) failOnNegativeDiscounts(ctx context.Context) error {
	var bad int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM listings WHERE original_price < selling_price OR original_price <= 0`).Scan(&bad)
	if err != nil {
		return fmt.Errorf("failed to check discount invariant: %w", err)
	}
	if bad > 0 {
		return fmt.Errorf("%d listing(s) have original_price < selling_price or original_price <= 0; rejected by invalid_row_policy=error", bad)
	}
	return nil
}
