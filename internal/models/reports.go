// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package models

// BudgetPick is a highly rated listing under the budget price threshold.
type BudgetPick struct {
	Brand        string  `json:"brand"`
	Resolution   string  `json:"resolution"`
	SizeInches   float64 `json:"size_inches"`
	SellingPrice float64 `json:"selling_price"`
	Rating       float64 `json:"rating"`
}

// BrandSummary aggregates listings per brand.
type BrandSummary struct {
	Brand       string  `json:"brand"`
	TotalModels int     `json:"total_models"`
	AvgPrice    float64 `json:"avg_price"`
	AvgRating   float64 `json:"avg_rating"`
}

// PremiumListing is a listing priced above its own brand's average
// selling price. BrandAvgPrice carries the comparison value.
type PremiumListing struct {
	Brand         string  `json:"brand"`
	Resolution    string  `json:"resolution"`
	SizeInches    float64 `json:"size_inches"`
	SellingPrice  float64 `json:"selling_price"`
	BrandAvgPrice float64 `json:"brand_avg_price"`
}

// DiscountGroup is one (brand, resolution) row of the
// brand_resolution_discounts view.
type DiscountGroup struct {
	Brand            string  `json:"brand"`
	Resolution       string  `json:"resolution"`
	TotalModels      int     `json:"total_models"`
	AvgSellingPrice  float64 `json:"avg_selling_price"`
	AvgOriginalPrice float64 `json:"avg_original_price"`
	AvgDiscount      float64 `json:"avg_discount"`
}

// DiscountLeader is a (brand, resolution) group ranked by its discount
// percentage. DiscountPercentage is nil when the group's average
// original price is zero and the policy does not exclude it.
type DiscountLeader struct {
	Brand              string   `json:"brand"`
	Resolution         string   `json:"resolution"`
	TotalModels        int      `json:"total_models"`
	AvgSellingPrice    float64  `json:"avg_selling_price"`
	AvgOriginalPrice   float64  `json:"avg_original_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

// SizeBucketStats aggregates listings per screen-size range.
type SizeBucketStats struct {
	SizeRange string  `json:"size_range"`
	TVCount   int     `json:"tv_count"`
	AvgPrice  float64 `json:"avg_price"`
	AvgRating float64 `json:"avg_rating"`
}

// OSSummary aggregates listings per operating system.
type OSSummary struct {
	OperatingSystem string  `json:"operating_system"`
	TVCount         int     `json:"tv_count"`
	AvgPrice        float64 `json:"avg_price"`
	AvgRating       float64 `json:"avg_rating"`
	DistinctBrands  int     `json:"distinct_brands"`
}

// PriceBucketStats aggregates listings per selling-price range.
type PriceBucketStats struct {
	PriceRange     string  `json:"price_range"`
	TVCount        int     `json:"tv_count"`
	AvgRating      float64 `json:"avg_rating"`
	DistinctBrands int     `json:"distinct_brands"`
}

// ValuePick is a listing ranked by price paid per rating point.
// Lower ValueRatio is better.
type ValuePick struct {
	ListingID    int64   `json:"listing_id"`
	Brand        string  `json:"brand"`
	Resolution   string  `json:"resolution"`
	SellingPrice float64 `json:"selling_price"`
	Rating       float64 `json:"rating"`
	ValueRatio   float64 `json:"value_ratio"`
}
