// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package models defines the listing record and the result row types
// returned by the analytical reports.
package models

// Listing is one television product row as loaded from the CSV.
// OperatingSystem is nil when the source field is empty.
type Listing struct {
	ListingID       int64    `json:"listing_id"`
	Brand           string   `json:"brand"`
	Resolution      string   `json:"resolution"`
	SizeInches      float64  `json:"size_inches"`
	SellingPrice    float64  `json:"selling_price"`
	OriginalPrice   float64  `json:"original_price"`
	OperatingSystem *string  `json:"operating_system"`
	Rating          *float64 `json:"rating"`
}
