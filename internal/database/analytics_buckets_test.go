// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package database

import (
	"context"
	"testing"

	"github.com/tvlens/tvlens/internal/models"
)

func TestGetSizeBuckets(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	buckets, err := db.GetSizeBuckets(context.Background())
	if err != nil {
		t.Fatalf("GetSizeBuckets failed: %v", err)
	}

	counts := map[string]int{}
	for _, b := range buckets {
		counts[b.SizeRange] = b.TVCount
	}

	want := map[string]int{"<=32": 4, "33-43": 5, "44-55": 3, ">55": 1}
	for label, n := range want {
		if counts[label] != n {
			t.Errorf("bucket %q: got %d, want %d", label, counts[label], n)
		}
	}

	// Sorted by average price ascending.
	for i := 1; i < len(buckets); i++ {
		if buckets[i].AvgPrice < buckets[i-1].AvgPrice {
			t.Errorf("buckets not sorted by avg price asc: %.2f after %.2f",
				buckets[i].AvgPrice, buckets[i-1].AvgPrice)
		}
	}
}

// TestSizeBucketsScenario checks the two-row scenario bucket
// placement: size 30 lands in <=32, size 50 in 44-55.
func TestSizeBucketsScenario(t *testing.T) {
	db := setupTestDB(t)
	insertListings(t, db, []models.Listing{
		{Brand: "A", Resolution: "FHD", SizeInches: 30, SellingPrice: 10000, OriginalPrice: 12000, Rating: f64Ptr(4.8)},
		{Brand: "A", Resolution: "4K", SizeInches: 50, SellingPrice: 25000, OriginalPrice: 25000, Rating: f64Ptr(4.2)},
	})

	buckets, err := db.GetSizeBuckets(context.Background())
	if err != nil {
		t.Fatalf("GetSizeBuckets failed: %v", err)
	}

	counts := map[string]int{}
	for _, b := range buckets {
		counts[b.SizeRange] = b.TVCount
	}
	if counts["<=32"] != 1 {
		t.Errorf("expected size 30 in <=32, got counts %v", counts)
	}
	if counts["44-55"] != 1 {
		t.Errorf("expected size 50 in 44-55, got counts %v", counts)
	}
}

// TestBucketsPartitionTable checks both bucketings are mutually
// exclusive and collectively exhaustive: per-bucket counts sum to the
// table row count, including boundary values sitting exactly on the
// inclusive upper bounds.
func TestBucketsPartitionTable(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	insertListings(t, db, []models.Listing{
		{ListingID: 201, Brand: "Edge", Resolution: "HD", SizeInches: 32, SellingPrice: 15000, OriginalPrice: 16000, Rating: f64Ptr(4.0)},
		{ListingID: 202, Brand: "Edge", Resolution: "FHD", SizeInches: 43, SellingPrice: 30000, OriginalPrice: 31000, Rating: f64Ptr(4.0)},
		{ListingID: 203, Brand: "Edge", Resolution: "4K", SizeInches: 55, SellingPrice: 50000, OriginalPrice: 51000, Rating: f64Ptr(4.0)},
		{ListingID: 204, Brand: "Edge", Resolution: "8K", SizeInches: 56, SellingPrice: 50001, OriginalPrice: 52000, Rating: f64Ptr(4.0)},
	})

	total, err := db.CountListings(context.Background())
	if err != nil {
		t.Fatalf("CountListings failed: %v", err)
	}

	sizeBuckets, err := db.GetSizeBuckets(context.Background())
	if err != nil {
		t.Fatalf("GetSizeBuckets failed: %v", err)
	}
	var sizeSum int64
	seenSize := map[string]bool{}
	for _, b := range sizeBuckets {
		if seenSize[b.SizeRange] {
			t.Errorf("size bucket %q appears twice", b.SizeRange)
		}
		seenSize[b.SizeRange] = true
		sizeSum += int64(b.TVCount)
	}
	if sizeSum != total {
		t.Errorf("size bucket counts sum to %d, table has %d rows", sizeSum, total)
	}

	priceBuckets, err := db.GetPriceBuckets(context.Background())
	if err != nil {
		t.Fatalf("GetPriceBuckets failed: %v", err)
	}
	var priceSum int64
	seenPrice := map[string]bool{}
	for _, b := range priceBuckets {
		if seenPrice[b.PriceRange] {
			t.Errorf("price bucket %q appears twice", b.PriceRange)
		}
		seenPrice[b.PriceRange] = true
		priceSum += int64(b.TVCount)
	}
	if priceSum != total {
		t.Errorf("price bucket counts sum to %d, table has %d rows", priceSum, total)
	}
}

func TestGetPriceBuckets(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	buckets, err := db.GetPriceBuckets(context.Background())
	if err != nil {
		t.Fatalf("GetPriceBuckets failed: %v", err)
	}

	counts := map[string]int{}
	brands := map[string]int{}
	for _, b := range buckets {
		counts[b.PriceRange] = b.TVCount
		brands[b.PriceRange] = b.DistinctBrands
	}

	want := map[string]int{"<=15000": 4, "15000-30000": 5, "30000-50000": 3, ">50000": 1}
	for label, n := range want {
		if counts[label] != n {
			t.Errorf("bucket %q: got %d, want %d", label, counts[label], n)
		}
	}

	// <=15000 holds LumenTech, Visara, and Pixelon models.
	if brands["<=15000"] != 3 {
		t.Errorf("expected 3 distinct brands in <=15000, got %d", brands["<=15000"])
	}

	// Sorted by count descending.
	for i := 1; i < len(buckets); i++ {
		if buckets[i].TVCount > buckets[i-1].TVCount {
			t.Errorf("buckets not sorted by count desc: %d after %d",
				buckets[i].TVCount, buckets[i-1].TVCount)
		}
	}
}
