// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package report names the analytical reports and runs them by name.
// It is the single dispatch surface shared by the CLI and the HTTP API,
// so both render identical rows.
package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tvlens/tvlens/internal/config"
	"github.com/tvlens/tvlens/internal/database"
	"github.com/tvlens/tvlens/internal/logging"
	"github.com/tvlens/tvlens/internal/metrics"
)

// Result is the tabular outcome of one report run. Data holds the
// typed rows for JSON consumers; Cells holds the same rows formatted
// for text rendering. DDL reports carry a Message and no rows.
type Result struct {
	Name    string      `json:"name"`
	Title   string      `json:"title"`
	Columns []string    `json:"columns,omitempty"`
	Data    interface{} `json:"rows,omitempty"`
	Cells   [][]string  `json:"-"`
	Message string      `json:"message,omitempty"`
}

// Report is a named, runnable analytical query.
type Report struct {
	Name  string
	Title string
	run   func(ctx context.Context) (*Result, error)
}

// ErrUnknownReport is returned by Run for names not in the registry.
type ErrUnknownReport struct {
	Name string
}

func (e *ErrUnknownReport) Error() string {
	return fmt.Sprintf("unknown report %q", e.Name)
}

// Registry holds the ten reports in their canonical order.
type Registry struct {
	db      *database.DB
	policy  config.InvalidRowPolicy
	reports []Report
	byName  map[string]*Report
}

// NewRegistry builds the report registry over the given database.
func NewRegistry(db *database.DB, policy config.InvalidRowPolicy) *Registry {
	r := &Registry{
		db:     db,
		policy: policy,
	}

	r.reports = []Report{
		{
			Name:  "top-rated-budget",
			Title: "Top rated TVs under 20000",
			run:   r.runBudgetPicks,
		},
		{
			Name:  "brand-summary",
			Title: "Brands by average price (more than 5 models)",
			run:   r.runBrandSummaries,
		},
		{
			Name:  "above-brand-average",
			Title: "TVs priced above their brand average",
			run:   r.runPremiumListings,
		},
		{
			Name:  "discount-groups",
			Title: "Average discount per brand and resolution",
			run:   r.runDiscountGroups,
		},
		{
			Name:  "discount-leaders",
			Title: "Discount percentage leaders (rating above 4)",
			run:   r.runDiscountLeaders,
		},
		{
			Name:  "size-buckets",
			Title: "Listings by screen size range",
			run:   r.runSizeBuckets,
		},
		{
			Name:  "os-summary",
			Title: "Listings by operating system",
			run:   r.runOSSummaries,
		},
		{
			Name:  "ensure-brand-price-index",
			Title: "Ensure (brand, selling_price) index",
			run:   r.runEnsureIndex,
		},
		{
			Name:  "price-buckets",
			Title: "Listings by price range",
			run:   r.runPriceBuckets,
		},
		{
			Name:  "best-value",
			Title: "Best price per rating point (top 10)",
			run:   r.runBestValue,
		},
	}

	r.byName = make(map[string]*Report, len(r.reports))
	for i := range r.reports {
		r.byName[r.reports[i].Name] = &r.reports[i]
	}

	return r
}

// Reports returns the reports in canonical order.
func (r *Registry) Reports() []Report {
	return r.reports
}

// Names returns the report names in canonical order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.reports))
	for i, rep := range r.reports {
		names[i] = rep.Name
	}
	return names
}

// Run executes the named report and records its metrics.
func (r *Registry) Run(ctx context.Context, name string) (*Result, error) {
	rep, ok := r.byName[name]
	if !ok {
		return nil, &ErrUnknownReport{Name: name}
	}

	start := time.Now()
	result, err := rep.run(ctx)
	elapsed := time.Since(start)
	metrics.RecordReport(name, elapsed, err)

	if err != nil {
		logging.Error().Str("report", name).Err(err).Msg("Report failed")
		return nil, err
	}

	logging.Debug().Str("report", name).Dur("elapsed", elapsed).Msg("Report executed")
	return result, nil
}

func (r *Registry) runBudgetPicks(ctx context.Context) (*Result, error) {
	picks, err := r.db.GetBudgetPicks(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(picks))
	for i, p := range picks {
		cells[i] = []string{p.Brand, p.Resolution, fmtFloat(p.SizeInches), fmtFloat(p.SellingPrice), fmtFloat(p.Rating)}
	}

	return &Result{
		Name:    "top-rated-budget",
		Title:   "Top rated TVs under 20000",
		Columns: []string{"brand", "resolution", "size_inches", "selling_price", "rating"},
		Data:    picks,
		Cells:   cells,
	}, nil
}

func (r *Registry) runBrandSummaries(ctx context.Context) (*Result, error) {
	summaries, err := r.db.GetBrandSummaries(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(summaries))
	for i, s := range summaries {
		cells[i] = []string{s.Brand, fmtInt(s.TotalModels), fmtFloat(s.AvgPrice), fmtFloat(s.AvgRating)}
	}

	return &Result{
		Name:    "brand-summary",
		Title:   "Brands by average price (more than 5 models)",
		Columns: []string{"brand", "total_models", "avg_price", "avg_rating"},
		Data:    summaries,
		Cells:   cells,
	}, nil
}

func (r *Registry) runPremiumListings(ctx context.Context) (*Result, error) {
	listings, err := r.db.GetPremiumListings(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(listings))
	for i, p := range listings {
		cells[i] = []string{p.Brand, p.Resolution, fmtFloat(p.SizeInches), fmtFloat(p.SellingPrice), fmtFloat(p.BrandAvgPrice)}
	}

	return &Result{
		Name:    "above-brand-average",
		Title:   "TVs priced above their brand average",
		Columns: []string{"brand", "resolution", "size_inches", "selling_price", "brand_avg_price"},
		Data:    listings,
		Cells:   cells,
	}, nil
}

func (r *Registry) runDiscountGroups(ctx context.Context) (*Result, error) {
	groups, err := r.db.GetDiscountGroups(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(groups))
	for i, g := range groups {
		cells[i] = []string{g.Brand, g.Resolution, fmtInt(g.TotalModels),
			fmtFloat(g.AvgSellingPrice), fmtFloat(g.AvgOriginalPrice), fmtFloat(g.AvgDiscount)}
	}

	return &Result{
		Name:    "discount-groups",
		Title:   "Average discount per brand and resolution",
		Columns: []string{"brand", "resolution", "total_models", "avg_selling_price", "avg_original_price", "avg_discount"},
		Data:    groups,
		Cells:   cells,
	}, nil
}

func (r *Registry) runDiscountLeaders(ctx context.Context) (*Result, error) {
	leaders, err := r.db.GetDiscountLeaders(ctx, r.policy)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(leaders))
	for i, l := range leaders {
		cells[i] = []string{l.Brand, l.Resolution, fmtInt(l.TotalModels),
			fmtFloat(l.AvgSellingPrice), fmtFloat(l.AvgOriginalPrice), fmtFloatPtr(l.DiscountPercentage)}
	}

	return &Result{
		Name:    "discount-leaders",
		Title:   "Discount percentage leaders (rating above 4)",
		Columns: []string{"brand", "resolution", "total_models", "avg_selling_price", "avg_original_price", "discount_percentage"},
		Data:    leaders,
		Cells:   cells,
	}, nil
}

func (r *Registry) runSizeBuckets(ctx context.Context) (*Result, error) {
	buckets, err := r.db.GetSizeBuckets(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(buckets))
	for i, b := range buckets {
		cells[i] = []string{b.SizeRange, fmtInt(b.TVCount), fmtFloat(b.AvgPrice), fmtFloat(b.AvgRating)}
	}

	return &Result{
		Name:    "size-buckets",
		Title:   "Listings by screen size range",
		Columns: []string{"size_range", "tv_count", "avg_price", "avg_rating"},
		Data:    buckets,
		Cells:   cells,
	}, nil
}

func (r *Registry) runOSSummaries(ctx context.Context) (*Result, error) {
	summaries, err := r.db.GetOperatingSystemSummaries(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(summaries))
	for i, s := range summaries {
		cells[i] = []string{s.OperatingSystem, fmtInt(s.TVCount), fmtFloat(s.AvgPrice),
			fmtFloat(s.AvgRating), fmtInt(s.DistinctBrands)}
	}

	return &Result{
		Name:    "os-summary",
		Title:   "Listings by operating system",
		Columns: []string{"operating_system", "tv_count", "avg_price", "avg_rating", "distinct_brands"},
		Data:    summaries,
		Cells:   cells,
	}, nil
}

func (r *Registry) runEnsureIndex(ctx context.Context) (*Result, error) {
	if err := r.db.CreateBrandPriceIndex(ctx); err != nil {
		return nil, err
	}

	return &Result{
		Name:    "ensure-brand-price-index",
		Title:   "Ensure (brand, selling_price) index",
		Message: fmt.Sprintf("index %s is in place", database.BrandPriceIndexName),
	}, nil
}

func (r *Registry) runPriceBuckets(ctx context.Context) (*Result, error) {
	buckets, err := r.db.GetPriceBuckets(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(buckets))
	for i, b := range buckets {
		cells[i] = []string{b.PriceRange, fmtInt(b.TVCount), fmtFloat(b.AvgRating), fmtInt(b.DistinctBrands)}
	}

	return &Result{
		Name:    "price-buckets",
		Title:   "Listings by price range",
		Columns: []string{"price_range", "tv_count", "avg_rating", "distinct_brands"},
		Data:    buckets,
		Cells:   cells,
	}, nil
}

func (r *Registry) runBestValue(ctx context.Context) (*Result, error) {
	picks, err := r.db.GetBestValue(ctx, r.policy)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(picks))
	for i, v := range picks {
		cells[i] = []string{strconv.FormatInt(v.ListingID, 10), v.Brand, v.Resolution,
			fmtFloat(v.SellingPrice), fmtFloat(v.Rating), fmtFloat(v.ValueRatio)}
	}

	return &Result{
		Name:    "best-value",
		Title:   "Best price per rating point (top 10)",
		Columns: []string{"listing_id", "brand", "resolution", "selling_price", "rating", "value_ratio"},
		Data:    picks,
		Cells:   cells,
	}, nil
}

// fmtFloat renders a numeric cell with two decimals, matching the SQL
// rounding convention.
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func fmtInt(n int) string {
	return strconv.Itoa(n)
}

func fmtFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return fmtFloat(*f)
}
