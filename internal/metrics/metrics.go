// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package metrics provides Prometheus instrumentation for tvlens:
// report execution counts and latency, dataset size, and HTTP request
// metrics. Metrics are exposed at /metrics in Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportDuration tracks report execution time per report name.
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvlens_report_duration_seconds",
			Help:    "Duration of report executions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	// ReportErrors counts failed report executions per report name.
	ReportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvlens_report_errors_total",
			Help: "Total number of failed report executions",
		},
		[]string{"report"},
	)

	// ListingsLoaded reports the number of rows loaded from the CSV.
	ListingsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tvlens_listings_loaded",
			Help: "Number of listings currently loaded",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvlens_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "path"},
	)
)

// RecordReport records one report execution.
func RecordReport(name string, duration time.Duration, err error) {
	ReportDuration.WithLabelValues(name).Observe(duration.Seconds())
	if err != nil {
		ReportErrors.WithLabelValues(name).Inc()
	}
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
