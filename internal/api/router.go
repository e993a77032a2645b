// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package api exposes the reports over a read-only HTTP interface:
// execute a named report, receive its rows as JSON.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tvlens/tvlens/internal/database"
	"github.com/tvlens/tvlens/internal/report"
)

// Router wires the report registry into HTTP handlers.
type Router struct {
	registry *report.Registry
	db       *database.DB
}

// NewRouter creates a Router over the given registry and database.
func NewRouter(registry *report.Registry, db *database.DB) *Router {
	return &Router{
		registry: registry,
		db:       db,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", router.Health)
		r.Get("/reports", router.ListReports)
		r.Get("/reports/{name}", router.RunReport)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
