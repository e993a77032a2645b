// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tvlens/tvlens/internal/logging"
	"github.com/tvlens/tvlens/internal/report"
)

// reportInfo is one entry of the report listing.
type reportInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status   string `json:"status"`
	Listings int64  `json:"listings"`
}

// Health reports service liveness and the loaded row count.
func (router *Router) Health(w http.ResponseWriter, r *http.Request) {
	count, err := router.db.CountListings(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Listings: count})
}

// ListReports returns the report names and titles in canonical order.
func (router *Router) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := router.registry.Reports()
	infos := make([]reportInfo, len(reports))
	for i, rep := range reports {
		infos[i] = reportInfo{Name: rep.Name, Title: rep.Title}
	}

	respondJSON(w, http.StatusOK, infos)
}

// RunReport executes the named report and returns its result.
func (router *Router) RunReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	result, err := router.registry.Run(r.Context(), name)
	if err != nil {
		var unknown *report.ErrUnknownReport
		if errors.As(err, &unknown) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
