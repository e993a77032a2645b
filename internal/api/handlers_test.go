// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tvlens/tvlens/internal/config"
	"github.com/tvlens/tvlens/internal/database"
	"github.com/tvlens/tvlens/internal/report"
)

const testCSV = `Brand,Resolution,Size,Selling Price,Original Price,Operating System,Rating
LumenTech,4K,55,42000,50000,Android,4.6
LumenTech,FHD,40,18000,22000,WebOS,4.7
Visara,4K,65,65000,72000,Tizen,4.8
Visara,HD,32,12000,15000,Roku,4.6
Pixelon,FHD,40,16000,20000,Roku,4.9
`

// setupHandler builds the full HTTP handler over an in-memory database
// loaded with the test catalog.
func setupHandler(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	path := filepath.Join(t.TempDir(), "listings.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	if _, err := db.LoadCSV(context.Background(), path); err != nil {
		t.Fatalf("failed to load csv: %v", err)
	}

	registry := report.NewRegistry(db, config.PolicyExclude)
	return NewRouter(registry, db).Setup()
}

func doGet(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := setupHandler(t)

	rec := doGet(t, handler, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var health healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status ok, got %q", health.Status)
	}
	if health.Listings != 5 {
		t.Errorf("expected 5 listings, got %d", health.Listings)
	}
}

func TestListReports(t *testing.T) {
	handler := setupHandler(t)

	rec := doGet(t, handler, "/api/v1/reports")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var infos []reportInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("failed to decode report list: %v", err)
	}
	if len(infos) != 10 {
		t.Fatalf("expected 10 reports, got %d", len(infos))
	}
	if infos[0].Name != "top-rated-budget" {
		t.Errorf("expected top-rated-budget first, got %q", infos[0].Name)
	}
	for _, info := range infos {
		if info.Title == "" {
			t.Errorf("report %q has no title", info.Name)
		}
	}
}

func TestRunReport(t *testing.T) {
	handler := setupHandler(t)

	rec := doGet(t, handler, "/api/v1/reports/brand-summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var result struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode report result: %v", err)
	}
	if result.Name != "brand-summary" {
		t.Errorf("expected name brand-summary, got %q", result.Name)
	}
	if len(result.Columns) == 0 {
		t.Error("expected column list in result")
	}
}

func TestRunReportSameRowsTwice(t *testing.T) {
	handler := setupHandler(t)

	first := doGet(t, handler, "/api/v1/reports/discount-groups")
	second := doGet(t, handler, "/api/v1/reports/discount-groups")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("view-backed report returned different rows on consecutive reads")
	}
}

func TestRunUnknownReport(t *testing.T) {
	handler := setupHandler(t)

	rec := doGet(t, handler, "/api/v1/reports/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := setupHandler(t)

	rec := doGet(t, handler, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
