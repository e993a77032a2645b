// tvlens - Television Listings Analytics
// Copyright 2026 tvlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tvlens/tvlens

// Package config loads and validates tvlens configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables with the TVLENS_ prefix
//     (TVLENS_DATABASE_PATH -> database.path)
package config

import (
	"fmt"
	"strings"
	"time"
)

// InvalidRowPolicy controls how reports treat rows that violate the
// analytical assumptions of the dataset: a negative discount
// (original_price < selling_price) or a rating that cannot serve as a
// divisor (NULL or <= 0).
type InvalidRowPolicy string

const (
	// PolicyExclude drops offending rows from the affected computation.
	PolicyExclude InvalidRowPolicy = "exclude"

	// PolicyClamp floors negative discounts at zero. Rows with a
	// non-positive rating divisor are still excluded; there is no
	// meaningful clamp for a zero divisor.
	PolicyClamp InvalidRowPolicy = "clamp"

	// PolicyError fails the report with an error identifying how many
	// rows violate the assumption.
	PolicyError InvalidRowPolicy = "error"
)

// Valid reports whether p is a recognized policy.
func (p InvalidRowPolicy) Valid() bool {
	switch p {
	case PolicyExclude, PolicyClamp, PolicyError:
		return true
	}
	return false
}

// Config is the root configuration for tvlens.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig describes the source CSV of television listings.
type DatasetConfig struct {
	// CSVPath is the path to the listings CSV file.
	CSVPath string `koanf:"csv_path"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" opens an in-memory
	// database that lives only for the process.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads sets the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// AnalyticsConfig holds report behavior settings.
type AnalyticsConfig struct {
	InvalidRowPolicy InvalidRowPolicy `koanf:"invalid_row_policy"`
}

// ServerConfig holds HTTP report API settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			CSVPath: "Ecommerce.csv",
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Analytics: AnalyticsConfig{
			InvalidRowPolicy: PolicyExclude,
		},
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    8414,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values that cannot work at
// runtime. It fails fast with an error naming the offending key.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	if !c.Analytics.InvalidRowPolicy.Valid() {
		return fmt.Errorf("analytics.invalid_row_policy must be one of exclude, clamp, error; got %q",
			c.Analytics.InvalidRowPolicy)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
