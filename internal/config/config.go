// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package config

import (
	"time"

	"github.com/tomtom215/vibematch/internal/recommend"
)

// Config holds all process configuration.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Model    ModelConfig    `koanf:"model"`
	Limits   LimitsConfig   `koanf:"limits"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig locates the track catalog.
type CatalogConfig struct {
	// Path is the catalog file.
	Path string `koanf:"path"`

	// Format selects the loader: csv (built-in reader) or duckdb (CSV,
	// Parquet or JSON through DuckDB).
	// Default: csv
	Format string `koanf:"format"`

	// Features lists the feature columns in order.
	Features []string `koanf:"features"`
}

// ModelConfig holds clustering and neighbor index parameters.
type ModelConfig struct {
	Clusters  int `koanf:"clusters"`
	Neighbors int `koanf:"neighbors"`

	// Seed drives k-means seeding. Zero selects the fixed default.
	Seed int64 `koanf:"seed"`

	// SampleSeed drives cluster and mood sampling.
	SampleSeed int64 `koanf:"sample_seed"`

	Inits         int     `koanf:"inits"`
	MaxIterations int     `koanf:"max_iterations"`
	Tolerance     float64 `koanf:"tolerance"`

	// Workers bounds parallel k-means restarts. Zero uses GOMAXPROCS.
	Workers int `koanf:"workers"`
}

// LimitsConfig bounds query sizes.
type LimitsConfig struct {
	DefaultK         int `koanf:"default_k"`
	MaxK             int `koanf:"max_k"`
	MaxSearchResults int `koanf:"max_search_results"`
	PoolFloor        int `koanf:"pool_floor"`
	PoolHeadroom     int `koanf:"pool_headroom"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CacheSize bounds the track recommendation cache. 0 disables it.
	CacheSize int `koanf:"cache_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes file and line in every entry.
	Caller bool `koanf:"caller"`
}

// EngineConfig projects the model, limits and catalog sections onto the
// recommendation engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	ec := recommend.DefaultConfig()
	if len(c.Catalog.Features) > 0 {
		ec.Features = append([]string(nil), c.Catalog.Features...)
	}
	ec.Clusters = c.Model.Clusters
	ec.Neighbors = c.Model.Neighbors
	ec.Seed = c.Model.Seed
	ec.SampleSeed = c.Model.SampleSeed
	ec.KMeans = recommend.KMeansConfig{
		Inits:         c.Model.Inits,
		MaxIterations: c.Model.MaxIterations,
		Tolerance:     c.Model.Tolerance,
		Workers:       c.Model.Workers,
	}
	ec.Pool = recommend.PoolConfig{
		Floor:    c.Limits.PoolFloor,
		Headroom: c.Limits.PoolHeadroom,
	}
	ec.Limits = recommend.LimitsConfig{
		DefaultK:         c.Limits.DefaultK,
		MaxK:             c.Limits.MaxK,
		MaxSearchResults: c.Limits.MaxSearchResults,
	}
	return ec
}
