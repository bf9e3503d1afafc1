// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vibematch/config.yaml",
	"/etc/vibematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"catalog_path":     "catalog.path",
	"catalog_format":   "catalog.format",
	"catalog_features": "catalog.features",

	"model_clusters":       "model.clusters",
	"model_neighbors":      "model.neighbors",
	"model_seed":           "model.seed",
	"model_sample_seed":    "model.sample_seed",
	"model_inits":          "model.inits",
	"model_max_iterations": "model.max_iterations",
	"model_tolerance":      "model.tolerance",
	"model_workers":        "model.workers",

	"limits_default_k":     "limits.default_k",
	"limits_max_k":         "limits.max_k",
	"limits_max_search":    "limits.max_search_results",
	"limits_pool_floor":    "limits.pool_floor",
	"limits_pool_headroom": "limits.pool_headroom",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_cache_size":       "server.cache_size",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// sliceConfigPaths are split on commas when set from the environment.
var sliceConfigPaths = []string{
	"catalog.features",
	"security.cors_origins",
}

// defaultConfig returns the built-in defaults. Engine values mirror
// recommend.DefaultConfig.
func defaultConfig() *Config {
	ec := recommend.DefaultConfig()
	return &Config{
		Catalog: CatalogConfig{
			Path:     "data/tracks.csv",
			Format:   catalog.FormatCSV,
			Features: catalog.DefaultFeatures(),
		},
		Model: ModelConfig{
			Clusters:      ec.Clusters,
			Neighbors:     ec.Neighbors,
			Seed:          ec.Seed,
			SampleSeed:    ec.SampleSeed,
			Inits:         ec.KMeans.Inits,
			MaxIterations: ec.KMeans.MaxIterations,
			Tolerance:     ec.KMeans.Tolerance,
			Workers:       ec.KMeans.Workers,
		},
		Limits: LimitsConfig{
			DefaultK:         ec.Limits.DefaultK,
			MaxK:             ec.Limits.MaxK,
			MaxSearchResults: ec.Limits.MaxSearchResults,
			PoolFloor:        ec.Pool.Floor,
			PoolHeadroom:     ec.Pool.Headroom,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CacheSize:       1024,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads defaults, the first config file found and the environment,
// then validates the result.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := splitList(s)
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envTransformFunc returns "" for unmapped variables so they are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
