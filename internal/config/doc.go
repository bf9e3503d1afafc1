// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

/*
Package config loads the VibeMatch process configuration.

Configuration is layered with koanf. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/vibematch/config.yaml, /etc/vibematch/config.yml that exists
 3. Environment variables listed in envMappings

Unlisted environment variables are ignored.

# Environment Variables

Catalog:
  - CATALOG_PATH: catalog file (default: data/tracks.csv)
  - CATALOG_FORMAT: csv or duckdb (default: csv)
  - CATALOG_FEATURES: comma-separated feature columns

Model:
  - MODEL_CLUSTERS: k-means cluster count (default: 5)
  - MODEL_NEIGHBORS: neighbor index capacity (default: 30)
  - MODEL_SEED: clustering seed, 0 means 42 (default: 42)
  - MODEL_SAMPLE_SEED: cluster sampling seed (default: 0)
  - MODEL_INITS, MODEL_MAX_ITERATIONS, MODEL_TOLERANCE, MODEL_WORKERS

Limits:
  - LIMITS_DEFAULT_K (10), LIMITS_MAX_K (25), LIMITS_MAX_SEARCH (50)
  - LIMITS_POOL_FLOOR (30), LIMITS_POOL_HEADROOM (5)

HTTP Server:
  - HTTP_HOST (0.0.0.0), HTTP_PORT (8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - HTTP_CACHE_SIZE (1024, 0 disables the track result cache)

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

# Usage

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	engine, err := recommend.Build(ctx, cfg.EngineConfig(), src, logger)
*/
package config
