// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"fmt"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend/algorithms"
)

// defaultSeed is used when Config.Seed is zero.
const defaultSeed int64 = 42

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Features lists the catalog columns used as model features, in order.
	Features []string `json:"features"`

	// Clusters is the number of k-means clusters.
	// Default: 5.
	Clusters int `json:"clusters"`

	// Neighbors is the neighbor index capacity, capped to the catalog size.
	// Default: 30.
	Neighbors int `json:"neighbors"`

	// KMeans contains clustering parameters.
	KMeans KMeansConfig `json:"kmeans"`

	// Pool controls neighbor over-fetching ahead of deduplication.
	Pool PoolConfig `json:"pool"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Seed is the random seed for clustering.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`

	// SampleSeed seeds cluster and mood sampling. Zero is a valid seed.
	SampleSeed int64 `json:"sample_seed"`
}

// KMeansConfig contains parameters for the cluster model.
type KMeansConfig struct {
	// Inits is the number of seeded restarts.
	// Default: 10.
	Inits int `json:"inits"`

	// MaxIterations bounds Lloyd iterations per restart.
	// Default: 300.
	MaxIterations int `json:"max_iterations"`

	// Tolerance is the convergence threshold relative to mean feature variance.
	// Default: 1e-4.
	Tolerance float64 `json:"tolerance"`

	// Workers bounds parallel restarts. Zero uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// PoolConfig sizes the candidate pool: max(Floor, n + Headroom).
type PoolConfig struct {
	// Floor is the minimum pool size.
	// Default: 30.
	Floor int `json:"floor"`

	// Headroom is added to n to absorb deduplication losses. At least 5.
	// Default: 5.
	Headroom int `json:"headroom"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a caller asks for n <= 0 through the API.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the largest result size the HTTP API and CLI request from the
	// engine. The engine itself does not cap n.
	// Default: 25.
	MaxK int `json:"max_k"`

	// MaxSearchResults caps catalog search results.
	// Default: 50.
	MaxSearchResults int `json:"max_search_results"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Features:  catalog.DefaultFeatures(),
		Clusters:  5,
		Neighbors: 30,
		KMeans: KMeansConfig{
			Inits:         10,
			MaxIterations: 300,
			Tolerance:     1e-4,
		},
		Pool: PoolConfig{
			Floor:    30,
			Headroom: 5,
		},
		Limits: LimitsConfig{
			DefaultK:         10,
			MaxK:             25,
			MaxSearchResults: 50,
		},
		Seed:       defaultSeed,
		SampleSeed: 0,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: features must not be empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Features))
	for _, f := range c.Features {
		if f == "" {
			return fmt.Errorf("%w: features must not contain empty names", ErrInvalidConfig)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: feature %q listed twice", ErrInvalidConfig, f)
		}
		seen[f] = struct{}{}
	}

	if c.Clusters < 1 {
		return fmt.Errorf("%w: clusters must be positive, got %d", ErrInvalidConfig, c.Clusters)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("%w: neighbors must be positive, got %d", ErrInvalidConfig, c.Neighbors)
	}

	if c.KMeans.Inits < 1 {
		return fmt.Errorf("%w: kmeans.inits must be positive, got %d", ErrInvalidConfig, c.KMeans.Inits)
	}
	if c.KMeans.MaxIterations < 1 {
		return fmt.Errorf("%w: kmeans.max_iterations must be positive, got %d", ErrInvalidConfig, c.KMeans.MaxIterations)
	}
	if c.KMeans.Tolerance < 0 {
		return fmt.Errorf("%w: kmeans.tolerance must be non-negative, got %f", ErrInvalidConfig, c.KMeans.Tolerance)
	}
	if c.KMeans.Workers < 0 {
		return fmt.Errorf("%w: kmeans.workers must be non-negative, got %d", ErrInvalidConfig, c.KMeans.Workers)
	}

	if c.Pool.Floor < 1 {
		return fmt.Errorf("%w: pool.floor must be positive, got %d", ErrInvalidConfig, c.Pool.Floor)
	}
	if c.Pool.Headroom < 5 {
		return fmt.Errorf("%w: pool.headroom must be at least 5, got %d", ErrInvalidConfig, c.Pool.Headroom)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("%w: limits.default_k must be positive, got %d", ErrInvalidConfig, c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("%w: limits.max_k must be >= limits.default_k, got %d < %d", ErrInvalidConfig, c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.MaxK+c.Pool.Headroom > c.Neighbors {
		return fmt.Errorf("%w: limits.max_k + pool.headroom must not exceed neighbors, got %d + %d > %d",
			ErrInvalidConfig, c.Limits.MaxK, c.Pool.Headroom, c.Neighbors)
	}
	if c.Limits.MaxSearchResults < 1 {
		return fmt.Errorf("%w: limits.max_search_results must be positive, got %d", ErrInvalidConfig, c.Limits.MaxSearchResults)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Features = append([]string(nil), c.Features...)
	return &out
}

// EffectiveSeed returns the clustering seed, substituting the default for zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed == 0 {
		return defaultSeed
	}
	return c.Seed
}

// kmeans projects the configuration onto the clustering algorithm.
func (c *Config) kmeans() algorithms.KMeansConfig {
	return algorithms.KMeansConfig{
		Clusters:      c.Clusters,
		Inits:         c.KMeans.Inits,
		MaxIterations: c.KMeans.MaxIterations,
		Tolerance:     c.KMeans.Tolerance,
		Seed:          c.EffectiveSeed(),
		Workers:       c.KMeans.Workers,
	}
}

// poolSize returns the candidate pool size for n requested results.
func (c *Config) poolSize(n int) int {
	pool := n + c.Pool.Headroom
	if pool < c.Pool.Floor {
		pool = c.Pool.Floor
	}
	return pool
}
