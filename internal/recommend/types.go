// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"time"

	"github.com/tomtom215/vibematch/internal/catalog"
)

// Recommendation is one ranked result.
type Recommendation struct {
	// Track references the catalog row inside the snapshot. Read-only.
	Track *catalog.Track `json:"track"`

	// Distance is the Euclidean distance in standardized feature space.
	Distance float64 `json:"distance"`

	// Cluster is the fit-time cluster id of the track.
	Cluster int `json:"cluster"`
}

// MoodQuery is the input to RecommendByMood.
type MoodQuery struct {
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`

	// Extra overrides further features by name. Unspecified features keep
	// the dataset mean.
	Extra map[string]float64 `json:"extra,omitempty"`
}

// Overrides returns every feature value the query sets, keyed by name.
// Extra entries win over the three core sliders.
func (q MoodQuery) Overrides() map[string]float64 {
	out := map[string]float64{
		"energy":       q.Energy,
		"valence":      q.Valence,
		"danceability": q.Danceability,
	}
	for k, v := range q.Extra {
		out[k] = v
	}
	return out
}

// ClusterSummary describes one cluster.
type ClusterSummary struct {
	// ID is the cluster id.
	ID int `json:"id"`

	// Label is a short descriptive name from the mean energy and valence.
	Label string `json:"label"`

	// Size is the number of catalog tracks in the cluster.
	Size int `json:"size"`

	// Means holds the raw (unscaled) mean of every feature.
	Means map[string]float64 `json:"means"`
}

// Status describes the built engine.
type Status struct {
	Tracks             int           `json:"tracks"`
	RawRows            int           `json:"raw_rows"`
	DroppedRows        int           `json:"dropped_rows"`
	Features           []string      `json:"features"`
	DegenerateFeatures []string      `json:"degenerate_features,omitempty"`
	Clusters           int           `json:"clusters"`
	Neighbors          int           `json:"neighbors"`
	Inertia            float64       `json:"inertia"`
	Source             string        `json:"source"`
	BuiltAt            time.Time     `json:"built_at"`
	BuildDuration      time.Duration `json:"build_duration_ns"`
}

// Metrics contains engine query counters.
type Metrics struct {
	// RequestCount is the total number of queries.
	RequestCount int64 `json:"request_count"`

	// NotFoundCount is the number of track queries without a seed match.
	NotFoundCount int64 `json:"not_found_count"`

	// ErrorCount is the total number of failed queries.
	ErrorCount int64 `json:"error_count"`
}
