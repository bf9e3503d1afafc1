// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/vibematch/internal/recommend/algorithms"
)

// Models holds the artifacts fitted over a standardized matrix.
type Models struct {
	KMeans *algorithms.KMeans
	Index  *algorithms.NeighborIndex
}

// Fit fits the cluster model and the neighbor index over matrix.
// nNeighbors is capped to the row count.
func Fit(ctx context.Context, matrix [][]float64, nClusters, nNeighbors int, cfg *Config) (*Models, error) {
	kcfg := cfg.kmeans()
	kcfg.Clusters = nClusters

	km, err := algorithms.FitKMeans(ctx, matrix, kcfg)
	if err != nil {
		return nil, fmt.Errorf("fit kmeans: %w", err)
	}

	index, err := algorithms.NewNeighborIndex(matrix, nNeighbors)
	if err != nil {
		return nil, fmt.Errorf("build neighbor index: %w", err)
	}

	return &Models{KMeans: km, Index: index}, nil
}

// AssignClusters returns one cluster id per row of matrix.
func (m *Models) AssignClusters(matrix [][]float64) ([]int, error) {
	return m.KMeans.Assign(matrix)
}

// QueryNeighbors returns up to k rows nearest to vec, ascending by distance.
func (m *Models) QueryNeighbors(vec []float64, k int) ([]algorithms.Neighbor, error) {
	return m.Index.Query(vec, k)
}
