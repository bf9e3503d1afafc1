// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// KMeansConfig contains configuration for k-means clustering.
type KMeansConfig struct {
	// Clusters is the number of clusters. Must be in [1, rows].
	Clusters int

	// Inits is the number of seeded restarts; the lowest-inertia run wins.
	Inits int

	// MaxIterations bounds Lloyd iterations per restart.
	MaxIterations int

	// Tolerance is relative to the mean per-feature variance of the data.
	// A run stops once total squared centroid movement falls to or below it.
	Tolerance float64

	// Seed drives every random choice.
	Seed int64

	// Workers bounds parallel restarts. Zero means GOMAXPROCS.
	Workers int
}

// DefaultKMeansConfig returns default k-means configuration.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		Clusters:      5,
		Inits:         10,
		MaxIterations: 300,
		Tolerance:     1e-4,
		Seed:          42,
	}
}

// KMeans is a fitted k-means model.
type KMeans struct {
	centroids  [][]float64
	labels     []int
	inertia    float64
	iterations int
	dim        int
}

// kmeansRun is the outcome of one restart.
type kmeansRun struct {
	centroids  [][]float64
	labels     []int
	inertia    float64
	iterations int
}

// FitKMeans clusters the rows of matrix.
//
// Identical input and configuration always produce identical centroids and
// labels. Every returned label lies in [0, cfg.Clusters).
func FitKMeans(ctx context.Context, matrix [][]float64, cfg KMeansConfig) (*KMeans, error) {
	dim, err := matrixDim(matrix)
	if err != nil {
		return nil, err
	}
	if cfg.Clusters < 1 || cfg.Clusters > len(matrix) {
		return nil, fmt.Errorf("%w: %d clusters for %d rows", ErrInvalidClusterCount, cfg.Clusters, len(matrix))
	}
	if cfg.Inits < 1 {
		cfg.Inits = 1
	}
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = 1
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tol := cfg.Tolerance * meanVariance(matrix, dim)

	master := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible clustering, not security
	seeds := make([]int64, cfg.Inits)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	runs := make([]kmeansRun, cfg.Inits)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		g.Go(func() error {
			run, err := lloyd(gctx, matrix, dim, cfg.Clusters, cfg.MaxIterations, tol, seeds[i])
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < len(runs); i++ {
		if runs[i].inertia < runs[best].inertia {
			best = i
		}
	}

	return &KMeans{
		centroids:  runs[best].centroids,
		labels:     runs[best].labels,
		inertia:    runs[best].inertia,
		iterations: runs[best].iterations,
		dim:        dim,
	}, nil
}

// K returns the number of clusters.
func (m *KMeans) K() int {
	return len(m.centroids)
}

// Dim returns the vector width the model was fitted with.
func (m *KMeans) Dim() int {
	return m.dim
}

// Labels returns a copy of the fit-time cluster id of every row.
func (m *KMeans) Labels() []int {
	return append([]int(nil), m.labels...)
}

// Centroids returns a copy of the cluster centers.
func (m *KMeans) Centroids() [][]float64 {
	out := make([][]float64, len(m.centroids))
	for i, c := range m.centroids {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// Inertia returns the sum of squared distances of rows to their centroid.
func (m *KMeans) Inertia() float64 {
	return m.inertia
}

// Iterations returns the Lloyd iterations used by the winning restart.
func (m *KMeans) Iterations() int {
	return m.iterations
}

// Predict returns the cluster id nearest to vec.
func (m *KMeans) Predict(vec []float64) (int, error) {
	if err := checkDim(len(vec), m.dim); err != nil {
		return 0, err
	}
	c, _ := nearestCentroid(vec, m.centroids)
	return c, nil
}

// Assign returns one cluster id per row of matrix.
func (m *KMeans) Assign(matrix [][]float64) ([]int, error) {
	labels := make([]int, len(matrix))
	for i, row := range matrix {
		c, err := m.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		labels[i] = c
	}
	return labels, nil
}

// lloyd runs one seeded restart: k-means++ seeding then Lloyd iterations.
func lloyd(ctx context.Context, matrix [][]float64, dim, k, maxIter int, tol float64, seed int64) (kmeansRun, error) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible clustering, not security
	centroids := seedPlusPlus(matrix, k, rng)
	labels := make([]int, len(matrix))

	iter := 0
	for iter < maxIter {
		if ContextCancelled(ctx) {
			return kmeansRun{}, ctx.Err()
		}
		iter++

		for i, row := range matrix {
			labels[i], _ = nearestCentroid(row, centroids)
		}

		next := recomputeCentroids(matrix, labels, centroids, dim)
		shift := 0.0
		for c := range centroids {
			shift += SquaredEuclidean(centroids[c], next[c])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia := 0.0
	for i, row := range matrix {
		var d float64
		labels[i], d = nearestCentroid(row, centroids)
		inertia += d
	}

	return kmeansRun{
		centroids:  centroids,
		labels:     labels,
		inertia:    inertia,
		iterations: iter,
	}, nil
}

// seedPlusPlus picks k initial centers with k-means++ weighting.
func seedPlusPlus(matrix [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(matrix)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), matrix[rng.Intn(n)]...))

	closest := make([]float64, n)
	for i, row := range matrix {
		closest[i] = SquaredEuclidean(row, centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range closest {
			total += d
		}

		pick := -1
		if total > 0 {
			r := rng.Float64() * total
			for i, d := range closest {
				r -= d
				if r < 0 {
					pick = i
					break
				}
			}
		}
		if pick < 0 {
			// Every remaining point coincides with a center, or rounding
			// exhausted the draw. Fall back to a uniform pick.
			pick = rng.Intn(n)
		}

		center := append([]float64(nil), matrix[pick]...)
		centroids = append(centroids, center)
		for i, row := range matrix {
			if d := SquaredEuclidean(row, center); d < closest[i] {
				closest[i] = d
			}
		}
	}
	return centroids
}

// recomputeCentroids returns the mean of each cluster's rows. An empty
// cluster is moved onto the row farthest from its current centroid.
func recomputeCentroids(matrix [][]float64, labels []int, old [][]float64, dim int) [][]float64 {
	k := len(old)
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	counts := make([]int, k)
	for i, row := range matrix {
		c := labels[i]
		counts[c]++
		for j, v := range row {
			sums[c][j] += v
		}
	}

	var empty []int
	for c := range sums {
		if counts[c] == 0 {
			empty = append(empty, c)
			continue
		}
		for j := range sums[c] {
			sums[c][j] /= float64(counts[c])
		}
	}
	if len(empty) == 0 {
		return sums
	}

	far := make([]int, len(matrix))
	dist := make([]float64, len(matrix))
	for i, row := range matrix {
		far[i] = i
		dist[i] = SquaredEuclidean(row, old[labels[i]])
	}
	sort.SliceStable(far, func(a, b int) bool {
		return dist[far[a]] > dist[far[b]]
	})
	for i, c := range empty {
		sums[c] = append([]float64(nil), matrix[far[i%len(far)]]...)
	}
	return sums
}

// nearestCentroid returns the closest centroid and its squared distance.
// Ties go to the lower centroid id.
func nearestCentroid(vec []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centroids {
		if d := SquaredEuclidean(vec, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// meanVariance is the average of the per-column population variances.
func meanVariance(matrix [][]float64, dim int) float64 {
	n := float64(len(matrix))
	total := 0.0
	for j := 0; j < dim; j++ {
		var sum, sq float64
		for _, row := range matrix {
			sum += row[j]
			sq += row[j] * row[j]
		}
		mean := sum / n
		total += math.Max(0, sq/n-mean*mean)
	}
	return total / float64(dim)
}
