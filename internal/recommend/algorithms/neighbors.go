// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package algorithms

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// Neighbor is one nearest-neighbor hit.
type Neighbor struct {
	// Index is the matrix row of the hit.
	Index int

	// Distance is the Euclidean distance to the query vector.
	Distance float64
}

// NeighborIndex answers exact k-nearest-neighbor queries by Euclidean
// distance over a fixed matrix.
type NeighborIndex struct {
	data     [][]float64
	dim      int
	capacity int
}

// NewNeighborIndex builds an index over matrix. nNeighbors is the largest
// k a query may return; it is capped to the row count.
func NewNeighborIndex(matrix [][]float64, nNeighbors int) (*NeighborIndex, error) {
	dim, err := matrixDim(matrix)
	if err != nil {
		return nil, err
	}
	if nNeighbors < 1 {
		return nil, fmt.Errorf("n_neighbors must be at least 1, got %d", nNeighbors)
	}
	if nNeighbors > len(matrix) {
		nNeighbors = len(matrix)
	}

	return &NeighborIndex{
		data:     matrix,
		dim:      dim,
		capacity: nNeighbors,
	}, nil
}

// Len returns the number of indexed rows.
func (x *NeighborIndex) Len() int {
	return len(x.data)
}

// Dim returns the vector width.
func (x *NeighborIndex) Dim() int {
	return x.dim
}

// Capacity returns the effective neighbor count fixed at build time.
func (x *NeighborIndex) Capacity() int {
	return x.capacity
}

// Query returns the min(k, Capacity()) rows nearest to vec, ascending by
// distance. Equal distances are ordered by row index.
func (x *NeighborIndex) Query(vec []float64, k int) ([]Neighbor, error) {
	if err := checkDim(len(vec), x.dim); err != nil {
		return nil, err
	}
	if k > x.capacity {
		k = x.capacity
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	h := make(maxHeap, 0, k)
	for i, row := range x.data {
		d := SquaredEuclidean(vec, row)
		if len(h) < k {
			heap.Push(&h, Neighbor{Index: i, Distance: d})
			continue
		}
		if closer(Neighbor{Index: i, Distance: d}, h[0]) {
			h[0] = Neighbor{Index: i, Distance: d}
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(a, b int) bool {
		return closer(out[a], out[b])
	})
	for i := range out {
		out[i].Distance = math.Sqrt(out[i].Distance)
	}
	return out, nil
}

// closer orders neighbors by distance, then by row index.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

// maxHeap keeps the farthest retained neighbor at the root.
type maxHeap []Neighbor

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *maxHeap) Push(x any) {
	*h = append(*h, x.(Neighbor))
}

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
