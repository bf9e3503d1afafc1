// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package algorithms

import (
	"errors"
	"math"
	"testing"
)

func lineMatrix() [][]float64 {
	// Points on the x axis at 0, 1, 2, 3, 4.
	return [][]float64{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 0},
		{4, 0},
	}
}

func TestNewNeighborIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		matrix       [][]float64
		nNeighbors   int
		wantCapacity int
		wantErr      error
	}{
		{name: "within rows", matrix: lineMatrix(), nNeighbors: 3, wantCapacity: 3},
		{name: "capped to rows", matrix: lineMatrix(), nNeighbors: 30, wantCapacity: 5},
		{name: "empty matrix", matrix: nil, nNeighbors: 3, wantErr: ErrEmptyMatrix},
		{name: "ragged rows", matrix: [][]float64{{1, 2}, {3}}, nNeighbors: 1, wantErr: ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx, err := NewNeighborIndex(tt.matrix, tt.nNeighbors)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewNeighborIndex() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewNeighborIndex() error = %v", err)
			}
			if idx.Capacity() != tt.wantCapacity {
				t.Errorf("Capacity() = %d, want %d", idx.Capacity(), tt.wantCapacity)
			}
		})
	}

	if _, err := NewNeighborIndex(lineMatrix(), 0); err == nil {
		t.Error("NewNeighborIndex(n=0) = nil error, want error")
	}
}

func TestNeighborIndex_Query(t *testing.T) {
	t.Parallel()

	idx, err := NewNeighborIndex(lineMatrix(), 5)
	if err != nil {
		t.Fatalf("NewNeighborIndex() error = %v", err)
	}

	got, err := idx.Query([]float64{3.2, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	wantIdx := []int{3, 4, 2}
	wantDist := []float64{0.2, 0.8, 1.2}
	if len(got) != len(wantIdx) {
		t.Fatalf("len(Query()) = %d, want %d", len(got), len(wantIdx))
	}
	for i := range got {
		if got[i].Index != wantIdx[i] {
			t.Errorf("got[%d].Index = %d, want %d", i, got[i].Index, wantIdx[i])
		}
		if math.Abs(got[i].Distance-wantDist[i]) > 1e-9 {
			t.Errorf("got[%d].Distance = %v, want %v", i, got[i].Distance, wantDist[i])
		}
	}
}

func TestNeighborIndex_QueryTiesByIndex(t *testing.T) {
	t.Parallel()

	// Rows 0, 2 and 3 are all at distance 1 from the origin.
	matrix := [][]float64{{1, 0}, {5, 5}, {0, 1}, {-1, 0}, {0, 0}}
	idx, err := NewNeighborIndex(matrix, 5)
	if err != nil {
		t.Fatalf("NewNeighborIndex() error = %v", err)
	}

	for run := 0; run < 3; run++ {
		got, err := idx.Query([]float64{0, 0}, 4)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		want := []int{4, 0, 2, 3}
		for i := range want {
			if got[i].Index != want[i] {
				t.Fatalf("run %d: got[%d].Index = %d, want %d (full %v)", run, i, got[i].Index, want[i], got)
			}
		}
	}
}

func TestNeighborIndex_QueryBounds(t *testing.T) {
	t.Parallel()

	idx, err := NewNeighborIndex(lineMatrix(), 2)
	if err != nil {
		t.Fatalf("NewNeighborIndex() error = %v", err)
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "k above capacity", k: 10, want: 2},
		{name: "k equals capacity", k: 2, want: 2},
		{name: "k one", k: 1, want: 1},
		{name: "k zero", k: 0, want: 0},
		{name: "k negative", k: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := idx.Query([]float64{0, 0}, tt.k)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Query(k=%d)) = %d, want %d", tt.k, len(got), tt.want)
			}
		})
	}
}

func TestNeighborIndex_QueryDimensionMismatch(t *testing.T) {
	t.Parallel()

	idx, err := NewNeighborIndex(lineMatrix(), 3)
	if err != nil {
		t.Fatalf("NewNeighborIndex() error = %v", err)
	}
	if _, err := idx.Query([]float64{1, 2, 3}, 2); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Query() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestNeighborIndex_MatchesFullSort(t *testing.T) {
	t.Parallel()

	matrix := make([][]float64, 0, 50)
	for i := 0; i < 50; i++ {
		x := float64((i*37)%50) / 7
		y := float64((i*11)%13) / 3
		matrix = append(matrix, []float64{x, y})
	}
	idx, err := NewNeighborIndex(matrix, 50)
	if err != nil {
		t.Fatalf("NewNeighborIndex() error = %v", err)
	}

	query := []float64{3.3, 1.1}
	got, err := idx.Query(query, 50)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("len(Query()) = %d, want 50", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Distance < prev.Distance {
			t.Fatalf("not ascending at %d: %v then %v", i, prev, cur)
		}
		if cur.Distance == prev.Distance && cur.Index < prev.Index {
			t.Fatalf("tie not ordered by index at %d: %v then %v", i, prev, cur)
		}
	}

	top, err := idx.Query(query, 7)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for i := range top {
		if top[i] != got[i] {
			t.Errorf("top[%d] = %v, full[%d] = %v", i, top[i], i, got[i])
		}
	}
}

func TestEuclidean(t *testing.T) {
	t.Parallel()

	if got := Euclidean([]float64{0, 0}, []float64{3, 4}); got != 5 {
		t.Errorf("Euclidean() = %v, want 5", got)
	}
	if got := SquaredEuclidean([]float64{1, 1, 1}, []float64{1, 1, 1}); got != 0 {
		t.Errorf("SquaredEuclidean() = %v, want 0", got)
	}
}
