// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/vibematch/internal/catalog"
)

var (
	// ErrDimensionMismatch is returned when a vector's width differs from
	// the width the model was fitted with. It is catalog.ErrDimensionMismatch.
	ErrDimensionMismatch = catalog.ErrDimensionMismatch

	// ErrInvalidClusterCount is returned when the requested cluster count
	// is below 1 or above the number of rows.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrEmptyMatrix is returned when a model is fitted over zero rows.
	ErrEmptyMatrix = errors.New("empty matrix")
)

// SquaredEuclidean returns the squared L2 distance between a and b.
// Both slices must have the same length.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// matrixDim validates that every row has the same width and returns it.
func matrixDim(matrix [][]float64) (int, error) {
	if len(matrix) == 0 {
		return 0, ErrEmptyMatrix
	}
	dim := len(matrix[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: rows have no columns", ErrDimensionMismatch)
	}
	for i, row := range matrix {
		if len(row) != dim {
			return 0, fmt.Errorf("%w: row %d has %d columns, row 0 has %d", ErrDimensionMismatch, i, len(row), dim)
		}
	}
	return dim, nil
}

func checkDim(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: query dim %d != index dim %d", ErrDimensionMismatch, got, want)
	}
	return nil
}

// ContextCancelled reports whether ctx is done without blocking.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
