// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"fmt"
	"math"
)

// Scaler holds the per-feature statistics used for standardization.
// A Scaler is immutable once fitted.
type Scaler struct {
	features   []string
	mean       []float64
	std        []float64
	degenerate []string
}

// FitScaler computes per-feature mean and population standard deviation
// over every track in the frame.
func FitScaler(frame *Frame) (*Scaler, error) {
	n := frame.Len()
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	dim := len(frame.Features)

	mean := make([]float64, dim)
	for i := range frame.Tracks {
		for j, v := range frame.Tracks[i].Features {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	std := make([]float64, dim)
	for i := range frame.Tracks {
		for j, v := range frame.Tracks[i].Features {
			d := v - mean[j]
			std[j] += d * d
		}
	}

	var degenerate []string
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(n))
		if std[j] == 0 {
			std[j] = 1
			degenerate = append(degenerate, frame.Features[j])
		}
	}

	return &Scaler{
		features:   append([]string(nil), frame.Features...),
		mean:       mean,
		std:        std,
		degenerate: degenerate,
	}, nil
}

// Features returns the feature names in column order.
func (s *Scaler) Features() []string {
	return append([]string(nil), s.features...)
}

// Mean returns a copy of the fitted per-feature means.
func (s *Scaler) Mean() []float64 {
	return append([]float64(nil), s.mean...)
}

// Std returns a copy of the per-feature standard deviations actually applied.
// Zero-variance features report 1.
func (s *Scaler) Std() []float64 {
	return append([]float64(nil), s.std...)
}

// Degenerate lists features whose variance was zero at fit time.
func (s *Scaler) Degenerate() []string {
	return append([]string(nil), s.degenerate...)
}

// Dim returns the number of features.
func (s *Scaler) Dim() int {
	return len(s.mean)
}

// Transform standardizes one raw feature vector with the fitted statistics.
func (s *Scaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.mean) {
		return nil, fmt.Errorf("%w: vector has %d values, scaler has %d features", ErrDimensionMismatch, len(raw), len(s.mean))
	}
	out := make([]float64, len(raw))
	for j, v := range raw {
		out[j] = (v - s.mean[j]) / s.std[j]
	}
	return out, nil
}

// Apply standardizes every track of a frame, preserving row order.
// It never refits; the frame's feature list must match the scaler's.
func (s *Scaler) Apply(frame *Frame) ([][]float64, error) {
	if len(frame.Features) != len(s.features) {
		return nil, fmt.Errorf("%w: frame has %d features, scaler has %d", ErrDimensionMismatch, len(frame.Features), len(s.features))
	}
	for j, name := range frame.Features {
		if s.features[j] != name {
			return nil, fmt.Errorf("%w: feature %d is %q, scaler expects %q", ErrDimensionMismatch, j, name, s.features[j])
		}
	}

	matrix := make([][]float64, frame.Len())
	for i := range frame.Tracks {
		row, err := s.Transform(frame.Tracks[i].Features)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		matrix[i] = row
	}
	return matrix, nil
}
