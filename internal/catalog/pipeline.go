// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Prepared is the output of Pipeline. Frame.Tracks[i] and Matrix[i]
// describe the same catalog row.
type Prepared struct {
	Frame    *Frame
	Matrix   [][]float64
	Scaler   *Scaler
	Features []string

	// RawRows is the row count before cleaning.
	RawRows int
}

// Pipeline loads, cleans and standardizes a catalog.
func Pipeline(ctx context.Context, src Source, features []string) (*Prepared, error) {
	if len(features) == 0 {
		return nil, errors.New("catalog: no feature columns requested")
	}

	raw, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	frame, err := CleanAndSelect(raw, features)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", src, err)
	}
	if frame.Len() == 0 {
		return nil, fmt.Errorf("clean %s: %w (%d rows dropped)", src, ErrEmptyCatalog, frame.Dropped)
	}

	scaler, err := FitScaler(frame)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	matrix, err := scaler.Apply(frame)
	if err != nil {
		return nil, fmt.Errorf("apply scaler: %w", err)
	}

	return &Prepared{
		Frame:    frame,
		Matrix:   matrix,
		Scaler:   scaler,
		Features: frame.Features,
		RawRows:  raw.Len(),
	}, nil
}

// TableSource serves an already-loaded Table. It is useful for callers that
// assemble catalogs in memory.
type TableSource struct {
	Name  string
	Table *Table
}

// Load implements Source.
func (s *TableSource) Load(_ context.Context) (*Table, error) {
	if s.Table == nil {
		return nil, loadError(s.String(), "no table")
	}
	return s.Table, nil
}

// String implements Source.
func (s *TableSource) String() string {
	if s.Name == "" {
		return "table:memory"
	}
	return "table:" + s.Name
}
