// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

//go:build integration

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestDuckDBSource_LoadCSV(t *testing.T) {
	path := writeCatalog(t, "tracks.csv", sampleCSV)

	table, err := (&DuckDBSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", table.Len())
	}

	frame, err := CleanAndSelect(table, []string{"energy", "valence", "tempo"})
	if err != nil {
		t.Fatalf("CleanAndSelect() error = %v", err)
	}
	if frame.Len() != 3 {
		t.Errorf("frame.Len() = %d, want 3", frame.Len())
	}
	if frame.Tracks[0].Name != "Song A" {
		t.Errorf("Tracks[0].Name = %q, want Song A", frame.Tracks[0].Name)
	}
}

func TestDuckDBSource_MatchesCSVSource(t *testing.T) {
	path := writeCatalog(t, "tracks.csv", sampleCSV)
	features := []string{"energy", "valence", "tempo"}

	viaCSV, err := Pipeline(context.Background(), &CSVSource{Path: path}, features)
	if err != nil {
		t.Fatalf("Pipeline(csv) error = %v", err)
	}
	viaDuck, err := Pipeline(context.Background(), &DuckDBSource{Path: path}, features)
	if err != nil {
		t.Fatalf("Pipeline(duckdb) error = %v", err)
	}

	if len(viaCSV.Matrix) != len(viaDuck.Matrix) {
		t.Fatalf("row count differs: csv %d, duckdb %d", len(viaCSV.Matrix), len(viaDuck.Matrix))
	}
	for i := range viaCSV.Matrix {
		for j := range viaCSV.Matrix[i] {
			if viaCSV.Matrix[i][j] != viaDuck.Matrix[i][j] {
				t.Errorf("matrix[%d][%d]: csv %v, duckdb %v", i, j, viaCSV.Matrix[i][j], viaDuck.Matrix[i][j])
			}
		}
	}
}

func TestDuckDBSource_MissingFile(t *testing.T) {
	src := &DuckDBSource{Path: filepath.Join(t.TempDir(), "missing.parquet")}
	if _, err := src.Load(context.Background()); !errors.Is(err, ErrDataLoad) {
		t.Fatalf("Load() error = %v, want ErrDataLoad", err)
	}
}
