// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = `track_id,track_name,artists,track_genre,energy,valence,tempo
a1,Song A,Artist One,pop,0.9,0.8,120
b2,Song B,Artist Two,rock,0.5,,100
c3,Song C,Artist Three,jazz,0.1,0.2,80
d4,Song D,Artist Four,pop,NaN,0.4,90
e5,Song E,Artist Five,edm,0.7,0.6,128
`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func mustReadCSV(t *testing.T, content string) *Table {
	t.Helper()
	table, err := ReadCSV(context.Background(), strings.NewReader(content))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	return table
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	t.Run("header and rows", func(t *testing.T) {
		t.Parallel()
		table := mustReadCSV(t, sampleCSV)
		if table.Len() != 5 {
			t.Errorf("Len() = %d, want 5", table.Len())
		}
		if got := table.ColumnIndex("valence"); got != 5 {
			t.Errorf("ColumnIndex(valence) = %d, want 5", got)
		}
		if got := table.ColumnIndex("missing"); got != -1 {
			t.Errorf("ColumnIndex(missing) = %d, want -1", got)
		}
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		t.Parallel()
		table := mustReadCSV(t, "\ufefftrack_name,energy\nx,1\n")
		if table.Columns[0] != "track_name" {
			t.Errorf("Columns[0] = %q, want track_name", table.Columns[0])
		}
	})

	t.Run("short record padded", func(t *testing.T) {
		t.Parallel()
		table := mustReadCSV(t, "a,b,c\n1,2,3\n4\n")
		if table.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", table.Len())
		}
		if got := table.Rows[1]; len(got) != 3 || got[1] != "" || got[2] != "" {
			t.Errorf("Rows[1] = %q, want [4 \"\" \"\"]", got)
		}
	})

	t.Run("overlong record fails", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(context.Background(), strings.NewReader("a,b\n1,2\n3,4,5\n"))
		if err == nil {
			t.Fatal("ReadCSV() = nil error, want error for overlong record")
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		t.Parallel()
		if _, err := ReadCSV(context.Background(), strings.NewReader("")); err == nil {
			t.Fatal("ReadCSV() = nil error, want error for empty input")
		}
	})
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		path    string
		want    string
		wantErr bool
	}{
		{name: "default csv", format: "", path: "a.csv", want: "csv:a.csv"},
		{name: "explicit csv", format: "CSV", path: "a.csv", want: "csv:a.csv"},
		{name: "duckdb", format: "duckdb", path: "a.parquet", want: "duckdb:a.parquet"},
		{name: "unknown format", format: "xlsx", path: "a.xlsx", wantErr: true},
		{name: "empty path", format: "csv", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, err := NewSource(tt.format, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewSource() = %v, want error", src)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource() error = %v", err)
			}
			if src.String() != tt.want {
				t.Errorf("String() = %q, want %q", src.String(), tt.want)
			}
		})
	}
}

func TestCSVSource_LoadMissingFile(t *testing.T) {
	t.Parallel()

	src := &CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}
	_, err := src.Load(context.Background())
	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("Load() error = %v, want ErrDataLoad", err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %T, want *LoadError", err)
	}
	if loadErr.Source != src.Path {
		t.Errorf("LoadError.Source = %q, want %q", loadErr.Source, src.Path)
	}
}

func TestCleanAndSelect(t *testing.T) {
	t.Parallel()

	t.Run("drops incomplete rows and keeps order", func(t *testing.T) {
		t.Parallel()
		raw := mustReadCSV(t, sampleCSV)
		frame, err := CleanAndSelect(raw, []string{"energy", "valence", "tempo"})
		if err != nil {
			t.Fatalf("CleanAndSelect() error = %v", err)
		}

		if frame.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", frame.Len())
		}
		if frame.Dropped != 2 {
			t.Errorf("Dropped = %d, want 2", frame.Dropped)
		}

		wantNames := []string{"Song A", "Song C", "Song E"}
		for i, tr := range frame.Tracks {
			if tr.Index != i {
				t.Errorf("Tracks[%d].Index = %d, want %d", i, tr.Index, i)
			}
			if tr.Name != wantNames[i] {
				t.Errorf("Tracks[%d].Name = %q, want %q", i, tr.Name, wantNames[i])
			}
		}
		if frame.Tracks[1].SourceRow != 3 {
			t.Errorf("Tracks[1].SourceRow = %d, want 3", frame.Tracks[1].SourceRow)
		}
		if !reflect.DeepEqual(frame.Tracks[2].Features, []float64{0.7, 0.6, 128}) {
			t.Errorf("Tracks[2].Features = %v", frame.Tracks[2].Features)
		}
		if !frame.HasIdentity() {
			t.Error("HasIdentity() = false, want true")
		}
	})

	t.Run("does not mutate raw", func(t *testing.T) {
		t.Parallel()
		raw := mustReadCSV(t, sampleCSV)
		before := raw.Len()
		firstRow := append([]string(nil), raw.Rows[1]...)

		if _, err := CleanAndSelect(raw, []string{"energy", "valence"}); err != nil {
			t.Fatalf("CleanAndSelect() error = %v", err)
		}
		if raw.Len() != before {
			t.Errorf("raw.Len() = %d after clean, want %d", raw.Len(), before)
		}
		if !reflect.DeepEqual(raw.Rows[1], firstRow) {
			t.Errorf("raw row changed: %v, want %v", raw.Rows[1], firstRow)
		}
	})

	t.Run("schema error lists every missing column", func(t *testing.T) {
		t.Parallel()
		raw := mustReadCSV(t, sampleCSV)
		_, err := CleanAndSelect(raw, []string{"energy", "loudness", "valence", "liveness"})
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("error = %v, want ErrSchema", err)
		}
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("error = %T, want *SchemaError", err)
		}
		if !reflect.DeepEqual(schemaErr.Missing, []string{"loudness", "liveness"}) {
			t.Errorf("Missing = %v, want [loudness liveness]", schemaErr.Missing)
		}
	})

	t.Run("non-numeric value is a load error", func(t *testing.T) {
		t.Parallel()
		raw := mustReadCSV(t, "track_name,energy\nx,loud\n")
		_, err := CleanAndSelect(raw, []string{"energy"})
		if !errors.Is(err, ErrDataLoad) {
			t.Fatalf("error = %v, want ErrDataLoad", err)
		}
	})

	t.Run("identity columns optional", func(t *testing.T) {
		t.Parallel()
		raw := mustReadCSV(t, "energy,valence\n0.1,0.2\n0.3,0.4\n")
		frame, err := CleanAndSelect(raw, []string{"energy", "valence"})
		if err != nil {
			t.Fatalf("CleanAndSelect() error = %v", err)
		}
		if frame.HasIdentity() {
			t.Error("HasIdentity() = true, want false")
		}
		if frame.KeyOf(0) == frame.KeyOf(1) {
			t.Error("positional keys should differ between rows")
		}
	})
}

func TestFitScaler(t *testing.T) {
	t.Parallel()

	raw := mustReadCSV(t, "track_name,a,b,c\nx,1,10,5\ny,3,10,5\nz,5,40,5\n")
	frame, err := CleanAndSelect(raw, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("CleanAndSelect() error = %v", err)
	}

	scaler, err := FitScaler(frame)
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	wantMean := []float64{3, 20, 5}
	for j, m := range scaler.Mean() {
		if math.Abs(m-wantMean[j]) > 1e-12 {
			t.Errorf("Mean()[%d] = %v, want %v", j, m, wantMean[j])
		}
	}

	std := scaler.Std()
	if want := math.Sqrt(8.0 / 3.0); math.Abs(std[0]-want) > 1e-12 {
		t.Errorf("Std()[0] = %v, want %v", std[0], want)
	}
	if std[2] != 1 {
		t.Errorf("Std()[2] = %v, want 1 for zero-variance feature", std[2])
	}
	if !reflect.DeepEqual(scaler.Degenerate(), []string{"c"}) {
		t.Errorf("Degenerate() = %v, want [c]", scaler.Degenerate())
	}

	matrix, err := scaler.Apply(frame)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	for i, row := range matrix {
		if row[2] != 0 {
			t.Errorf("matrix[%d][2] = %v, want 0 for degenerate column", i, row[2])
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("matrix[%d] contains non-finite value: %v", i, row)
			}
		}
	}

	// Every column but the degenerate one has zero mean and unit variance.
	for j := 0; j < 2; j++ {
		var sum, sq float64
		for _, row := range matrix {
			sum += row[j]
			sq += row[j] * row[j]
		}
		n := float64(len(matrix))
		if math.Abs(sum/n) > 1e-12 {
			t.Errorf("column %d mean = %v, want 0", j, sum/n)
		}
		if math.Abs(sq/n-1) > 1e-12 {
			t.Errorf("column %d variance = %v, want 1", j, sq/n)
		}
	}
}

func TestFitScaler_Empty(t *testing.T) {
	t.Parallel()

	if _, err := FitScaler(&Frame{Features: []string{"a"}}); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("FitScaler() error = %v, want ErrEmptyCatalog", err)
	}
}

func TestScaler_TransformDimensionMismatch(t *testing.T) {
	t.Parallel()

	raw := mustReadCSV(t, "a,b\n1,2\n3,4\n")
	frame, _ := CleanAndSelect(raw, []string{"a", "b"})
	scaler, err := FitScaler(frame)
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	if _, err := scaler.Transform([]float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Transform() error = %v, want ErrDimensionMismatch", err)
	}

	other, _ := CleanAndSelect(raw, []string{"b", "a"})
	if _, err := scaler.Apply(other); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Apply() with reordered features error = %v, want ErrDimensionMismatch", err)
	}
}

func TestPipeline_ScalerConsistency(t *testing.T) {
	t.Parallel()

	features := []string{"energy", "valence", "tempo"}
	src := &TableSource{Name: "sample", Table: mustReadCSV(t, sampleCSV)}

	prepared, err := Pipeline(context.Background(), src, features)
	if err != nil {
		t.Fatalf("Pipeline() error = %v", err)
	}
	if prepared.RawRows != 5 {
		t.Errorf("RawRows = %d, want 5", prepared.RawRows)
	}
	if len(prepared.Matrix) != prepared.Frame.Len() {
		t.Fatalf("matrix rows = %d, frame rows = %d", len(prepared.Matrix), prepared.Frame.Len())
	}

	again, err := prepared.Scaler.Apply(prepared.Frame)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !reflect.DeepEqual(again, prepared.Matrix) {
		t.Error("re-applying the fitted scaler did not reproduce the standardized matrix")
	}

	for i := range prepared.Frame.Tracks {
		row, err := prepared.Scaler.Transform(prepared.Frame.Tracks[i].Features)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if !reflect.DeepEqual(row, prepared.Matrix[i]) {
			t.Errorf("row %d: Transform() = %v, matrix = %v", i, row, prepared.Matrix[i])
		}
	}
}

func TestPipeline_DropsShortRows(t *testing.T) {
	t.Parallel()

	csv := "track_name,artists,energy,valence\nA,X,0.1,0.2\nB,Y,0.5\nC,Z,0.9,0.8\n"
	prepared, err := Pipeline(context.Background(), &TableSource{Table: mustReadCSV(t, csv)}, []string{"energy", "valence"})
	if err != nil {
		t.Fatalf("Pipeline() error = %v", err)
	}
	if prepared.Frame.Len() != 2 || prepared.Frame.Dropped != 1 {
		t.Errorf("Len() = %d, Dropped = %d, want 2 and 1", prepared.Frame.Len(), prepared.Frame.Dropped)
	}
	if prepared.Frame.Tracks[1].Name != "C" {
		t.Errorf("Tracks[1].Name = %q, want C", prepared.Frame.Tracks[1].Name)
	}
}

func TestCSVSource_LoadOverlongRecord(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "bad.csv", "energy\n0.1\n0.2,0.3\n")
	_, err := (&CSVSource{Path: path}).Load(context.Background())
	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("Load() error = %v, want ErrDataLoad", err)
	}
}

func TestPipeline_Errors(t *testing.T) {
	t.Parallel()

	t.Run("schema", func(t *testing.T) {
		t.Parallel()
		src := &TableSource{Table: mustReadCSV(t, sampleCSV)}
		_, err := Pipeline(context.Background(), src, []string{"energy", "loudness"})
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("Pipeline() error = %v, want ErrSchema", err)
		}
	})

	t.Run("no complete rows", func(t *testing.T) {
		t.Parallel()
		src := &TableSource{Table: mustReadCSV(t, "energy\nNA\n\n")}
		_, err := Pipeline(context.Background(), src, []string{"energy"})
		if !errors.Is(err, ErrEmptyCatalog) {
			t.Fatalf("Pipeline() error = %v, want ErrEmptyCatalog", err)
		}
	})

	t.Run("unreadable source", func(t *testing.T) {
		t.Parallel()
		src := &CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}
		_, err := Pipeline(context.Background(), src, []string{"energy"})
		if !errors.Is(err, ErrDataLoad) {
			t.Fatalf("Pipeline() error = %v, want ErrDataLoad", err)
		}
	})

	t.Run("no features", func(t *testing.T) {
		t.Parallel()
		src := &TableSource{Table: mustReadCSV(t, sampleCSV)}
		if _, err := Pipeline(context.Background(), src, nil); err == nil {
			t.Fatal("Pipeline() = nil error, want error for empty feature list")
		}
	})
}

func TestCSVSource_Load(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "tracks.csv", sampleCSV)
	table, err := (&CSVSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 5 {
		t.Errorf("Len() = %d, want 5", table.Len())
	}
}

func TestTrack_SpotifyURL(t *testing.T) {
	t.Parallel()

	tr := Track{ID: "4uLU6hMCjMI75M1A2tKUQC"}
	if got := tr.SpotifyURL(); got != "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC" {
		t.Errorf("SpotifyURL() = %q", got)
	}
	if got := (&Track{}).SpotifyURL(); got != "" {
		t.Errorf("SpotifyURL() without id = %q, want empty", got)
	}
}

func TestIsMissing(t *testing.T) {
	t.Parallel()

	for _, cell := range []string{"", " ", "NA", "NaN", "null", "None", "N/A"} {
		if !IsMissing(cell) {
			t.Errorf("IsMissing(%q) = false, want true", cell)
		}
	}
	for _, cell := range []string{"0", "0.5", "Nana", "-1"} {
		if IsMissing(cell) {
			t.Errorf("IsMissing(%q) = true, want false", cell)
		}
	}
}
