// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source formats accepted by NewSource.
const (
	FormatCSV    = "csv"
	FormatDuckDB = "duckdb"
)

// Source produces raw tabular catalog data.
type Source interface {
	// Load reads the whole source. Failures wrap ErrDataLoad.
	Load(ctx context.Context) (*Table, error)

	// String identifies the source in logs and errors.
	String() string
}

// NewSource returns the Source for a configured format and path.
func NewSource(format, path string) (Source, error) {
	if path == "" {
		return nil, loadError(path, "empty catalog path")
	}

	switch strings.ToLower(format) {
	case "", FormatCSV:
		return &CSVSource{Path: path}, nil
	case FormatDuckDB:
		return &DuckDBSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown catalog format %q (want %s or %s)", format, FormatCSV, FormatDuckDB)
	}
}

// CSVSource reads a comma-separated file with a header row.
type CSVSource struct {
	Path string
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	defer f.Close()

	table, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	return table, nil
}

// String implements Source.
func (s *CSVSource) String() string {
	return "csv:" + s.Path
}

// ReadCSV parses CSV data with a header row into a Table.
// Short records are padded with empty cells, which cleaning treats as
// missing values. A record with more fields than the header is an error.
func ReadCSV(ctx context.Context, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Columns: header}
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", line, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", line, len(record), len(header))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}
