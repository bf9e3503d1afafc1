// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBSource reads a catalog file through an in-memory DuckDB connection.
//
// The reader is picked from the file extension:
//   - .parquet: read_parquet
//   - .json, .ndjson, .jsonl: read_json_auto
//   - anything else: read_csv with a header row and all columns as text
type DuckDBSource struct {
	Path string
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) (*Table, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: fmt.Errorf("open duckdb: %w", err)}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+readerExpr(s.Path))
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: fmt.Errorf("read columns: %w", err)}
	}

	table := &Table{Columns: columns}
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &LoadError{Source: s.Path, Err: fmt.Errorf("scan row %d: %w", table.Len()+1, err)}
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = cellText(v)
		}
		table.Rows = append(table.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}

	return table, nil
}

// String implements Source.
func (s *DuckDBSource) String() string {
	return "duckdb:" + s.Path
}

// readerExpr builds the DuckDB table function call for a path.
func readerExpr(path string) string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + quoted + ")"
	case ".json", ".ndjson", ".jsonl":
		return "read_json_auto(" + quoted + ")"
	default:
		return "read_csv(" + quoted + ", header = true, all_varchar = true)"
	}
}

// cellText renders a scanned DuckDB value as raw cell text. NULL becomes "".
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
