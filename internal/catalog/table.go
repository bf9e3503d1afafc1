// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"strings"
)

// Identity column names recognized in a catalog source.
const (
	ColumnTrackID   = "track_id"
	ColumnTrackName = "track_name"
	ColumnArtists   = "artists"
	ColumnGenre     = "track_genre"
)

// defaultFeatures is the audio feature set used when none is configured.
var defaultFeatures = []string{
	"danceability",
	"energy",
	"loudness",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
	"tempo",
	"duration_ms",
	"popularity",
}

// DefaultFeatures returns a copy of the default feature column list.
func DefaultFeatures() []string {
	out := make([]string, len(defaultFeatures))
	copy(out, defaultFeatures)
	return out
}

// missingTokens are cell values treated as absent.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-NaN":     {},
	"-nan":     {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell value represents a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

// Table is raw tabular data as read from a Source.
// Cells are kept as text; a missing value is stored as an empty string.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
// When a header repeats, the first occurrence wins.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// cell returns the value at row r, column c, or "" when c is absent.
func (t *Table) cell(r, c int) string {
	if c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}
