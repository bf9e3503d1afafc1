// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Track is one cleaned catalog row.
type Track struct {
	// Index is the dense row position, 0..n-1, shared with the standardized matrix.
	Index int `json:"index"`

	// SourceRow is the 1-based data row number in the raw source.
	SourceRow int `json:"source_row"`

	ID      string `json:"track_id,omitempty"`
	Name    string `json:"track_name,omitempty"`
	Artists string `json:"artists,omitempty"`
	Genre   string `json:"track_genre,omitempty"`

	// Features holds the raw (unscaled) values in Frame.Features order.
	Features []float64 `json:"features"`
}

// SpotifyURL returns the Spotify web link for the track, or "" without an id.
func (t *Track) SpotifyURL() string {
	if t.ID == "" {
		return ""
	}
	return "https://open.spotify.com/track/" + t.ID
}

// Feature returns the raw value of a named feature.
func (t *Track) Feature(features []string, name string) (float64, bool) {
	for i, f := range features {
		if f == name {
			return t.Features[i], true
		}
	}
	return 0, false
}

// Key identifies a track by its (name, artist) pair for deduplication.
type Key struct {
	Name   string
	Artist string
}

// Frame is the cleaned catalog: complete rows only, densely indexed.
type Frame struct {
	Features []string
	Tracks   []Track

	// HasName and HasArtists report whether the identity columns were present.
	HasName    bool
	HasArtists bool

	// Dropped counts raw rows removed for missing feature values.
	Dropped int
}

// Len returns the number of tracks.
func (f *Frame) Len() int {
	return len(f.Tracks)
}

// HasIdentity reports whether tracks can be told apart by (name, artist).
// Without it, every row is its own identity.
func (f *Frame) HasIdentity() bool {
	return f.HasName && f.HasArtists
}

// KeyOf returns the deduplication key of the track at idx.
// When identity columns are absent the key is positional.
func (f *Frame) KeyOf(idx int) Key {
	if !f.HasIdentity() {
		return Key{Name: "#" + strconv.Itoa(idx)}
	}
	t := &f.Tracks[idx]
	return Key{Name: t.Name, Artist: t.Artists}
}

// FeatureIndex returns the column position of a feature, or -1.
func (f *Frame) FeatureIndex(name string) int {
	for i, n := range f.Features {
		if n == name {
			return i
		}
	}
	return -1
}

// CleanAndSelect keeps the named feature columns and the rows where every
// one of them holds a number. The raw table is not modified.
//
// A feature column absent from raw yields a *SchemaError listing all missing
// names. A present but non-numeric value fails with ErrDataLoad. Values that
// are missing or non-finite drop the row.
func CleanAndSelect(raw *Table, features []string) (*Frame, error) {
	featureCols := make([]int, len(features))
	var missing []string
	for i, name := range features {
		featureCols[i] = raw.ColumnIndex(name)
		if featureCols[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	idCol := raw.ColumnIndex(ColumnTrackID)
	nameCol := raw.ColumnIndex(ColumnTrackName)
	artistCol := raw.ColumnIndex(ColumnArtists)
	genreCol := raw.ColumnIndex(ColumnGenre)

	frame := &Frame{
		Features:   append([]string(nil), features...),
		Tracks:     make([]Track, 0, raw.Len()),
		HasName:    nameCol >= 0,
		HasArtists: artistCol >= 0,
	}

	for r := range raw.Rows {
		values, complete, err := parseFeatures(raw, r, featureCols, features)
		if err != nil {
			return nil, err
		}
		if !complete {
			frame.Dropped++
			continue
		}

		frame.Tracks = append(frame.Tracks, Track{
			Index:     len(frame.Tracks),
			SourceRow: r + 1,
			ID:        identity(raw, r, idCol),
			Name:      identity(raw, r, nameCol),
			Artists:   identity(raw, r, artistCol),
			Genre:     identity(raw, r, genreCol),
			Features:  values,
		})
	}

	return frame, nil
}

// parseFeatures reads the feature cells of one row.
// complete is false when any value is missing or non-finite.
func parseFeatures(raw *Table, r int, cols []int, names []string) ([]float64, bool, error) {
	values := make([]float64, len(cols))
	for i, c := range cols {
		cell := strings.TrimSpace(raw.cell(r, c))
		if IsMissing(cell) {
			return nil, false, nil
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false, fmt.Errorf("%w: row %d column %q: value %q is not numeric", ErrDataLoad, r+1, names[i], cell)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false, nil
		}
		values[i] = v
	}
	return values, true, nil
}

func identity(raw *Table, r, c int) string {
	cell := raw.cell(r, c)
	if IsMissing(cell) {
		return ""
	}
	return strings.TrimSpace(cell)
}
