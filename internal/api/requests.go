// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

// Result sizes are bounded at 1000 here; the engine clamps further to its
// configured maximum.

type trackQuery struct {
	Name   string `query:"name" validate:"required,max=200"`
	Artist string `query:"artist" validate:"max=200"`
	N      int    `query:"n" validate:"min=1,max=1000"`
}

// MoodRequest is the body of POST /api/v1/recommendations/mood.
type MoodRequest struct {
	Energy       *float64           `json:"energy" validate:"required,finite"`
	Valence      *float64           `json:"valence" validate:"required,finite"`
	Danceability *float64           `json:"danceability" validate:"required,finite"`
	Extra        map[string]float64 `json:"extra,omitempty" validate:"finitemap"`

	// N defaults to the configured default result size when zero.
	N int `json:"n" validate:"min=0,max=1000"`
}

type presetQuery struct {
	Label string `query:"label" validate:"mood"`
	N     int    `query:"n" validate:"min=1,max=1000"`
}

type clusterQuery struct {
	N int `query:"n" validate:"min=1,max=1000"`
}

type searchQuery struct {
	Query  string `query:"q" validate:"required_without=Artist,max=200"`
	Artist string `query:"artist" validate:"max=200"`
	Limit  int    `query:"limit" validate:"min=0,max=1000"`
}
