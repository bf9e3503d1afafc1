// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"errors"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend/algorithms"
)

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid recommend config")

	// ErrUnknownCluster is returned when a cluster id has no tracks.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrUnknownMood is returned for an undefined mood preset label.
	ErrUnknownMood = errors.New("unknown mood")
)

// Errors surfaced from the lower layers, re-exported so callers need only
// this package for errors.Is checks.
var (
	ErrDataLoad            = catalog.ErrDataLoad
	ErrSchema              = catalog.ErrSchema
	ErrEmptyCatalog        = catalog.ErrEmptyCatalog
	ErrDimensionMismatch   = algorithms.ErrDimensionMismatch
	ErrInvalidClusterCount = algorithms.ErrInvalidClusterCount
)
