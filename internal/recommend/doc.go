// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package recommend implements the audio-feature recommendation engine.
//
// # Architecture
//
// Build runs once per process and produces an immutable Snapshot:
//
//   - catalog.Pipeline loads, cleans and standardizes the catalog
//   - Fit clusters the standardized matrix and builds a neighbor index
//   - the cleaned frame, matrix, scaler, cluster labels and index are
//     frozen into a Snapshot referenced by every query
//
// Queries route a vector through one pipeline: neighbor pool, seed
// exclusion, (name, artist) deduplication, truncation.
//
//   - RecommendByTrack: seed vector from a catalog row matched by name
//   - RecommendByMood: dataset means with caller overrides, standardized
//     with the fit-time scaler
//   - RecommendByPreset: a named mood routed through RecommendByMood
//   - DescribeClusters / SampleClusterTracks: cluster reporting
//   - SearchTracks / FilterByMood: catalog browsing
//
// # Not Found
//
// RecommendByTrack returns a nil seed and an empty result, with a nil error,
// when no track matches the name. Callers test the seed, not the error.
//
// # Usage
//
//	src, _ := catalog.NewSource(catalog.FormatCSV, "dataset.csv")
//	engine, err := recommend.Build(ctx, recommend.DefaultConfig(), src, logger)
//	if err != nil {
//	    return err
//	}
//	seed, recs, err := engine.RecommendByTrack("Blinding Lights", 10, "")
//
// # Thread Safety
//
// The Snapshot is never mutated after Build, so every Engine method is safe
// for concurrent use without locking.
package recommend
