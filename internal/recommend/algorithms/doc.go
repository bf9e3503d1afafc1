// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package algorithms implements the vector models behind the recommender.
//
// Two models are fitted once over the standardized feature matrix:
//
//   - KMeans: a partitioning cluster model (k-means++ seeding, Lloyd
//     iterations, best of several seeded restarts)
//   - NeighborIndex: an exact Euclidean nearest-neighbor index
//
// # Determinism
//
// KMeans draws every random choice from a seeded source. Restarts run in
// parallel, but each restart owns a seed drawn up front from the master
// seed, so the fitted centroids and labels do not depend on scheduling.
// NeighborIndex breaks distance ties by row index ascending.
//
// # Thread Safety
//
// Both models are immutable after fitting and safe for concurrent use.
// The matrix passed to a constructor is referenced, not copied, and must
// not be modified afterwards.
package algorithms
