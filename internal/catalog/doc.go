// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package catalog loads a tabular track catalog and prepares it for modeling.
//
// The package covers the preprocessing stage of the recommender:
//
//  1. Load: read raw tabular data from a Source (CSVSource, DuckDBSource)
//  2. Clean: select the feature columns and drop rows with missing values
//  3. Scale: standardize every feature to zero mean and unit variance
//
// # Quick Start
//
//	src, err := catalog.NewSource("csv", "data/spotify_tracks.csv")
//	if err != nil {
//	    return err
//	}
//	prepared, err := catalog.Pipeline(ctx, src, catalog.DefaultFeatures())
//	if err != nil {
//	    return err
//	}
//	// prepared.Frame.Tracks[i] <-> prepared.Matrix[i]
//
// # Scaling
//
// FitScaler and Scaler.Apply are separate operations. A Scaler is fitted
// exactly once from the cleaned catalog; query vectors built later are
// transformed with the same statistics through Scaler.Transform and are never
// used to refit.
//
// A feature whose standard deviation is zero is scaled with a standard
// deviation of 1. The column becomes constant zero after centring and adds
// nothing to any Euclidean distance. Such features are reported by
// Scaler.Degenerate.
//
// # Errors
//
// Load failures wrap ErrDataLoad (see LoadError). A feature column missing
// from the raw schema yields a *SchemaError wrapping ErrSchema. Both can be
// tested with errors.Is and errors.As.
//
// # Thread Safety
//
// Frames, matrices and scalers are never mutated after construction and can
// be shared across goroutines without locking.
package catalog
