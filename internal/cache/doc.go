// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package cache provides a bounded, thread-safe LRU used to memoize query
// results.
//
// Engine queries are pure functions of an immutable snapshot, so a cached
// result stays valid for the snapshot's lifetime. Callers that install a
// new engine replace the cache along with it.
//
// # Usage
//
//	results := cache.NewLRU[string, []Recommendation](1024)
//	if recs, ok := results.Get(key); ok {
//	    return recs
//	}
//	recs := compute()
//	results.Add(key, recs)
//
// # Complexity
//
// Get, Add and Remove are O(1): a map indexes the nodes of a doubly linked
// list ordered from most to least recently used.
package cache
