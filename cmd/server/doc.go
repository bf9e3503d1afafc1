// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package main is the entry point for the VibeMatch HTTP server.
//
// # Startup
//
// The server initializes components in order:
//
//  1. Configuration: defaults, config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Engine: load the catalog, standardize it, fit k-means and the
//     neighbor index. Any failure here is fatal.
//  4. HTTP Server: chi router under a suture supervisor tree
//
// The engine is built before the listener opens, so every request sees a
// fully fitted model.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and drains in-flight requests within
// SHUTDOWN_TIMEOUT.
//
// # Example Usage
//
//	export CATALOG_PATH=data/tracks.csv
//	export HTTP_PORT=8080
//	./vibematch-server
//
//	curl 'http://localhost:8080/api/v1/recommendations/track?name=Blinding+Lights&n=5'
package main
