// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package middleware provides HTTP middleware shared by the VibeMatch API:
// request ID propagation into the logging context and Prometheus request
// instrumentation keyed by chi route pattern.
package middleware
