// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

/*
Package logging provides the process-wide zerolog logger for VibeMatch.

Every component logs through this package so output stays uniform: JSON
lines in production, colored console output during development. The
logger is configured once at startup from the logging section of the
configuration (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).

# Usage

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Int("tracks", n).Msg("Catalog loaded")

Component loggers carry a "component" field:

	log := logging.WithComponent("recommend")
	log.Warn().Strs("features", degenerate).Msg("Zero-variance features")

# Request Context

HTTP middleware stores a request ID in the context. Ctx returns a logger
that includes it:

	logging.Ctx(r.Context()).Info().Msg("Mood query")

# slog Bridge

The supervisor tree (suture) reports events through log/slog. NewSlogLogger
returns a *slog.Logger whose records are written by zerolog.

# Thread Safety

The global logger is guarded by a RWMutex. Init and SetLevel may be called
while other goroutines are logging.
*/
package logging
