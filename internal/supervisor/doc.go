// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Package supervisor runs long-lived VibeMatch services under a suture
// supervisor tree. A crashed service is restarted with backoff; shutdown
// cancels the tree and waits up to ShutdownTimeout per service.
//
// The tree has one layer today, the API layer, which holds the HTTP server.
// The catalog is built before the tree starts, so no service depends on
// another at startup. Supervisor events are logged through sutureslog.
package supervisor
