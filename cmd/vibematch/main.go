// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

// Command vibematch queries a music catalog from the terminal. It builds
// the same engine as the server, in process, then runs one query.
//
//	vibematch track "Blinding Lights" --artist "The Weeknd" -n 5
//	vibematch mood --energy 0.8 --valence 0.9 --danceability 0.7 --set tempo=128
//	vibematch preset calm
//	vibematch clusters
//	vibematch sample 2 -n 10
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
