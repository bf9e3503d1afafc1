// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

/*
Package api provides the VibeMatch HTTP API.

Every JSON response uses one envelope:

	{"success": true,  "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}}
	{"success": false, "error": {"code": "TRACK_NOT_FOUND", "message": "..."}, "meta": {...}}

# Endpoints

	GET  /api/v1/health/live                 process is running
	GET  /api/v1/health/ready                engine is built
	GET  /api/v1/status                      catalog and model status
	GET  /api/v1/tracks/search               ?q=&artist=&limit=
	GET  /api/v1/recommendations/track       ?name=&artist=&n=
	POST /api/v1/recommendations/mood        {"energy","valence","danceability","extra","n"}
	GET  /api/v1/recommendations/mood/{label} ?n=
	GET  /api/v1/moods                       preset list
	GET  /api/v1/moods/{label}/tracks        ?n=
	GET  /api/v1/clusters                    cluster summaries
	GET  /api/v1/clusters/{id}/tracks        ?n=
	GET  /metrics                            Prometheus

An unknown seed track is not an error inside the engine; the API maps it
to 404 TRACK_NOT_FOUND so clients can tell it apart from an empty result.

# Middleware

Routes share request ID propagation, real IP, panic recovery, CORS
(go-chi/cors), per-IP rate limiting (go-chi/httprate), security headers
and Prometheus instrumentation. Health and metrics endpoints are not rate
limited.
*/
package api
