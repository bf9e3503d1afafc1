// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto at
package init, so importing the package is enough to expose them.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Catalog Metrics:
  - vibematch_catalog_tracks: Tracks in the built catalog (gauge)
  - vibematch_catalog_dropped_rows: Rows dropped for missing features (gauge)
  - vibematch_build_duration_seconds: Load, standardize and fit time (histogram)
  - vibematch_clusters: Fitted cluster count (gauge)

Query Metrics:
  - vibematch_queries_total: Engine queries (counter)
    Labels: kind (track, mood, preset, filter, sample, search, clusters),
    outcome (ok, not_found, error)
  - vibematch_query_duration_seconds: Query latency (histogram)
    Labels: kind
  - vibematch_query_results: Tracks returned per query (histogram)
    Labels: kind

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

# Usage

	start := time.Now()
	recs, err := engine.RecommendByMood(q, 10)
	metrics.RecordQuery(metrics.KindMood, metrics.OutcomeOK, len(recs), time.Since(start))

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
