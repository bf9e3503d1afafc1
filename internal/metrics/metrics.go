// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds used as the "kind" label.
const (
	KindTrack   = "track"
	KindMood    = "mood"
	KindPreset  = "preset"
	KindFilter  = "filter"
	KindSample  = "sample"
	KindSearch  = "search"
	KindCluster = "clusters"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Catalog Metrics
	CatalogTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vibematch_catalog_tracks",
			Help: "Number of tracks in the built catalog",
		},
	)

	CatalogDroppedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vibematch_catalog_dropped_rows",
			Help: "Raw rows dropped for missing feature values",
		},
	)

	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vibematch_build_duration_seconds",
			Help:    "Time to load, standardize and fit the catalog",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120}, // Large catalogs take tens of seconds
		},
	)

	Clusters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vibematch_clusters",
			Help: "Number of clusters in the fitted model",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibematch_queries_total",
			Help: "Total number of engine queries",
		},
		[]string{"kind", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibematch_query_duration_seconds",
			Help:    "Engine query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	QueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibematch_query_results",
			Help:    "Number of tracks returned per query",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 25, 50},
		},
		[]string{"kind"},
	)

	// Cache Metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibematch_cache_lookups_total",
			Help: "Result cache lookups by cache and result (hit or miss)",
		},
		[]string{"cache", "result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordBuild records the outcome of a catalog build.
func RecordBuild(tracks, dropped, clusters int, duration time.Duration) {
	CatalogTracks.Set(float64(tracks))
	CatalogDroppedRows.Set(float64(dropped))
	Clusters.Set(float64(clusters))
	BuildDuration.Observe(duration.Seconds())
}

// RecordQuery records an engine query metric
func RecordQuery(kind, outcome string, results int, duration time.Duration) {
	QueriesTotal.WithLabelValues(kind, outcome).Inc()
	QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome != OutcomeError {
		QueryResults.WithLabelValues(kind).Observe(float64(results))
	}
}

// RecordCacheLookup records a result cache hit or miss
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
