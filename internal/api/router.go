// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vibematch/internal/middleware"
)

// NewRouter wires every endpoint and the shared middleware stack.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(APISecurityHeaders())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "No route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Get("/status", h.Status)
			r.Get("/tracks/search", h.SearchTracks)

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/track", h.RecommendByTrack)
				r.Post("/mood", h.RecommendByMood)
				r.Get("/mood/{label}", h.RecommendByPreset)
			})

			r.Get("/moods", h.ListMoods)
			r.Get("/moods/{label}/tracks", h.FilterByMood)

			r.Get("/clusters", h.DescribeClusters)
			r.Get("/clusters/{id}/tracks", h.SampleClusterTracks)
		})
	})

	return r
}
