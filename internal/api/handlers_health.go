// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"net/http"

	"github.com/tomtom215/vibematch/internal/cache"
	"github.com/tomtom215/vibematch/internal/recommend"
)

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 until the
// engine is installed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}
	rw.Success(map[string]interface{}{
		"status": "ready",
		"tracks": e.Snapshot().Len(),
	})
}

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	Engine  recommend.Status  `json:"engine"`
	Metrics recommend.Metrics `json:"metrics"`

	// Cache reports the track result cache. Absent when caching is off.
	Cache *cache.Stats `json:"cache,omitempty"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s := h.readyState(rw)
	if s == nil {
		return
	}
	resp := StatusResponse{Engine: s.engine.Status(), Metrics: s.engine.Metrics()}
	if s.tracks != nil {
		st := s.tracks.Stats()
		resp.Cache = &st
	}
	rw.Success(resp)
}
