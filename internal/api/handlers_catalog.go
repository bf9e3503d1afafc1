// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vibematch/internal/recommend"
)

// SearchTracks handles GET /api/v1/tracks/search.
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}

	limit, err := intParam(r, "limit", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	q := r.URL.Query()
	req := searchQuery{Query: q.Get("q"), Artist: q.Get("artist"), Limit: limit}
	if !validate(rw, &req) {
		return
	}

	tracks := e.SearchTracks(req.Query, req.Artist, req.Limit)
	rw.SuccessList(toTracks(tracks, e.Snapshot().Features()), len(tracks))
}

// MoodResponse describes a preset.
type MoodResponse struct {
	Label       string              `json:"label"`
	Description string              `json:"description"`
	Target      recommend.MoodQuery `json:"target"`
}

// ListMoods handles GET /api/v1/moods.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods := recommend.Moods()
	out := make([]MoodResponse, len(moods))
	for i, m := range moods {
		out[i] = MoodResponse{Label: m.Label, Description: m.Description, Target: m.Target}
	}
	NewResponseWriter(w, r).SuccessList(out, len(out))
}

// FilterByMood handles GET /api/v1/moods/{label}/tracks.
func (h *Handler) FilterByMood(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}

	req, ok := presetRequest(rw, r, e)
	if !ok {
		return
	}
	tracks, err := e.FilterByMood(req.Label, req.N)
	if err != nil {
		engineError(rw, err)
		return
	}
	rw.SuccessList(toTracks(tracks, e.Snapshot().Features()), len(tracks))
}

// DescribeClusters handles GET /api/v1/clusters.
func (h *Handler) DescribeClusters(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}
	clusters := e.DescribeClusters()
	rw.SuccessList(clusters, len(clusters))
}

// SampleClusterTracks handles GET /api/v1/clusters/{id}/tracks.
func (h *Handler) SampleClusterTracks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("cluster id must be an integer")
		return
	}
	n, err := intParam(r, "n", e.Config().Limits.DefaultK)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := clusterQuery{N: n}
	if !validate(rw, &req) {
		return
	}

	tracks, err := e.SampleClusterTracks(id, req.N)
	if err != nil {
		engineError(rw, err)
		return
	}
	rw.SuccessList(toTracks(tracks, e.Snapshot().Features()), len(tracks))
}
