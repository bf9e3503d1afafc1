// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/vibematch/internal/logging"
	"github.com/tomtom215/vibematch/internal/metrics"
	"github.com/tomtom215/vibematch/internal/recommend"
)

// RecommendByTrack handles GET /api/v1/recommendations/track.
func (h *Handler) RecommendByTrack(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s := h.readyState(rw)
	if s == nil {
		return
	}
	e := s.engine

	n, err := intParam(r, "n", e.Config().Limits.DefaultK)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	q := r.URL.Query()
	req := trackQuery{Name: q.Get("name"), Artist: q.Get("artist"), N: n}
	if !validate(rw, &req) {
		return
	}

	req.N = boundN(e, req.N)

	key := newTrackKey(req.Name, req.Artist, req.N)
	if s.tracks != nil {
		resp, hit := s.tracks.Get(key)
		metrics.RecordCacheLookup("track", hit)
		if hit {
			rw.SuccessList(resp, len(resp.Recommendations))
			return
		}
	}

	seed, recs, err := e.RecommendByTrack(req.Name, req.N, req.Artist)
	if err != nil {
		engineError(rw, err)
		return
	}
	if seed == nil {
		logging.Ctx(r.Context()).Debug().Str("name", req.Name).Msg("Seed track not found")
		rw.NotFound(ErrCodeTrackNotFound, "No track named "+strconv.Quote(req.Name)+" in the catalog")
		return
	}

	features := e.Snapshot().Features()
	resp := TrackRecommendationsResponse{
		Seed:            toTrack(seed, features),
		Recommendations: toRecommendations(recs, features),
	}
	if s.tracks != nil {
		s.tracks.Add(key, resp)
	}
	rw.SuccessList(resp, len(recs))
}

// RecommendByMood handles POST /api/v1/recommendations/mood.
func (h *Handler) RecommendByMood(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}

	var req MoodRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return
	}
	if !validate(rw, &req) {
		return
	}
	if req.N == 0 {
		req.N = e.Config().Limits.DefaultK
	}
	req.N = boundN(e, req.N)

	recs, err := e.RecommendByMood(recommend.MoodQuery{
		Energy:       *req.Energy,
		Valence:      *req.Valence,
		Danceability: *req.Danceability,
		Extra:        req.Extra,
	}, req.N)
	if err != nil {
		engineError(rw, err)
		return
	}
	rw.SuccessList(toRecommendations(recs, e.Snapshot().Features()), len(recs))
}

// RecommendByPreset handles GET /api/v1/recommendations/mood/{label}.
func (h *Handler) RecommendByPreset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e := h.ready(rw)
	if e == nil {
		return
	}

	req, ok := presetRequest(rw, r, e)
	if !ok {
		return
	}
	recs, err := e.RecommendByPreset(req.Label, req.N)
	if err != nil {
		engineError(rw, err)
		return
	}
	rw.SuccessList(toRecommendations(recs, e.Snapshot().Features()), len(recs))
}

func presetRequest(rw *ResponseWriter, r *http.Request, e *recommend.Engine) (presetQuery, bool) {
	n, err := intParam(r, "n", e.Config().Limits.DefaultK)
	if err != nil {
		rw.BadRequest(err.Error())
		return presetQuery{}, false
	}
	req := presetQuery{Label: chi.URLParam(r, "label"), N: n}
	if !validate(rw, &req) {
		return presetQuery{}, false
	}
	req.N = boundN(e, req.N)
	return req, true
}
