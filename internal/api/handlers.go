// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tomtom215/vibematch/internal/cache"
	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend"
	"github.com/tomtom215/vibematch/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Handler serves the API over a built engine. The engine may be installed
// after construction; until then query endpoints answer 503.
type Handler struct {
	state     atomic.Pointer[served]
	cacheSize int
}

// served pairs an engine with the result cache filled from it.
type served struct {
	engine *recommend.Engine

	// tracks memoizes track recommendations. nil when caching is disabled.
	tracks *cache.LRU[trackKey, TrackRecommendationsResponse]
}

// trackKey identifies a track query after normalization.
type trackKey struct {
	name   string
	artist string
	n      int
}

func newTrackKey(name, artist string, n int) trackKey {
	return trackKey{
		name:   strings.ToLower(strings.TrimSpace(name)),
		artist: strings.ToLower(strings.TrimSpace(artist)),
		n:      n,
	}
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCacheSize bounds the track result cache. Zero or less disables it.
func WithCacheSize(n int) HandlerOption {
	return func(h *Handler) {
		h.cacheSize = n
	}
}

// NewHandler creates a handler. engine may be nil.
func NewHandler(engine *recommend.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{cacheSize: cache.DefaultCapacity}
	for _, opt := range opts {
		opt(h)
	}
	if engine != nil {
		h.SetEngine(engine)
	}
	return h
}

// SetEngine installs the engine and marks the handler ready. Results cached
// from a previous engine are dropped.
func (h *Handler) SetEngine(engine *recommend.Engine) {
	s := &served{engine: engine}
	if h.cacheSize > 0 {
		s.tracks = cache.NewLRU[trackKey, TrackRecommendationsResponse](h.cacheSize)
	}
	h.state.Store(s)
}

// readyState returns the installed engine and cache, or writes 503 and
// returns nil.
func (h *Handler) readyState(rw *ResponseWriter) *served {
	s := h.state.Load()
	if s == nil {
		rw.ServiceUnavailable("Catalog is still being built")
	}
	return s
}

// ready returns the engine, or writes 503 and returns nil.
func (h *Handler) ready(rw *ResponseWriter) *recommend.Engine {
	if s := h.readyState(rw); s != nil {
		return s.engine
	}
	return nil
}

// TrackResponse is the wire form of a catalog track.
type TrackResponse struct {
	Index      int                `json:"index"`
	ID         string             `json:"track_id,omitempty"`
	Name       string             `json:"track_name,omitempty"`
	Artists    string             `json:"artists,omitempty"`
	Genre      string             `json:"track_genre,omitempty"`
	SpotifyURL string             `json:"spotify_url,omitempty"`
	Features   map[string]float64 `json:"features"`
}

// RecommendationResponse is one ranked result.
type RecommendationResponse struct {
	Track    TrackResponse `json:"track"`
	Distance float64       `json:"distance"`
	Cluster  int           `json:"cluster"`
}

// TrackRecommendationsResponse is the result of a track query.
type TrackRecommendationsResponse struct {
	Seed            TrackResponse            `json:"seed"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

func toTrack(t *catalog.Track, features []string) TrackResponse {
	values := make(map[string]float64, len(features))
	for i, name := range features {
		values[name] = t.Features[i]
	}
	return TrackResponse{
		Index:      t.Index,
		ID:         t.ID,
		Name:       t.Name,
		Artists:    t.Artists,
		Genre:      t.Genre,
		SpotifyURL: t.SpotifyURL(),
		Features:   values,
	}
}

func toTracks(tracks []*catalog.Track, features []string) []TrackResponse {
	out := make([]TrackResponse, len(tracks))
	for i, t := range tracks {
		out[i] = toTrack(t, features)
	}
	return out
}

func toRecommendations(recs []recommend.Recommendation, features []string) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		out[i] = RecommendationResponse{
			Track:    toTrack(r.Track, features),
			Distance: r.Distance,
			Cluster:  r.Cluster,
		}
	}
	return out
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}

// boundN caps a validated result size to the engine's configured MaxK.
func boundN(e *recommend.Engine, n int) int {
	return min(n, e.Config().Limits.MaxK)
}

// validate writes a 400 and returns false when req fails validation.
func validate(rw *ResponseWriter, req interface{}) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// engineError maps engine errors to responses.
func engineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrUnknownCluster):
		rw.NotFound(ErrCodeUnknownCluster, err.Error())
	case errors.Is(err, recommend.ErrUnknownMood):
		rw.NotFound(ErrCodeUnknownMood, err.Error())
	default:
		rw.InternalError(err)
	}
}
