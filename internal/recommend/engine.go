// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/metrics"
)

// Engine serves recommendation queries over one built Snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	snap   *Snapshot

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
	errorCount    atomic.Int64
}

// Build loads the catalog from src, standardizes it, fits the models and
// returns a ready engine. No query can be served before Build returns.
//
// Failures from the preprocessor (ErrDataLoad, ErrSchema, ErrEmptyCatalog)
// and from fitting (ErrInvalidClusterCount) are wrapped and returned.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Build(ctx context.Context, cfg *Config, src catalog.Source, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	logger = logger.With().Str("component", "recommend").Logger()

	start := time.Now()
	logger.Info().Str("source", src.String()).Int("features", len(cfg.Features)).Msg("building catalog")

	prepared, err := catalog.Pipeline(ctx, src, cfg.Features)
	if err != nil {
		return nil, fmt.Errorf("prepare catalog: %w", err)
	}
	if degenerate := prepared.Scaler.Degenerate(); len(degenerate) > 0 {
		logger.Warn().
			Strs("features", degenerate).
			Msg("zero-variance features scaled with std 1; they do not affect distances")
	}

	models, err := Fit(ctx, prepared.Matrix, cfg.Clusters, cfg.Neighbors, cfg)
	if err != nil {
		return nil, err
	}

	snap := newSnapshot(prepared, models, src.String())
	snap.builtAt = time.Now()
	snap.buildDuration = snap.builtAt.Sub(start)

	metrics.RecordBuild(snap.Len(), prepared.Frame.Dropped, models.KMeans.K(), snap.buildDuration)
	logger.Info().
		Int("tracks", snap.Len()).
		Int("raw_rows", prepared.RawRows).
		Int("dropped_rows", prepared.Frame.Dropped).
		Int("clusters", models.KMeans.K()).
		Int("neighbors", models.Index.Capacity()).
		Float64("inertia", models.KMeans.Inertia()).
		Int("iterations", models.KMeans.Iterations()).
		Dur("duration", snap.buildDuration).
		Msg("catalog built")

	return &Engine{
		config: cfg,
		logger: logger,
		snap:   snap,
	}, nil
}

// Snapshot returns the engine's immutable catalog store.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// RecommendByTrack recommends tracks similar to the catalog track named
// name. Matching is case-insensitive and ignores leading and trailing
// whitespace in name. When several tracks share the name, the first whose
// artists contain artistHint wins, else the first in catalog order.
//
// When no track matches, it returns a nil seed, an empty result and a nil
// error. The result never contains a track with the seed's (name, artist).
// It holds n results whenever the neighbor pool has n distinct eligible
// tracks; n is not capped here, callers bound it.
func (e *Engine) RecommendByTrack(name string, n int, artistHint string) (*catalog.Track, []Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	seed := e.resolveSeed(name, artistHint)
	if seed == nil {
		e.notFoundCount.Add(1)
		e.logger.Debug().Str("name", name).Msg("seed track not found")
		metrics.RecordQuery(metrics.KindTrack, metrics.OutcomeNotFound, 0, time.Since(start))
		return nil, []Recommendation{}, nil
	}

	pool, err := e.pool(e.snap.matrix[seed.Index], n, seed.Index)
	if err != nil {
		return nil, nil, e.fail(metrics.KindTrack, start, err)
	}

	seedKey := e.snap.frame.KeyOf(seed.Index)
	recs := e.Dedupe(pool, n, &seedKey)

	e.logger.Debug().
		Str("seed", seed.Name).
		Str("artists", seed.Artists).
		Int("n", n).
		Int("pool", len(pool)).
		Int("returned", len(recs)).
		Msg("track recommendation complete")
	metrics.RecordQuery(metrics.KindTrack, metrics.OutcomeOK, len(recs), time.Since(start))
	return seed, recs, nil
}

// RecommendByMood recommends tracks nearest to a mood vector: the dataset
// mean of every feature, overwritten by the query's energy, valence,
// danceability and extra values, then standardized with the fit-time
// scaler. Values are not range-checked. Extra names that are not model
// features are ignored.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) RecommendByMood(q MoodQuery, n int) ([]Recommendation, error) {
	return e.recommendByMood(metrics.KindMood, q, n)
}

// RecommendByPreset routes a named mood preset through RecommendByMood.
func (e *Engine) RecommendByPreset(label string, n int) ([]Recommendation, error) {
	mood, err := LookupMood(label)
	if err != nil {
		e.requestCount.Add(1)
		return nil, e.fail(metrics.KindPreset, time.Now(), err)
	}
	return e.recommendByMood(metrics.KindPreset, mood.Target, n)
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) recommendByMood(kind string, q MoodQuery, n int) ([]Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	vec, err := e.MoodVector(q)
	if err != nil {
		return nil, e.fail(kind, start, err)
	}

	pool, err := e.pool(vec, n, -1)
	if err != nil {
		return nil, e.fail(kind, start, err)
	}
	recs := e.Dedupe(pool, n, nil)

	e.logger.Debug().
		Str("kind", kind).
		Float64("energy", q.Energy).
		Float64("valence", q.Valence).
		Float64("danceability", q.Danceability).
		Int("n", n).
		Int("returned", len(recs)).
		Msg("mood recommendation complete")
	metrics.RecordQuery(kind, metrics.OutcomeOK, len(recs), time.Since(start))
	return recs, nil
}

// MoodVector builds the standardized query vector for q.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) MoodVector(q MoodQuery) ([]float64, error) {
	raw := e.snap.scaler.Mean()
	for name, v := range q.Overrides() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("mood value %s is not finite", name)
		}
		j := e.snap.frame.FeatureIndex(name)
		if j < 0 {
			e.logger.Debug().Str("feature", name).Msg("ignoring override for unmodeled feature")
			continue
		}
		raw[j] = v
	}

	vec, err := e.snap.scaler.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("standardize mood vector: %w", err)
	}
	return vec, nil
}

// Dedupe keeps the closest occurrence of every (name, artist) pair, drops
// rows matching seedKey when given, and returns at most n results ascending
// by distance. Equal distances keep row order. Applying Dedupe to its own
// output returns the same sequence.
func (e *Engine) Dedupe(recs []Recommendation, n int, seedKey *catalog.Key) []Recommendation {
	if n <= 0 {
		return []Recommendation{}
	}

	sorted := append([]Recommendation(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Distance != sorted[j].Distance {
			return sorted[i].Distance < sorted[j].Distance
		}
		return sorted[i].Track.Index < sorted[j].Track.Index
	})

	seen := make(map[catalog.Key]struct{}, len(sorted))
	out := make([]Recommendation, 0, min(n, len(sorted)))
	for _, r := range sorted {
		key := e.snap.frame.KeyOf(r.Track.Index)
		if seedKey != nil && key == *seedKey {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		if len(out) == n {
			break
		}
	}
	return out
}

// pool fetches the neighbor pool for vec, without the row exclude.
func (e *Engine) pool(vec []float64, n, exclude int) ([]Recommendation, error) {
	hits, err := e.snap.models.QueryNeighbors(vec, e.config.poolSize(n))
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, len(hits))
	for _, h := range hits {
		if h.Index == exclude {
			continue
		}
		out = append(out, Recommendation{
			Track:    e.snap.Track(h.Index),
			Distance: h.Distance,
			Cluster:  e.snap.labels[h.Index],
		})
	}
	return out, nil
}

// resolveSeed finds the seed track for a name and optional artist hint.
func (e *Engine) resolveSeed(name, artistHint string) *catalog.Track {
	rows := e.snap.byName[strings.ToLower(strings.TrimSpace(name))]
	if len(rows) == 0 {
		return nil
	}

	if hint := strings.ToLower(strings.TrimSpace(artistHint)); hint != "" {
		for _, r := range rows {
			if strings.Contains(strings.ToLower(e.snap.frame.Tracks[r].Artists), hint) {
				return e.snap.Track(r)
			}
		}
	}
	return e.snap.Track(rows[0])
}

// DescribeClusters returns one summary per non-empty cluster, ordered by id.
func (e *Engine) DescribeClusters() []ClusterSummary {
	start := time.Now()
	e.requestCount.Add(1)

	out := make([]ClusterSummary, len(e.snap.summaries))
	for i, s := range e.snap.summaries {
		means := make(map[string]float64, len(s.Means))
		for k, v := range s.Means {
			means[k] = v
		}
		s.Means = means
		out[i] = s
	}

	metrics.RecordQuery(metrics.KindCluster, metrics.OutcomeOK, len(out), time.Since(start))
	return out
}

// SampleClusterTracks returns up to n tracks of a cluster chosen with the
// fixed sample seed. The same cluster and n always yield the same tracks.
// A cluster smaller than n is returned whole, in sampled order.
func (e *Engine) SampleClusterTracks(clusterID, n int) ([]*catalog.Track, error) {
	start := time.Now()
	e.requestCount.Add(1)

	rows, ok := e.snap.members[clusterID]
	if !ok {
		return nil, e.fail(metrics.KindSample, start, fmt.Errorf("%w: %d", ErrUnknownCluster, clusterID))
	}

	out := e.sample(rows, n)
	metrics.RecordQuery(metrics.KindSample, metrics.OutcomeOK, len(out), time.Since(start))
	return out, nil
}

// FilterByMood returns up to n tracks whose raw features satisfy a mood
// preset's rule, chosen with the fixed sample seed.
func (e *Engine) FilterByMood(label string, n int) ([]*catalog.Track, error) {
	start := time.Now()
	e.requestCount.Add(1)

	mood, err := LookupMood(label)
	if err != nil {
		return nil, e.fail(metrics.KindFilter, start, err)
	}

	type bound struct {
		col  int
		cond Condition
	}
	var bounds []bound
	for _, c := range mood.Rule {
		if j := e.snap.frame.FeatureIndex(c.Feature); j >= 0 {
			bounds = append(bounds, bound{col: j, cond: c})
		}
	}
	if len(bounds) == 0 {
		return nil, e.fail(metrics.KindFilter, start, fmt.Errorf("mood %q: none of its rule features are modeled", mood.Label))
	}

	var rows []int
	for i := range e.snap.frame.Tracks {
		values := e.snap.frame.Tracks[i].Features
		match := true
		for _, b := range bounds {
			if !b.cond.Match(values[b.col]) {
				match = false
				break
			}
		}
		if match {
			rows = append(rows, i)
		}
	}

	out := e.sample(rows, n)
	e.logger.Debug().Str("mood", mood.Label).Int("matches", len(rows)).Int("returned", len(out)).Msg("mood filter complete")
	metrics.RecordQuery(metrics.KindFilter, metrics.OutcomeOK, len(out), time.Since(start))
	return out, nil
}

// SearchTracks returns tracks whose name contains query and, when given,
// whose artists contain artist, case-insensitively. Results are distinct
// by (name, artist), in catalog order, capped at limit and at
// Limits.MaxSearchResults.
func (e *Engine) SearchTracks(query, artist string, limit int) []*catalog.Track {
	start := time.Now()
	e.requestCount.Add(1)

	if limit <= 0 || limit > e.config.Limits.MaxSearchResults {
		limit = e.config.Limits.MaxSearchResults
	}
	q := strings.ToLower(strings.TrimSpace(query))
	a := strings.ToLower(strings.TrimSpace(artist))

	out := []*catalog.Track{}
	if q == "" && a == "" {
		metrics.RecordQuery(metrics.KindSearch, metrics.OutcomeOK, 0, time.Since(start))
		return out
	}

	seen := make(map[catalog.Key]struct{})
	for i := range e.snap.frame.Tracks {
		t := &e.snap.frame.Tracks[i]
		if q != "" && !strings.Contains(strings.ToLower(t.Name), q) {
			continue
		}
		if a != "" && !strings.Contains(strings.ToLower(t.Artists), a) {
			continue
		}
		key := e.snap.frame.KeyOf(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}

	metrics.RecordQuery(metrics.KindSearch, metrics.OutcomeOK, len(out), time.Since(start))
	return out
}

// Status describes the built catalog and models.
func (e *Engine) Status() Status {
	s := e.snap
	return Status{
		Tracks:             s.Len(),
		RawRows:            s.rawRows,
		DroppedRows:        s.frame.Dropped,
		Features:           s.Features(),
		DegenerateFeatures: s.scaler.Degenerate(),
		Clusters:           s.models.KMeans.K(),
		Neighbors:          s.models.Index.Capacity(),
		Inertia:            s.models.KMeans.Inertia(),
		Source:             s.source,
		BuiltAt:            s.builtAt,
		BuildDuration:      s.buildDuration,
	}
}

// Metrics returns the engine query counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		NotFoundCount: e.notFoundCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

// sample draws up to n rows without replacement using a fresh source seeded
// with SampleSeed, so identical inputs give identical picks.
func (e *Engine) sample(rows []int, n int) []*catalog.Track {
	if n <= 0 || len(rows) == 0 {
		return []*catalog.Track{}
	}
	if n > len(rows) {
		n = len(rows)
	}

	rng := newSampleRand(e.config.SampleSeed)
	picked := append([]int(nil), rows...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}

	out := make([]*catalog.Track, n)
	for i := 0; i < n; i++ {
		out[i] = e.snap.Track(picked[i])
	}
	return out
}

func newSampleRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible sampling, not security
}

// fail counts and records a failed query.
func (e *Engine) fail(kind string, start time.Time, err error) error {
	e.errorCount.Add(1)
	metrics.RecordQuery(kind, metrics.OutcomeError, 0, time.Since(start))
	e.logger.Debug().Err(err).Str("kind", kind).Msg("query failed")
	return err
}
