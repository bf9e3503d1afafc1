// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/vibematch/internal/catalog"
)

// Snapshot is the built catalog store: cleaned tracks, standardized matrix,
// fitted scaler and models, and derived cluster labels. Row i of every
// field describes the same track. A Snapshot is never modified after Build.
type Snapshot struct {
	frame  *catalog.Frame
	matrix [][]float64
	scaler *catalog.Scaler
	models *Models
	labels []int

	// members maps a cluster id to its rows in ascending order.
	members map[int][]int

	// summaries is the precomputed cluster report, ordered by cluster id.
	summaries []ClusterSummary

	// byName maps a lower-cased track name to its rows in catalog order.
	byName map[string][]int

	source        string
	rawRows       int
	builtAt       time.Time
	buildDuration time.Duration
}

func newSnapshot(prepared *catalog.Prepared, models *Models, source string) *Snapshot {
	labels := models.KMeans.Labels()
	s := &Snapshot{
		frame:   prepared.Frame,
		matrix:  prepared.Matrix,
		scaler:  prepared.Scaler,
		models:  models,
		labels:  labels,
		members: make(map[int][]int),
		byName:  make(map[string][]int),
		source:  source,
		rawRows: prepared.RawRows,
	}

	for i, c := range labels {
		s.members[c] = append(s.members[c], i)
	}
	if prepared.Frame.HasName {
		for i := range prepared.Frame.Tracks {
			name := strings.ToLower(prepared.Frame.Tracks[i].Name)
			if name == "" {
				continue
			}
			s.byName[name] = append(s.byName[name], i)
		}
	}
	s.summaries = summarizeClusters(prepared.Frame, s.members)
	return s
}

// Len returns the number of tracks.
func (s *Snapshot) Len() int {
	return s.frame.Len()
}

// Features returns the feature names in column order.
func (s *Snapshot) Features() []string {
	return append([]string(nil), s.frame.Features...)
}

// Track returns the track at row i. The pointer is read-only.
func (s *Snapshot) Track(i int) *catalog.Track {
	return &s.frame.Tracks[i]
}

// Vector returns a copy of the standardized vector at row i.
func (s *Snapshot) Vector(i int) []float64 {
	return append([]float64(nil), s.matrix[i]...)
}

// Cluster returns the cluster id of row i.
func (s *Snapshot) Cluster(i int) int {
	return s.labels[i]
}

// Scaler returns the fit-time scaler.
func (s *Snapshot) Scaler() *catalog.Scaler {
	return s.scaler
}

// ClusterIDs returns the ids of every non-empty cluster, ascending.
func (s *Snapshot) ClusterIDs() []int {
	ids := make([]int, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// summarizeClusters computes per-cluster raw feature means.
func summarizeClusters(frame *catalog.Frame, members map[int][]int) []ClusterSummary {
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]ClusterSummary, 0, len(ids))
	for _, id := range ids {
		rows := members[id]
		sums := make([]float64, len(frame.Features))
		for _, r := range rows {
			for j, v := range frame.Tracks[r].Features {
				sums[j] += v
			}
		}

		means := make(map[string]float64, len(frame.Features))
		for j, name := range frame.Features {
			means[name] = sums[j] / float64(len(rows))
		}

		out = append(out, ClusterSummary{
			ID:    id,
			Label: clusterLabel(means),
			Size:  len(rows),
			Means: means,
		})
	}
	return out
}

// clusterLabel names a cluster by its energy/valence quadrant.
// It returns "" when either feature is not modeled.
func clusterLabel(means map[string]float64) string {
	energy, okE := means["energy"]
	valence, okV := means["valence"]
	if !okE || !okV {
		return ""
	}

	switch {
	case energy >= 0.5 && valence >= 0.5:
		return "upbeat"
	case energy >= 0.5:
		return "intense"
	case valence >= 0.5:
		return "mellow"
	default:
		return "melancholic"
	}
}
