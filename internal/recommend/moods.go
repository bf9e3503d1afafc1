// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Mood is a named preset: slider targets for RecommendByPreset and a
// threshold rule for FilterByMood.
type Mood struct {
	Label       string `json:"label"`
	Description string `json:"description"`

	// Target holds the slider values routed through RecommendByMood.
	Target MoodQuery `json:"target"`

	// Rule is the catalog filter. A condition on a feature the catalog
	// does not carry is skipped.
	Rule []Condition `json:"rule"`
}

// Condition bounds one raw feature value. Zero bounds are unset unless the
// matching Has flag is true.
type Condition struct {
	Feature string  `json:"feature"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	HasMin  bool    `json:"-"`
	HasMax  bool    `json:"-"`

	// Inclusive makes both bounds inclusive. Bounds are strict otherwise.
	Inclusive bool `json:"inclusive,omitempty"`
}

func above(feature string, v float64) Condition {
	return Condition{Feature: feature, Min: v, HasMin: true}
}

func below(feature string, v float64) Condition {
	return Condition{Feature: feature, Max: v, HasMax: true}
}

func between(feature string, lo, hi float64) Condition {
	return Condition{Feature: feature, Min: lo, Max: hi, HasMin: true, HasMax: true, Inclusive: true}
}

// Match reports whether v satisfies the condition.
func (c Condition) Match(v float64) bool {
	if c.HasMin {
		if c.Inclusive && v < c.Min || !c.Inclusive && v <= c.Min {
			return false
		}
	}
	if c.HasMax {
		if c.Inclusive && v > c.Max || !c.Inclusive && v >= c.Max {
			return false
		}
	}
	return true
}

// moods is the preset table, keyed by label.
var moods = map[string]Mood{
	"happy": {
		Label:       "happy",
		Description: "Bright, positive and upbeat",
		Target:      MoodQuery{Energy: 0.75, Valence: 0.85, Danceability: 0.65},
		Rule:        []Condition{above("valence", 0.7), above("energy", 0.5)},
	},
	"sad": {
		Label:       "sad",
		Description: "Low valence, slower tempo",
		Target: MoodQuery{Energy: 0.3, Valence: 0.2, Danceability: 0.4,
			Extra: map[string]float64{"tempo": 95}},
		Rule: []Condition{below("valence", 0.4), below("tempo", 115)},
	},
	"calm": {
		Label:       "calm",
		Description: "Quiet, acoustic and relaxed",
		Target: MoodQuery{Energy: 0.25, Valence: 0.5, Danceability: 0.4,
			Extra: map[string]float64{"acousticness": 0.75}},
		Rule: []Condition{below("energy", 0.5), above("acousticness", 0.5)},
	},
	"energetic": {
		Label:       "energetic",
		Description: "High energy and danceable",
		Target:      MoodQuery{Energy: 0.9, Valence: 0.6, Danceability: 0.75},
		Rule:        []Condition{above("energy", 0.75), above("danceability", 0.6)},
	},
	"focus": {
		Label:       "focus",
		Description: "Balanced and mostly instrumental",
		Target: MoodQuery{Energy: 0.5, Valence: 0.5, Danceability: 0.5,
			Extra: map[string]float64{"speechiness": 0.05}},
		Rule: []Condition{between("energy", 0.3, 0.7), between("valence", 0.3, 0.7), below("speechiness", 0.33)},
	},
	"party": {
		Label:       "party",
		Description: "Danceable, loud and cheerful",
		Target:      MoodQuery{Energy: 0.85, Valence: 0.75, Danceability: 0.85},
		Rule:        []Condition{above("danceability", 0.7), above("energy", 0.7)},
	},
}

// LookupMood returns the preset for a label, case-insensitively.
func LookupMood(label string) (Mood, error) {
	m, ok := moods[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return Mood{}, fmt.Errorf("%w: %q", ErrUnknownMood, label)
	}
	return m, nil
}

// Moods returns every preset sorted by label.
func Moods() []Mood {
	out := make([]Mood, 0, len(moods))
	for _, m := range moods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// MoodLabels returns the preset labels sorted.
func MoodLabels() []string {
	labels := make([]string, 0, len(moods))
	for l := range moods {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
