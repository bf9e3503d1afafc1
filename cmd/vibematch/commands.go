// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package main

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/recommend"
	"github.com/tomtom215/vibematch/internal/validation"
)

func newTrackCmd(opts *cliOptions) *cobra.Command {
	var artist string
	cmd := &cobra.Command{
		Use:   "track NAME",
		Short: "Recommend tracks similar to a catalog track",
		Long: `Recommend tracks nearest to NAME in standardized feature space.

Names match case-insensitively. When several tracks share a name, --artist
picks the first whose artists contain the hint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			seed, recs, err := engine.RecommendByTrack(args[0], opts.count(engine), artist)
			if err != nil {
				return err
			}
			if seed == nil {
				return fmt.Errorf("track %q not found", args[0])
			}

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(struct {
					Seed            *catalog.Track             `json:"seed"`
					Recommendations []recommend.Recommendation `json:"recommendations"`
				}{seed, recs})
			}
			p.Title("Because you like %s by %s", seed.Name, seed.Artists)
			p.Recommendations(recs)
			return nil
		},
	}
	cmd.Flags().StringVar(&artist, "artist", "", "artist hint when several tracks share the name")
	return cmd
}

// moodFlags carries the mood sliders through the shared validator.
type moodFlags struct {
	Energy       float64            `json:"energy" validate:"finite"`
	Valence      float64            `json:"valence" validate:"finite"`
	Danceability float64            `json:"danceability" validate:"finite"`
	Extra        map[string]float64 `json:"extra" validate:"finitemap"`
}

func newMoodCmd(opts *cliOptions) *cobra.Command {
	var (
		in  moodFlags
		set map[string]string
	)
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Recommend tracks for target feature values",
		Long: `Recommend tracks nearest to a mood vector. Features not given keep the
catalog mean. --set overrides further features, e.g. --set tempo=128.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			extra, err := parseOverrides(set)
			if err != nil {
				return err
			}
			in.Extra = extra
			if verr := validation.ValidateStruct(&in); verr != nil {
				return verr
			}

			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			recs, err := engine.RecommendByMood(recommend.MoodQuery{
				Energy:       in.Energy,
				Valence:      in.Valence,
				Danceability: in.Danceability,
				Extra:        in.Extra,
			}, opts.count(engine))
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(recs)
			}
			p.Title("Tracks for energy=%g valence=%g danceability=%g", in.Energy, in.Valence, in.Danceability)
			p.Recommendations(recs)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&in.Energy, "energy", 0, "target energy (0-1)")
	flags.Float64Var(&in.Valence, "valence", 0, "target valence (0-1)")
	flags.Float64Var(&in.Danceability, "danceability", 0, "target danceability (0-1)")
	flags.StringToStringVar(&set, "set", nil, "extra feature targets as name=value")
	_ = cmd.MarkFlagRequired("energy")
	_ = cmd.MarkFlagRequired("valence")
	_ = cmd.MarkFlagRequired("danceability")
	return cmd
}

// parseOverrides converts --set pairs to feature values.
func parseOverrides(set map[string]string) (map[string]float64, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(set))
	for name, raw := range set {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %q is not a number", name, raw)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func newPresetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "preset MOOD",
		Short:     "Recommend tracks for a named mood",
		Args:      cobra.ExactArgs(1),
		ValidArgs: recommend.MoodLabels(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := recommend.LookupMood(args[0]); err != nil {
				return fmt.Errorf("%w (valid: %s)", err, strings.Join(recommend.MoodLabels(), ", "))
			}
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			recs, err := engine.RecommendByPreset(args[0], opts.count(engine))
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(recs)
			}
			p.Title("%s vibes", strings.ToLower(args[0]))
			p.Recommendations(recs)
			return nil
		},
	}
}

func newFilterCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "filter MOOD",
		Short:     "Sample catalog tracks matching a mood rule",
		Args:      cobra.ExactArgs(1),
		ValidArgs: recommend.MoodLabels(),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			tracks, err := engine.FilterByMood(args[0], opts.count(engine))
			if err != nil {
				return err
			}
			return writeTracks(cmd, opts, tracks, "Tracks matching %s", strings.ToLower(args[0]))
		},
	}
}

func newMoodsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List mood presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(recommend.Moods())
			}
			p.Moods(recommend.Moods())
			return nil
		},
	}
}

func newClustersCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Describe the k-means clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			summaries := engine.DescribeClusters()

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(summaries)
			}
			p.Title("%d clusters", len(summaries))
			p.Clusters(summaries)
			return nil
		},
	}
}

func newSampleCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample CLUSTER",
		Short: "Sample tracks from one cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cluster id %q", args[0])
			}
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			tracks, err := engine.SampleClusterTracks(id, opts.count(engine))
			if err != nil {
				return err
			}
			return writeTracks(cmd, opts, tracks, "Cluster %d", id)
		},
	}
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	var artist string
	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Find catalog tracks by name or artist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}
			if strings.TrimSpace(query) == "" && strings.TrimSpace(artist) == "" {
				return errors.New("give a QUERY, --artist, or both")
			}
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			tracks := engine.SearchTracks(query, artist, opts.n)
			return writeTracks(cmd, opts, tracks, "%d matches", len(tracks))
		},
	}
	cmd.Flags().StringVar(&artist, "artist", "", "artist substring")
	return cmd
}

func newStatusCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Build the engine and report catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
			if p.jsonOut {
				return p.JSON(engine.Status())
			}
			p.Status(engine.Status())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vibematch %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func writeTracks(cmd *cobra.Command, opts *cliOptions, tracks []*catalog.Track, title string, args ...interface{}) error {
	p := newPrinter(cmd.OutOrStdout(), opts.jsonOut)
	if p.jsonOut {
		return p.JSON(tracks)
	}
	p.Title(title, args...)
	p.Tracks(tracks)
	return nil
}
