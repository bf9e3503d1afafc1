// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/config"
	"github.com/tomtom215/vibematch/internal/logging"
	"github.com/tomtom215/vibematch/internal/recommend"
)

// cliOptions holds the persistent flags shared by every query command.
type cliOptions struct {
	configFile string
	catalog    string
	format     string
	clusters   int
	seed       int64
	n          int
	jsonOut    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "vibematch",
		Short: "Recommend music by audio features",
		Long: `VibeMatch recommends tracks from a catalog of audio features.

The catalog is loaded and modeled on every invocation, so results match
the HTTP server for the same catalog, feature list and seed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := logging.DefaultConfig()
			cfg.Format = "console"
			cfg.Level = "warn"
			if opts.verbose {
				cfg.Level = "debug"
			}
			cfg.Output = cmd.ErrOrStderr()
			logging.Init(cfg)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (default: search config.yaml)")
	flags.StringVar(&opts.catalog, "catalog", "", "catalog file path (overrides config)")
	flags.StringVar(&opts.format, "format", "", "catalog format: csv or duckdb (overrides config)")
	flags.IntVar(&opts.clusters, "clusters", 0, "number of k-means clusters (overrides config)")
	flags.Int64Var(&opts.seed, "seed", 0, "k-means random seed (overrides config)")
	flags.IntVarP(&opts.n, "count", "n", 0, "number of results (default: configured default_k)")
	flags.BoolVar(&opts.jsonOut, "json", false, "write JSON instead of a table")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newTrackCmd(opts),
		newMoodCmd(opts),
		newPresetCmd(opts),
		newFilterCmd(opts),
		newMoodsCmd(opts),
		newClustersCmd(opts),
		newSampleCmd(opts),
		newSearchCmd(opts),
		newStatusCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig applies flag overrides on top of the file and environment.
func (o *cliOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog.Path = o.catalog
	}
	if flags.Changed("format") {
		cfg.Catalog.Format = o.format
	}
	if flags.Changed("clusters") {
		cfg.Model.Clusters = o.clusters
	}
	if flags.Changed("seed") {
		cfg.Model.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// engine loads the configuration and builds the engine.
func (o *cliOptions) engine(cmd *cobra.Command) (*recommend.Engine, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	src, err := catalog.NewSource(cfg.Catalog.Format, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	engine, err := recommend.Build(ctx, cfg.EngineConfig(), src, logging.WithComponent("cli"))
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return engine, nil
}

// count returns the -n flag capped to the configured max_k, or the engine's
// default result size.
func (o *cliOptions) count(engine *recommend.Engine) int {
	limits := engine.Config().Limits
	if o.n <= 0 {
		return limits.DefaultK
	}
	return min(o.n, limits.MaxK)
}
