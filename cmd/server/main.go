// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/vibematch/internal/api"
	"github.com/tomtom215/vibematch/internal/catalog"
	"github.com/tomtom215/vibematch/internal/config"
	"github.com/tomtom215/vibematch/internal/logging"
	"github.com/tomtom215/vibematch/internal/recommend"
	"github.com/tomtom215/vibematch/internal/supervisor"
	"github.com/tomtom215/vibematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("format", cfg.Catalog.Format).
		Int("clusters", cfg.Model.Clusters).
		Int64("seed", cfg.Model.Seed).
		Msg("Configuration loaded")

	// Signals keep their default behavior until the engine is built.
	engine, err := buildEngine(context.Background(), cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := newServer(cfg, engine)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildEngine loads the catalog and fits every model.
func buildEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	src, err := catalog.NewSource(cfg.Catalog.Format, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	engine, err := recommend.Build(ctx, cfg.EngineConfig(), src, logging.WithComponent("engine"))
	if err != nil {
		return nil, fmt.Errorf("build engine from %s: %w", src, err)
	}

	st := engine.Status()
	logging.Info().
		Int("tracks", st.Tracks).
		Int("dropped", st.DroppedRows).
		Int("clusters", st.Clusters).
		Float64("inertia", st.Inertia).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendation engine ready")
	return engine, nil
}

// middlewareConfig maps the security section onto the router middleware.
func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = append([]string(nil), cfg.Security.CORSOrigins...)
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}

func newServer(cfg *config.Config, engine *recommend.Engine) *http.Server {
	handler := api.NewHandler(engine, api.WithCacheSize(cfg.Server.CacheSize))
	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(cfg)))
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}
