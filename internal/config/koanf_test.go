// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/vibematch/internal/recommend"
)

// clearEnv unsets every mapped variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envMappings {
		key := strings.ToUpper(name)
		if v, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, v) })
			os.Unsetenv(key)
		}
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Catalog.Format != "csv" {
		t.Errorf("Catalog.Format = %q, want csv", cfg.Catalog.Format)
	}
	if cfg.Model.Clusters != 5 || cfg.Model.Neighbors != 30 || cfg.Model.Seed != 42 {
		t.Errorf("Model = %+v", cfg.Model)
	}
	if cfg.Server.Port != 8080 || cfg.Server.CacheSize != 1024 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestEngineConfig_MatchesDefaults(t *testing.T) {
	t.Parallel()
	got := defaultConfig().EngineConfig()
	want := recommend.DefaultConfig()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EngineConfig() = %+v\nwant %+v", got, want)
	}
}

func TestEngineConfig_CopiesFeatures(t *testing.T) {
	t.Parallel()
	cfg := defaultConfig()
	ec := cfg.EngineConfig()
	ec.Features[0] = "mutated"
	if cfg.Catalog.Features[0] == "mutated" {
		t.Error("EngineConfig shares the feature slice")
	}
}

// The tests below modify the process environment.

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("LoadFile(\"\") = %+v\nwant defaults", cfg)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
catalog:
  path: /srv/catalog.parquet
  format: duckdb
  features: [energy, valence, tempo]
model:
  clusters: 8
  neighbors: 40
server:
  port: 9000
  read_timeout: 5s
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Catalog.Path != "/srv/catalog.parquet" || cfg.Catalog.Format != "duckdb" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if !reflect.DeepEqual(cfg.Catalog.Features, []string{"energy", "valence", "tempo"}) {
		t.Errorf("Features = %v", cfg.Catalog.Features)
	}
	if cfg.Model.Clusters != 8 || cfg.Model.Neighbors != 40 {
		t.Errorf("Model = %+v", cfg.Model)
	}
	if cfg.Server.Port != 9000 || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "model:\n  clusters: 8\nserver:\n  port: 9000\n")

	t.Setenv("MODEL_CLUSTERS", "3")
	t.Setenv("CATALOG_FEATURES", "energy, valence ,danceability")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Model.Clusters != 3 {
		t.Errorf("Clusters = %d, want 3 from env", cfg.Model.Clusters)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Catalog.Features, []string{"energy", "valence", "danceability"}) {
		t.Errorf("Features = %v", cfg.Catalog.Features)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v", cfg.Security.RateLimitWindow)
	}
	if !cfg.Logging.Caller {
		t.Error("LOG_CALLER not applied")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad format", map[string]string{"CATALOG_FORMAT": "xml"}},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"zero clusters", map[string]string{"MODEL_CLUSTERS": "0"}},
		{"max k beyond neighbors", map[string]string{"LIMITS_MAX_K": "40"}},
		{"zero rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
		{"negative cache size", map[string]string{"HTTP_CACHE_SIZE": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFile(""); err == nil {
				t.Error("LoadFile succeeded, want validation error")
			}
		})
	}
}

func TestLoadFile_EngineErrorsAreTyped(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_NEIGHBORS", "0")

	_, err := LoadFile("")
	if !errors.Is(err, recommend.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadFile_RateLimitDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled = false")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile succeeded for a missing file")
	}
}

func TestFindConfigFile_EnvVar(t *testing.T) {
	path := writeYAML(t, "model:\n  clusters: 4\n")
	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"CATALOG_PATH": "catalog.path",
		"HTTP_PORT":    "server.port",
		"log_level":    "logging.level",
		"PATH":         "",
		"HOME":         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	got := splitList(" a, ,b,c ,")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("splitList = %v", got)
	}
	if splitList(" , ") != nil {
		t.Error("splitList of blanks should be nil")
	}
}
