// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// capture swaps the global logger for one writing to a buffer and
// restores it when the test ends.
func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	cfg.Output = &buf
	Init(cfg)
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if i := strings.LastIndexByte(line, '\n'); i >= 0 {
		line = line[i+1:]
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return m
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()
	for _, l := range []string{"debug", "INFO", "warn", "disabled"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	for _, l := range []string{"", "verbose", "information"} {
		if ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = true", l)
		}
	}
}

// Tests below replace the global logger and must not run in parallel.

func TestInit_JSONFields(t *testing.T) {
	buf := capture(t, Config{Level: "debug", Format: "json", Timestamp: true})

	WithComponent("catalog").Info().Int("tracks", 3).Msg("loaded")

	m := decodeLine(t, buf)
	if m["level"] != "info" || m["message"] != "loaded" || m["component"] != "catalog" {
		t.Errorf("unexpected entry: %v", m)
	}
	if m["tracks"] != float64(3) {
		t.Errorf("tracks = %v", m["tracks"])
	}
	if _, ok := m["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestInit_LevelFilters(t *testing.T) {
	buf := capture(t, Config{Level: "warn", Format: "json"})

	Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info logged at warn level: %s", buf.String())
	}
	Err(errors.New("boom")).Msg("failed")
	m := decodeLine(t, buf)
	if m["error"] != "boom" {
		t.Errorf("error field = %v", m["error"])
	}
}

func TestInit_Console(t *testing.T) {
	buf := capture(t, Config{Level: "info", Format: "console"})
	Info().Msg("hello console")
	if !strings.Contains(buf.String(), "hello console") {
		t.Errorf("console output = %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Error("console format produced JSON")
	}
}

func TestSetLevelString(t *testing.T) {
	capture(t, Config{Level: "info", Format: "json"})
	SetLevelString("error")
	if GetLevel() != zerolog.ErrorLevel {
		t.Errorf("GetLevel() = %v", GetLevel())
	}
}

func TestCtx_RequestID(t *testing.T) {
	buf := capture(t, Config{Level: "info", Format: "json"})

	id := GenerateRequestID()
	ctx := ContextWithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, id)
	}
	Ctx(ctx).Info().Msg("with id")

	m := decodeLine(t, buf)
	if m["request_id"] != id {
		t.Errorf("request_id = %v, want %s", m["request_id"], id)
	}
}

func TestCtx_StoredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf).With().Str("component", "api").Logger()
	ctx := ContextWithLogger(context.Background(), l)

	Ctx(ctx).Debug().Msg("stored")
	m := decodeLine(t, &buf)
	if m["component"] != "api" {
		t.Errorf("component = %v", m["component"])
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context returned a request id")
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewSlogHandler(NewTestLogger(&buf))
	sl := slog.New(h).With("service", "http").WithGroup("event")

	sl.Warn("restarting", "attempt", 2, "err", errors.New("crashed"))

	m := decodeLine(t, &buf)
	if m["level"] != "warn" || m["message"] != "restarting" {
		t.Errorf("unexpected entry: %v", m)
	}
	if m["service"] != "http" {
		t.Errorf("service = %v", m["service"])
	}
	if m["event.attempt"] != float64(2) {
		t.Errorf("event.attempt = %v", m["event.attempt"])
	}
	if m["event.err"] != "crashed" {
		t.Errorf("event.err = %v", m["event.err"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()
	h := NewSlogHandler(zerolog.Nop().Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}
