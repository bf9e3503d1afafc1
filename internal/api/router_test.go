// VibeMatch - Audio Feature Music Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibematch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	rec, env := do(t, newTestRouter(t), http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("status %d error %+v", rec.Code, env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	rec, env := do(t, newTestRouter(t), http.MethodDelete, "/api/v1/clusters", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("status %d error %+v", rec.Code, env.Error)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()
	rec, _ := do(t, newTestRouter(t), http.MethodGet, "/api/v1/health/live", "")
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)
	do(t, h, http.MethodGet, "/api/v1/clusters", "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "vibematch_queries_total") {
		t.Error("metrics output lacks vibematch_queries_total")
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example"}
	cfg.RateLimitDisabled = true
	h := NewRouter(NewHandler(sharedEngine(t)), NewChiMiddleware(cfg))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/moods", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/moods", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	h := NewRouter(NewHandler(sharedEngine(t)), NewChiMiddleware(cfg))

	var last *httptest.ResponseRecorder
	var env envelope
	for i := 0; i < 3; i++ {
		last, env = do(t, h, http.MethodGet, "/api/v1/moods", "")
	}
	if last.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("third request: status %d error %+v", last.Code, env.Error)
	}

	// Health checks are not limited.
	if rec, _ := do(t, h, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health under limit = %d", rec.Code)
	}
}
