// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSetupChi_ResponseHeaders(t *testing.T) {
	t.Parallel()

	f := newFakeUpstreams(t)
	router := newTestRouter(t, f)

	for _, target := range []string{"/ip", "/nowhere", "/health"} {
		rec := get(t, router, target)

		h := rec.Header()
		if got := h.Get("Allow"); got != "OPTIONS, GET" {
			t.Errorf("%s: Allow = %q", target, got)
		}
		if got := h.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s: Access-Control-Allow-Origin = %q", target, got)
		}
		if got := h.Get("Access-Control-Allow-Methods"); got != "OPTIONS, GET" {
			t.Errorf("%s: Access-Control-Allow-Methods = %q", target, got)
		}
		if got := h.Get("Content-Type"); got != "application/json" {
			t.Errorf("%s: Content-Type = %q", target, got)
		}
		if _, err := uuid.Parse(h.Get("X-Request-ID")); err != nil {
			t.Errorf("%s: X-Request-ID = %q", target, h.Get("X-Request-ID"))
		}
	}
}

func TestSetupChi_Preflight(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewHandler(panicUpstream{}, 1), nil).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/weathers", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, expected 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestSetupChi_RestrictedOrigins(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewHandler(panicUpstream{}, 1), []string{"https://allowed.example"}).SetupChi()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://allowed.example", "https://allowed.example"},
		{"https://other.example", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, expected %q", tt.origin, got, tt.want)
		}
		if rec.Header().Get("Allow") != "OPTIONS, GET" {
			t.Errorf("origin %s: Allow header missing", tt.origin)
		}
	}
}

func TestSetupChi_GzipNegotiation(t *testing.T) {
	t.Parallel()

	f := newFakeUpstreams(t)
	router := newTestRouter(t, f)

	req := httptest.NewRequest(http.MethodGet, "/stations", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, expected gzip", got)
	}
}

func TestNewRouter_DefaultOrigins(t *testing.T) {
	t.Parallel()

	r := NewRouter(NewHandler(panicUpstream{}, 1), nil)
	if len(r.corsOrigins) != 1 || r.corsOrigins[0] != "*" {
		t.Errorf("corsOrigins = %v, expected [*]", r.corsOrigins)
	}
}
