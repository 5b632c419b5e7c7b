// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"context"
	"time"

	"github.com/tomtom215/stationweather/internal/compose"
	"github.com/tomtom215/stationweather/internal/params"
)

// Upstream is the set of upstream calls the handlers proxy directly.
// *upstream.Client satisfies it.
type Upstream interface {
	compose.Upstream
	Connections(ctx context.Context, p params.Set) (any, error)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writers
//   - handlers_proxy.go: single-upstream proxy endpoints
//   - handlers_composed.go: /stations, /weathers, /future_weathers
//   - handlers_health.go: health endpoint
type Handler struct {
	client    Upstream
	pipeline  *compose.Pipeline
	now       func() time.Time
	startTime time.Time
}

// NewHandler creates a handler over client. fanout bounds the weather
// calls in flight per composed request.
//
// Example:
//
//	client := upstream.NewClient(cfg.ClientConfig())
//	handler := api.NewHandler(client, cfg.Fanout.Concurrency)
//	router := api.NewRouter(handler, cfg.Security.CORSOrigins)
//	http.ListenAndServe(":4567", router.SetupChi())
func NewHandler(client Upstream, fanout int) *Handler {
	return &Handler{
		client:    client,
		pipeline:  compose.NewPipeline(client, fanout),
		now:       time.Now,
		startTime: time.Now(),
	}
}

// WithClock replaces the clock used for the forecast window (tests).
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}
