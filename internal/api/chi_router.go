// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/stationweather/internal/middleware"
)

// allowedMethods is the whole method surface of the gateway.
var allowedMethods = []string{http.MethodOptions, http.MethodGet}

// Router wires handlers and middleware into a Chi router.
type Router struct {
	handler     *Handler
	corsOrigins []string
}

// NewRouter creates a router. corsOrigins defaults to any origin when empty.
func NewRouter(handler *Handler, corsOrigins []string) *Router {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Router{handler: handler, corsOrigins: corsOrigins}
}

// corsMiddleware answers preflight requests and sets CORS headers for
// allowed origins. With a wildcard origin the headers are sent on every
// response, Origin header or not.
func (router *Router) corsMiddleware() []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		cors.Handler(cors.Options{
			AllowedOrigins: router.corsOrigins,
			AllowedMethods: allowedMethods,
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         86400,
		}),
	}
	if slices.Contains(router.corsOrigins, "*") {
		mws = append([]func(http.Handler) http.Handler{middleware.StaticHeaders(
			"Access-Control-Allow-Origin", "*",
			"Access-Control-Allow-Methods", "OPTIONS, GET",
		)}, mws...)
	}
	return mws
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)                  // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)                  // Extract real IP from X-Forwarded-For
	r.Use(middleware.AccessLog)                  // One line per request
	r.Use(middleware.Recover(respondNastyError)) // Panics become nasty errors
	r.Use(router.corsMiddleware()...)            // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.Allow(allowedMethods...))   // Allow: OPTIONS, GET
	r.Use(middleware.PrometheusMetrics)          // Labelled by route pattern
	r.Use(middleware.Compression)                // gzip JSON for clients that accept it

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ========================
	// Upstream Proxies
	// ========================
	r.Get("/ip", router.handler.IP)
	r.Get("/locations", router.handler.Locations)
	r.Get("/connections", router.handler.Connections)
	r.Get("/stationboard", router.handler.Stationboard)
	r.Get("/weather", router.handler.Weather)

	// ========================
	// Composed Views
	// ========================
	r.Get("/stations", router.handler.Stations)
	r.Get("/weathers", router.handler.Weathers)
	r.Get("/future_weathers", router.handler.FutureWeathers)

	return r
}
