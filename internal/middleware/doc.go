// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package middleware provides HTTP middleware components for the gateway.

All middleware has the func(http.Handler) http.Handler shape used by chi's
r.Use.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation IDs in
    the logging context
  - AccessLog: one zerolog line per completed request
  - Recover: panic recovery delegating the response body to the caller
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for JSON responses
  - Allow: static Allow header

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Recover(renderNastyError))
	r.Use(cors.Handler(opts))
	r.Use(middleware.Allow(http.MethodOptions, http.MethodGet))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
