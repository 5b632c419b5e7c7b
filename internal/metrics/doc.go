// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package init and are safe for concurrent use.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:4567/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

Upstream Metrics:
  - upstream_requests_total: Calls to ip-api, transport and weather (counter)
    Labels: service, outcome (success, failure, rejected)
  - upstream_request_duration_seconds: Call latency (histogram)
    Labels: service

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_consecutive_failures: Consecutive failures (gauge)
  - circuit_breaker_transitions_total: State transitions (counter)
    Labels: name, from_state, to_state

Composition Metrics:
  - weather_fanout_destinations: Destinations looked up per /weathers or
    /future_weathers request (histogram)

# Usage

	start := time.Now()
	// ... call upstream ...
	metrics.RecordUpstreamCall("weather", metrics.OutcomeSuccess, time.Since(start))

HTTP request metrics are recorded by middleware.PrometheusMetrics.
*/
package metrics
