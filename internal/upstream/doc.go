// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package upstream talks to the three services the gateway aggregates:
ip-api.com for IP geolocation, transport.opendata.ch for stations and
departures, and OpenWeatherMap for current weather and forecasts.

Every operation first checks its parameter set. A set that does not satisfy
the route's rule yields an *ErrorPayload and no network call is made:

	_, err := client.Weather(ctx, params.New("q", "Paris", "lat", "1"), false)
	// err.Error() == "Request contains too many parameters (q,lat,lon)"

Decoded bodies are returned as plain Go values (map[string]any, []any and
scalars) so they can be forwarded unchanged or walked with package jsonpath.
Upstream bodies that themselves carry an "errors" key are returned as
results; AsErrorPayload detects them when a caller needs to short-circuit.

Network failures, timeouts, undecodable bodies and open circuit breakers are
reported as *UpstreamError. Each service sits behind its own gobreaker circuit
breaker when enabled (off by default), and every call is recorded in the upstream_* Prometheus
metrics.
*/
package upstream
