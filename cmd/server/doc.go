// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package main is the entry point for the stationweather gateway.

The gateway answers "what is the weather where the trains from my nearest
station are going?" by chaining three public upstreams: an IP geolocation
service, a public-transport API and a weather API. It holds no state between
requests.

# Startup

 1. Configuration: koanf v2 layering defaults, an optional YAML file and
    environment variables
 2. Logging: zerolog with JSON or console output
 3. Upstream client: per-service circuit breakers around net/http
 4. Router: chi with request ID, access log, recovery, CORS, metrics and
    gzip middleware
 5. Supervisor tree: suture v4 running the HTTP server

	RootSupervisor ("stationweather")
	└── APISupervisor ("api-layer")
	    └── HTTP Server

# Running

	WEATHER_API_KEY=your-openweathermap-key ./stationweather

	curl 'http://localhost:4567/weathers?sort=HUMIDITY'
	curl 'http://localhost:4567/future_weathers?x=3'

Only WEATHER_API_KEY is required; see package config for every setting.

# Shutdown

SIGINT or SIGTERM cancels the tree. In-flight requests get up to
HTTP_SHUTDOWN_TIMEOUT to finish; a service that does not stop in time is
logged and the process exits non-zero.
*/
package main
