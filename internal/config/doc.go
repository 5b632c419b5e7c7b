// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package config provides configuration loading and validation for the gateway.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, config.yaml, config.yml,
    /etc/stationweather/config.yaml
  - Environment variables, through an explicit mapping table

# Environment Variables

Upstream services:
  - IP_API_URL: IP geolocation base URL (default: http://ip-api.com/json)
  - TRANSPORT_API_URL: transport base URL (default: http://transport.opendata.ch/v1)
  - WEATHER_API_URL: weather base URL (default: http://api.openweathermap.org/data/2.5)
  - WEATHER_API_KEY: OpenWeatherMap API key (required)
  - UPSTREAM_TIMEOUT: per-call timeout (default: 10s)
  - UPSTREAM_BREAKER_ENABLED: circuit breakers around upstreams (default: false).
    Breaker state is shared by all requests, so failures seen by one request
    can reject another without an upstream call.

Fan-out:
  - FANOUT_CONCURRENCY: parallel weather calls per request (default: 5)

HTTP server:
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 4567)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown bound (default: 10s)
  - CORS_ORIGINS: comma-separated allowed origins (default: *)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

# Example YAML

	upstream:
	  weather_api_key: "0123456789abcdef"
	  timeout: 5s
	fanout:
	  concurrency: 3
	server:
	  port: 8080
	security:
	  cors_origins:
	    - https://example.com
*/
package config
