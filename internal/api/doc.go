// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package api provides the HTTP surface of the gateway on a Chi router.

# Routes

Proxies (parameters validated, then forwarded to one upstream):

	GET /ip             IP geolocation (optional ip)
	GET /locations      transport location search (one of query, x, y)
	GET /connections    transport connections (from and to)
	GET /stationboard   departures (one of station, id)
	GET /weather        current weather (q, or lat and lon)

Composed views:

	GET /stations         departures of the station nearest the caller
	GET /weathers         weather at each departure's destination, sorted
	GET /future_weathers  forecast for the next x days (1-5), sorted

Operations:

	GET /health   liveness
	GET /metrics  Prometheus metrics

# Response Contract

Every response is JSON with HTTP 200, except unhandled failures:

  - Upstream bodies are returned as received, including their own errors
  - Validation failures and empty results use {"errors":[{"message":...}]}
  - Unknown routes and methods return {"error":"Ooops, this route does not seem exist"}
  - Transport failures and panics return HTTP 500 with
    {"error":"Sorry there was a nasty error - <message>"}
*/
package api
