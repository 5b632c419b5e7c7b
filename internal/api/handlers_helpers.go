// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/params"
	"github.com/tomtom215/stationweather/internal/upstream"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + nastyErrorPrefix + `response encoding failed"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respond writes a handler outcome. Error payloads are ordinary responses;
// any other error is a nasty error.
func respond(w http.ResponseWriter, r *http.Request, result any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}

	var payload *upstream.ErrorPayload
	if errors.As(err, &payload) {
		logging.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("payload", payload.Error()).
			Msg("Returning error payload")
		writeJSON(w, http.StatusOK, payload.Body())
		return
	}

	respondNastyError(w, r, err)
}

// respondNastyError renders an unhandled failure with HTTP 500.
func respondNastyError(w http.ResponseWriter, r *http.Request, err error) {
	event := logging.Ctx(r.Context()).Error()
	if errors.Is(err, context.Canceled) {
		// the client went away; nobody reads this response
		event = logging.Ctx(r.Context()).Debug()
	}

	var upErr *upstream.UpstreamError
	if errors.As(err, &upErr) {
		event = event.Str("service", upErr.Service)
	}
	event.Err(err).Str("path", r.URL.Path).Msg("Request failed")

	writeJSON(w, http.StatusInternalServerError, errorBody{Error: nastyErrorPrefix + err.Error()})
}

// notFound answers unknown routes and unsupported methods alike.
func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, errorBody{Error: notFoundMessage})
}

// queryParams builds the ordered parameter set of a request.
func queryParams(r *http.Request) params.Set {
	return params.FromRawQuery(r.URL.RawQuery)
}
