// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import "net/http"

// IP geolocates the ip query parameter, or the default address.
func (h *Handler) IP(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.IPLookup(r.Context(), queryParams(r))
	respond(w, r, result, err)
}

// Locations searches transport locations.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.LocationSearch(r.Context(), queryParams(r))
	respond(w, r, result, err)
}

// Connections searches journeys between from and to.
func (h *Handler) Connections(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.Connections(r.Context(), queryParams(r))
	respond(w, r, result, err)
}

// Stationboard lists departures of a station.
func (h *Handler) Stationboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.Stationboard(r.Context(), queryParams(r))
	respond(w, r, result, err)
}

// Weather returns current conditions for a city or a coordinate pair.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.Weather(r.Context(), queryParams(r), false)
	respond(w, r, result, err)
}
