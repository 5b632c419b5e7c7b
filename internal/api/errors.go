// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

// Fixed client-facing messages.
const (
	notFoundMessage     = "Ooops, this route does not seem exist"
	nastyErrorPrefix    = "Sorry there was a nasty error - "
	forecastDaysMessage = "Parameter x must be a number from 1 to 5."
)

// errorBody is the single-message body of routing and internal failures.
type errorBody struct {
	Error string `json:"error"`
}
