// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator (initialized once, struct info
// cached) and translates field errors into short human-readable messages.
//
// # Custom Validators
//
//   - integral: a float field must hold a whole number
//
// # Request Structs
//
// ForecastQuery and WeathersQuery describe the composed routes' query
// strings. Handlers parse raw query values into them and decide per field
// how a failure is reported:
//
//	q := validation.ForecastQuery{Days: days, Sort: sort}
//	if err := validation.ValidateStruct(&q); err != nil {
//	    if err.HasField("Days") {
//	        // reject the request
//	    }
//	    // an invalid Sort falls back to the default key
//	}
package validation
