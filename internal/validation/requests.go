// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package validation

// ForecastQuery is the parsed query of /future_weathers.
// Days is a float so that "2.0" passes and "2.5" fails the integral check.
type ForecastQuery struct {
	Days float64 `validate:"min=1,max=5,integral"`
	Sort string  `validate:"omitempty,max=32,alpha"`
}

// WeathersQuery is the parsed query of /weathers.
type WeathersQuery struct {
	Sort string `validate:"omitempty,max=32,alpha"`
}
