// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/stationweather/internal/compose"
	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/params"
	"github.com/tomtom215/stationweather/internal/sorting"
	"github.com/tomtom215/stationweather/internal/upstream"
	"github.com/tomtom215/stationweather/internal/validation"
)

type weathersResponse struct {
	Weathers []compose.Record `json:"weathers"`
}

type futureWeathersResponse struct {
	FutureWeathers []compose.Record `json:"future_weathers"`
}

// Stations returns the next departures of the station nearest the caller.
func (h *Handler) Stations(w http.ResponseWriter, r *http.Request) {
	board, err := h.pipeline.NearestStation(r.Context(), queryParams(r))
	respond(w, r, board, err)
}

// Weathers returns the current weather at the destination of each departure,
// sorted descending by the sort parameter (TEMPERATURE by default).
func (h *Handler) Weathers(w http.ResponseWriter, r *http.Request) {
	p := queryParams(r)
	q := validation.WeathersQuery{Sort: p.Get("sort")}
	if verr := validation.ValidateStruct(&q); verr != nil {
		logging.Ctx(r.Context()).Debug().Str("sort", q.Sort).Msg("Ignoring invalid sort key")
		q.Sort = ""
	}

	records, err := h.pipeline.DestinationWeather(r.Context(), p, false)
	if err != nil {
		respond(w, r, nil, err)
		return
	}

	key := sorting.Sort(records, q.Sort, sorting.CurrentKeys, sorting.CurrentPath)
	logging.Ctx(r.Context()).Debug().
		Int("records", len(records)).
		Stringer("sort", key).
		Msg("Destination weathers composed")

	writeJSON(w, http.StatusOK, weathersResponse{Weathers: records})
}

// FutureWeathers returns the forecast at the destination of each departure,
// limited to x days (1 to 5) and sorted by the last forecast entry kept.
func (h *Handler) FutureWeathers(w http.ResponseWriter, r *http.Request) {
	p := queryParams(r)

	days, ok := forecastDays(p)
	if !ok {
		respond(w, r, nil, upstream.NewErrorPayload(forecastDaysMessage))
		return
	}

	q := validation.ForecastQuery{Days: days, Sort: p.Get("sort")}
	if verr := validation.ValidateStruct(&q); verr != nil {
		if verr.HasField("Days") {
			respond(w, r, nil, upstream.NewErrorPayload(forecastDaysMessage))
			return
		}
		logging.Ctx(r.Context()).Debug().Str("sort", q.Sort).Msg("Ignoring invalid sort key")
		q.Sort = ""
	}

	records, err := h.pipeline.DestinationWeather(r.Context(), p, true)
	if err != nil {
		respond(w, r, nil, err)
		return
	}

	records = compose.FilterForecastWindow(records, int(q.Days), h.now())
	key := sorting.Sort(records, q.Sort, sorting.ForecastKeys, sorting.ForecastPath)
	logging.Ctx(r.Context()).Debug().
		Int("records", len(records)).
		Int("days", int(q.Days)).
		Stringer("sort", key).
		Msg("Destination forecasts composed")

	writeJSON(w, http.StatusOK, futureWeathersResponse{FutureWeathers: records})
}

// forecastDays parses x as a number; range and integrality are checked by
// validation.ForecastQuery.
func forecastDays(p params.Set) (float64, bool) {
	raw, ok := p.Lookup("x")
	if !ok {
		return 0, false
	}
	days, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return days, true
}
