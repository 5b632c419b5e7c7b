// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package compose

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/stationweather/internal/jsonpath"
	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/metrics"
	"github.com/tomtom215/stationweather/internal/params"
	"github.com/tomtom215/stationweather/internal/upstream"
)

// StationboardLimit is both the limit asked of the stationboard upstream and
// the number of entries kept from its answer.
const StationboardLimit = 5

// DefaultConcurrency bounds the destination weather fan-out.
const DefaultConcurrency = 5

// ErrNoStation is attached to the payload returned when the location search
// yields no station.
var ErrNoStation = errors.New("no station found")

// noStationMessage is the client-visible text of ErrNoStation.
const noStationMessage = "No station was found!"

// transportations restricts the station search to long-distance and regional
// rail stops.
var transportations = []string{"ec_ic", "ice_tgv_rj", "ir", "re_d"}

// Upstream is the subset of upstream.Client the pipeline calls.
type Upstream interface {
	IPLookup(ctx context.Context, p params.Set) (any, error)
	LocationSearch(ctx context.Context, p params.Set) (any, error)
	Stationboard(ctx context.Context, p params.Set) (any, error)
	Weather(ctx context.Context, p params.Set, forecast bool) (any, error)
}

// Stationboard is the truncated departure list of the nearest station.
type Stationboard struct {
	Entries []any `json:"stationboard"`
}

// Record pairs a departure's final destination with the weather there.
type Record struct {
	Destination any `json:"destination"`
	Weather     any `json:"weather"`
}

// Value exposes the record as a JSON object for path lookups.
func (r Record) Value() jsonpath.Value {
	return jsonpath.Of(map[string]any{
		"destination": r.Destination,
		"weather":     r.Weather,
	})
}

// Pipeline chains upstream calls into the composed views.
type Pipeline struct {
	client      Upstream
	concurrency int
}

// NewPipeline creates a pipeline over client. concurrency bounds the number of
// weather calls in flight per request; values below 1 mean DefaultConcurrency.
func NewPipeline(client Upstream, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{client: client, concurrency: concurrency}
}

// NearestStation geolocates the caller, picks the closest rail station and
// returns its next departures.
//
// The chain is strictly sequential. An error payload from any step is
// returned unchanged as an *upstream.ErrorPayload.
func (p *Pipeline) NearestStation(ctx context.Context, in params.Set) (*Stationboard, error) {
	ipResult, err := p.client.IPLookup(ctx, in)
	if err != nil {
		return nil, err
	}
	if payload, ok := upstream.AsErrorPayload(ipResult); ok {
		return nil, payload
	}

	ip := jsonpath.Of(ipResult)
	locResult, err := p.client.LocationSearch(ctx, stationSearch(ip.Field("lat").String(), ip.Field("lon").String()))
	if err != nil {
		return nil, err
	}
	if payload, ok := upstream.AsErrorPayload(locResult); ok {
		return nil, payload
	}

	station, ok := nearest(jsonpath.Of(locResult).Field("stations"))
	if !ok {
		return nil, upstream.NewErrorPayload(noStationMessage).WithCause(ErrNoStation)
	}

	logging.Ctx(ctx).Debug().
		Str("station_id", station.Field("id").String()).
		Str("station_name", station.Field("name").String()).
		Float64("distance", station.Field("distance").Float()).
		Msg("Nearest station selected")

	boardResult, err := p.client.Stationboard(ctx, params.New("id", station.Field("id").String(), "limit", strconv.Itoa(StationboardLimit)))
	if err != nil {
		return nil, err
	}
	if payload, ok := upstream.AsErrorPayload(boardResult); ok {
		return nil, payload
	}

	// The upstream may exceed the limit when departures share a time.
	entries := jsonpath.Of(boardResult).Field("stationboard").Raw()
	list, _ := entries.([]any)
	if len(list) > StationboardLimit {
		list = list[:StationboardLimit]
	}
	if list == nil {
		list = []any{}
	}
	return &Stationboard{Entries: list}, nil
}

// DestinationWeather looks up the weather at the final destination of every
// departure of the nearest station. Records keep stationboard order.
//
// Weather calls run concurrently. A weather body is stored as returned,
// error bodies included; a transport failure cancels the remaining calls
// and fails the request.
func (p *Pipeline) DestinationWeather(ctx context.Context, in params.Set, forecast bool) ([]Record, error) {
	board, err := p.NearestStation(ctx, in)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(board.Entries))
	metrics.RecordFanout(len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, entry := range board.Entries {
		g.Go(func() error {
			dest := jsonpath.Of(entry).Field("passList").Last().Field("station")
			coord := dest.Field("coordinate")

			weather, err := p.client.Weather(gctx, params.New(
				"lat", coord.Field("x").String(),
				"lon", coord.Field("y").String(),
			), forecast)
			if err != nil {
				var payload *upstream.ErrorPayload
				if !errors.As(err, &payload) {
					return err
				}
				weather = payload.Body()
			}

			records[i] = Record{Destination: dest.Raw(), Weather: weather}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func stationSearch(lat, lon string) params.Set {
	pairs := []params.Pair{{Name: "type", Value: "station"}}
	for _, t := range transportations {
		pairs = append(pairs, params.Pair{Name: "transportations[]", Value: t})
	}
	pairs = append(pairs,
		params.Pair{Name: "x", Value: lat},
		params.Pair{Name: "y", Value: lon},
	)
	return params.FromPairs(pairs)
}

// nearest returns the station with the smallest distance, the first one on
// ties. A missing distance counts as 0.
func nearest(stations jsonpath.Value) (jsonpath.Value, bool) {
	items := stations.Items()
	if len(items) == 0 {
		return jsonpath.Value{}, false
	}
	best := items[0]
	bestDist := best.Field("distance").Float()
	for _, s := range items[1:] {
		if d := s.Field("distance").Float(); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}
