// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/stationweather/internal/params"
)

// Service names used for metrics labels, logs and UpstreamError.
const (
	ServiceIP        = "ip"
	ServiceTransport = "transport"
	ServiceWeather   = "weather"
)

// DefaultIP is looked up when a request carries no ip parameter.
const DefaultIP = "130.125.1.11"

var (
	locationParams     = []string{"query", "x", "y"}
	connectionParams   = []string{"from", "to"}
	stationboardParams = []string{"station", "id"}
	cityParams         = []string{"q"}
	coordParams        = []string{"lat", "lon"}

	defaultLocation     = params.New("query", "Neuchatel")
	defaultConnection   = params.New("from", "Neuchatel", "to", "Bern")
	defaultStationboard = params.New("station", "Neuchatel")
	defaultWeather      = params.New("q", "Neuchatel")
)

// Config holds upstream endpoints and call behavior.
type Config struct {
	IPBaseURL        string
	TransportBaseURL string
	WeatherBaseURL   string
	WeatherAPIKey    string

	// Timeout bounds each individual upstream call.
	Timeout time.Duration

	// BreakerEnabled puts each upstream behind its own circuit breaker.
	BreakerEnabled bool

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client builds validated requests for the three upstream services.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	ipBase        string
	transportBase string
	weatherBase   string
	weatherKey    string

	ip        *fetcher
	transport *fetcher
	weather   *fetcher
}

// NewClient creates a client for the configured upstreams.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	newFetcher := func(service string) *fetcher {
		f := &fetcher{service: service, client: httpClient, timeout: cfg.Timeout}
		if cfg.BreakerEnabled {
			f.breaker = newBreaker(service + "-api")
		}
		return f
	}

	return &Client{
		ipBase:        strings.TrimRight(cfg.IPBaseURL, "/"),
		transportBase: strings.TrimRight(cfg.TransportBaseURL, "/"),
		weatherBase:   strings.TrimRight(cfg.WeatherBaseURL, "/"),
		weatherKey:    cfg.WeatherAPIKey,
		ip:            newFetcher(ServiceIP),
		transport:     newFetcher(ServiceTransport),
		weather:       newFetcher(ServiceWeather),
	}
}

// IPLookup geolocates the ip parameter, or DefaultIP when none is given.
func (c *Client) IPLookup(ctx context.Context, p params.Set) (any, error) {
	ip, ok := p.Lookup("ip")
	if !ok {
		ip = DefaultIP
	}
	return c.ip.get(ctx, c.ipBase+"/"+url.PathEscape(ip))
}

// LocationSearch searches transport locations by name or coordinates.
func (c *Client) LocationSearch(ctx context.Context, p params.Set) (any, error) {
	p = p.OrDefault(defaultLocation)
	if !params.HasAny(p, locationParams...) {
		return nil, NewErrorPayload(oneOfMessage(locationParams))
	}
	return c.transport.get(ctx, c.transportBase+"/locations?"+p.Encode())
}

// Connections searches journeys between two places.
func (c *Client) Connections(ctx context.Context, p params.Set) (any, error) {
	p = p.OrDefault(defaultConnection)
	if !params.HasAll(p, connectionParams...) {
		return nil, NewErrorPayload(allOfMessage(connectionParams))
	}
	return c.transport.get(ctx, c.transportBase+"/connections?"+p.Encode())
}

// Stationboard lists the next departures from a station.
func (c *Client) Stationboard(ctx context.Context, p params.Set) (any, error) {
	p = p.OrDefault(defaultStationboard)
	if !params.HasAny(p, stationboardParams...) {
		return nil, NewErrorPayload(oneOfMessage(stationboardParams))
	}
	return c.transport.get(ctx, c.transportBase+"/stationboard?"+p.Encode())
}

// Weather fetches current conditions, or the multi-day forecast when
// forecast is set, by city name (q) or by coordinates (lat and lon).
// A city name combined with either coordinate is rejected.
func (c *Client) Weather(ctx context.Context, p params.Set, forecast bool) (any, error) {
	p = p.OrDefault(defaultWeather)
	defined := append(append([]string{}, cityParams...), coordParams...)

	hasCity := params.HasAll(p, cityParams...)
	switch {
	case hasCity && params.HasAny(p, coordParams...):
		return nil, NewErrorPayload("Request contains too many parameters (" + strings.Join(defined, ",") + ")")
	case hasCity || params.HasAll(p, coordParams...):
		endpoint := "weather"
		if forecast {
			endpoint = "forecast"
		}
		reqURL := c.weatherBase + "/" + endpoint + "?appid=" + url.QueryEscape(c.weatherKey) + "&" + p.Encode()
		return c.weather.get(ctx, reqURL)
	default:
		return nil, NewErrorPayload(oneOfMessage(defined))
	}
}

func oneOfMessage(names []string) string {
	return "Request does not contain one of the correct parameters (" + strings.Join(names, ",") + ")"
}

func allOfMessage(names []string) string {
	return "Request does not contain the correct parameters (" + strings.Join(names, ",") + ")"
}
