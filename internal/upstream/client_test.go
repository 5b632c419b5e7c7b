// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/stationweather/internal/jsonpath"
	"github.com/tomtom215/stationweather/internal/params"
)

// recorder is a fake upstream that answers every request with a fixed body
// and remembers the request URIs it saw.
type recorder struct {
	mu     sync.Mutex
	uris   []string
	status int
	body   string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.uris = append(r.uris, req.URL.RequestURI())
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uris...)
}

func newTestClient(t *testing.T, rec http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		IPBaseURL:        srv.URL + "/json",
		TransportBaseURL: srv.URL + "/v1",
		WeatherBaseURL:   srv.URL + "/data/2.5",
		WeatherAPIKey:    "test-key",
		Timeout:          2 * time.Second,
	})
}

func TestIPLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  params.Set
		wantURI string
	}{
		{"default ip", params.Set{}, "/json/130.125.1.11"},
		{"explicit ip", params.New("ip", "8.8.8.8"), "/json/8.8.8.8"},
		{"case insensitive name", params.New("IP", "1.1.1.1"), "/json/1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{body: `{"status":"success","lat":46.99,"lon":6.93}`}
			c := newTestClient(t, rec)

			got, err := c.IPLookup(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("IPLookup() error = %v", err)
			}
			if lat := jsonpath.Of(got).Field("lat").Float(); lat != 46.99 {
				t.Errorf("lat = %v, expected 46.99", lat)
			}
			if uris := rec.seen(); len(uris) != 1 || uris[0] != tt.wantURI {
				t.Errorf("requested %v, expected [%s]", uris, tt.wantURI)
			}
		})
	}
}

func TestTransportValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		call    func(*Client, params.Set) (any, error)
		params  params.Set
		wantURI string
		wantMsg string
	}{
		{
			name:    "locations default",
			call:    func(c *Client, p params.Set) (any, error) { return c.LocationSearch(context.Background(), p) },
			params:  params.Set{},
			wantURI: "/v1/locations?query=Neuchatel",
		},
		{
			name:    "locations by coordinate",
			call:    func(c *Client, p params.Set) (any, error) { return c.LocationSearch(context.Background(), p) },
			params:  params.New("x", "46.99", "y", "6.93"),
			wantURI: "/v1/locations?x=46.99&y=6.93",
		},
		{
			name:    "locations missing parameters",
			call:    func(c *Client, p params.Set) (any, error) { return c.LocationSearch(context.Background(), p) },
			params:  params.New("type", "station"),
			wantMsg: "Request does not contain one of the correct parameters (query,x,y)",
		},
		{
			name:    "connections default",
			call:    func(c *Client, p params.Set) (any, error) { return c.Connections(context.Background(), p) },
			params:  params.Set{},
			wantURI: "/v1/connections?from=Neuchatel&to=Bern",
		},
		{
			name:    "connections both given",
			call:    func(c *Client, p params.Set) (any, error) { return c.Connections(context.Background(), p) },
			params:  params.New("from", "Lausanne", "to", "Zurich HB"),
			wantURI: "/v1/connections?from=Lausanne&to=Zurich+HB",
		},
		{
			name:    "connections missing to",
			call:    func(c *Client, p params.Set) (any, error) { return c.Connections(context.Background(), p) },
			params:  params.New("from", "Lausanne"),
			wantMsg: "Request does not contain the correct parameters (from,to)",
		},
		{
			name:    "stationboard default",
			call:    func(c *Client, p params.Set) (any, error) { return c.Stationboard(context.Background(), p) },
			params:  params.Set{},
			wantURI: "/v1/stationboard?station=Neuchatel",
		},
		{
			name:    "stationboard by id keeps extra params",
			call:    func(c *Client, p params.Set) (any, error) { return c.Stationboard(context.Background(), p) },
			params:  params.New("id", "8504221", "limit", "5"),
			wantURI: "/v1/stationboard?id=8504221&limit=5",
		},
		{
			name:    "stationboard missing parameters",
			call:    func(c *Client, p params.Set) (any, error) { return c.Stationboard(context.Background(), p) },
			params:  params.New("limit", "5"),
			wantMsg: "Request does not contain one of the correct parameters (station,id)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{body: `{"ok":true}`}
			c := newTestClient(t, rec)

			_, err := tt.call(c, tt.params)
			assertOutcome(t, rec, err, tt.wantURI, tt.wantMsg)
		})
	}
}

func TestWeather(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   params.Set
		forecast bool
		wantURI  string
		wantMsg  string
	}{
		{"city", params.New("q", "Paris"), false, "/data/2.5/weather?appid=test-key&q=Paris", ""},
		{"coordinates", params.New("lat", "1", "lon", "2"), false, "/data/2.5/weather?appid=test-key&lat=1&lon=2", ""},
		{"forecast endpoint", params.New("lat", "1", "lon", "2"), true, "/data/2.5/forecast?appid=test-key&lat=1&lon=2", ""},
		{"empty defaults to Neuchatel", params.Set{}, false, "/data/2.5/weather?appid=test-key&q=Neuchatel", ""},
		{"city and one coordinate", params.New("q", "Paris", "lat", "1"), false, "", "Request contains too many parameters (q,lat,lon)"},
		{"city and lon only", params.New("q", "Paris", "lon", "2"), false, "", "Request contains too many parameters (q,lat,lon)"},
		{"lat only", params.New("lat", "1"), false, "", "Request does not contain one of the correct parameters (q,lat,lon)"},
		{"unrelated params", params.New("units", "metric"), false, "", "Request does not contain one of the correct parameters (q,lat,lon)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{body: `{"main":{"temp":280.1}}`}
			c := newTestClient(t, rec)

			_, err := c.Weather(context.Background(), tt.params, tt.forecast)
			assertOutcome(t, rec, err, tt.wantURI, tt.wantMsg)
		})
	}
}

func assertOutcome(t *testing.T, rec *recorder, err error, wantURI, wantMsg string) {
	t.Helper()

	if wantMsg != "" {
		var payload *ErrorPayload
		if !errors.As(err, &payload) {
			t.Fatalf("error = %v, expected *ErrorPayload", err)
		}
		if payload.Error() != wantMsg {
			t.Errorf("message = %q, expected %q", payload.Error(), wantMsg)
		}
		if uris := rec.seen(); len(uris) != 0 {
			t.Errorf("validation failure reached upstream: %v", uris)
		}
		return
	}

	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if uris := rec.seen(); len(uris) != 1 || uris[0] != wantURI {
		t.Errorf("requested %v, expected [%s]", uris, wantURI)
	}
}

func TestFetch_ForwardsJSONRegardlessOfStatus(t *testing.T) {
	t.Parallel()

	rec := &recorder{status: http.StatusUnauthorized, body: `{"cod":401,"message":"Invalid API key"}`}
	c := newTestClient(t, rec)

	got, err := c.Weather(context.Background(), params.New("q", "Paris"), false)
	if err != nil {
		t.Fatalf("Weather() error = %v", err)
	}
	if msg := jsonpath.Of(got).Field("message").String(); msg != "Invalid API key" {
		t.Errorf("message = %q, expected upstream body to be forwarded", msg)
	}
}

func TestFetch_TransportFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-JSON error status", http.StatusBadGateway, "<html>bad gateway</html>", "status 502"},
		{"non-JSON success", http.StatusOK, "not json", "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{status: tt.status, body: tt.body}
			c := newTestClient(t, rec)

			_, err := c.Stationboard(context.Background(), params.New("id", "1"))
			var uerr *UpstreamError
			if !errors.As(err, &uerr) {
				t.Fatalf("error = %v, expected *UpstreamError", err)
			}
			if uerr.Service != ServiceTransport {
				t.Errorf("Service = %q, expected %q", uerr.Service, ServiceTransport)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFetch_UnreachableDoesNotLeakAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(Config{
		IPBaseURL:        base,
		TransportBaseURL: base,
		WeatherBaseURL:   base,
		WeatherAPIKey:    "super-secret-key",
		Timeout:          time.Second,
	})

	_, err := c.Weather(context.Background(), params.New("q", "Paris"), false)
	var uerr *UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, expected *UpstreamError", err)
	}
	if strings.Contains(err.Error(), "super-secret-key") {
		t.Errorf("error message leaks the API key: %q", err.Error())
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewClient(Config{IPBaseURL: srv.URL, TransportBaseURL: srv.URL, WeatherBaseURL: srv.URL, Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.IPLookup(ctx, params.Set{})
	if err == nil {
		t.Fatal("expected an error from a cancelled request")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, expected to wrap context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancelled call took %v", elapsed)
	}
}

func TestBreaker_OpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		IPBaseURL:        srv.URL,
		TransportBaseURL: srv.URL,
		WeatherBaseURL:   srv.URL,
		Timeout:          time.Second,
		BreakerEnabled:   true,
	})

	for i := 0; i < 10; i++ {
		if _, err := c.IPLookup(context.Background(), params.Set{}); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}

	_, err := c.IPLookup(context.Background(), params.Set{})
	var uerr *UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, expected *UpstreamError", err)
	}
	if !isRejection(err) {
		t.Errorf("error = %v, expected an open-breaker rejection", err)
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("upstream saw %d calls, expected 10", got)
	}
	if state := stateToString(c.ip.breaker.state()); state != "open" {
		t.Errorf("breaker state = %s, expected open", state)
	}

	// Other services keep their own breaker.
	if _, err := c.Stationboard(context.Background(), params.New("id", "1")); isRejection(err) {
		t.Error("transport breaker tripped by ip failures")
	}
}

func TestBreaker_DisabledRequestsStayIndependent(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		IPBaseURL:        srv.URL,
		TransportBaseURL: srv.URL,
		WeatherBaseURL:   srv.URL,
		Timeout:          time.Second,
	})
	if c.ip.breaker != nil || c.transport.breaker != nil || c.weather.breaker != nil {
		t.Fatal("breakers created without BreakerEnabled")
	}

	const calls = 15
	for i := 0; i < calls; i++ {
		_, err := c.IPLookup(context.Background(), params.Set{})
		if err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
		if isRejection(err) {
			t.Fatalf("call %d rejected without reaching the upstream: %v", i, err)
		}
	}
	if got := hits.Load(); got != calls {
		t.Errorf("upstream saw %d calls, expected %d", got, calls)
	}
}
