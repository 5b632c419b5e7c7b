// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stationweather/internal/upstream"
)

const testAPIKey = "testkey0123"

// fixedNow is the clock of every forecast test.
var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// Per-destination current weather; destination i sits at lat i+1.
var (
	destTemps     = []float64{12, 30, 7, 21, 18, 25}
	destHumidity  = []float64{50, 40, 90, 60, 70, 10}
	forecastShift = []int{-3, -2, -1, 0, 1, 2, 3, 4, 5, 6}
)

// fakeUpstreams serves the three upstream APIs from one httptest server.
type fakeUpstreams struct {
	server *httptest.Server

	noStations   bool
	ipErrors     bool
	boardEntries int

	ipHits      atomic.Int64
	locHits     atomic.Int64
	boardHits   atomic.Int64
	weatherHits atomic.Int64

	lastLocationQuery atomic.Value
}

func newFakeUpstreams(t *testing.T) *fakeUpstreams {
	t.Helper()

	f := &fakeUpstreams{boardEntries: 6}
	mux := http.NewServeMux()
	mux.HandleFunc("/json/", f.ip)
	mux.HandleFunc("/v1/locations", f.locations)
	mux.HandleFunc("/v1/connections", func(w http.ResponseWriter, r *http.Request) {
		writeFake(w, map[string]any{"from": r.URL.Query().Get("from"), "to": r.URL.Query().Get("to"), "connections": []any{}})
	})
	mux.HandleFunc("/v1/stationboard", f.stationboard)
	mux.HandleFunc("/data/2.5/weather", f.weather)
	mux.HandleFunc("/data/2.5/forecast", f.forecast)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func writeFake(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeUpstreams) ip(w http.ResponseWriter, r *http.Request) {
	f.ipHits.Add(1)
	if f.ipErrors {
		writeFake(w, map[string]any{"errors": []any{map[string]any{"message": "ip lookup refused"}}})
		return
	}
	writeFake(w, map[string]any{
		"status": "success",
		"query":  strings.TrimPrefix(r.URL.Path, "/json/"),
		"lat":    46.99,
		"lon":    6.93,
	})
}

func (f *fakeUpstreams) locations(w http.ResponseWriter, r *http.Request) {
	f.locHits.Add(1)
	f.lastLocationQuery.Store(r.URL.RawQuery)

	q := r.URL.Query()
	if q.Get("query") != "" {
		writeFake(w, map[string]any{"stations": []any{map[string]any{"id": "8504200", "name": q.Get("query")}}})
		return
	}
	if f.noStations {
		writeFake(w, map[string]any{"stations": []any{}})
		return
	}
	writeFake(w, map[string]any{"stations": []any{
		map[string]any{"id": "8504221", "name": "Far", "distance": 900},
		map[string]any{"id": "8504200", "name": "Neuchatel", "distance": 120},
	}})
}

func (f *fakeUpstreams) stationboard(w http.ResponseWriter, r *http.Request) {
	f.boardHits.Add(1)

	q := r.URL.Query()
	if q.Get("station") != "" {
		writeFake(w, map[string]any{"station": map[string]any{"name": q.Get("station")}, "stationboard": []any{}})
		return
	}
	if q.Get("id") != "8504200" || q.Get("limit") != "5" {
		writeFake(w, map[string]any{"errors": []any{map[string]any{"message": "unexpected stationboard query " + r.URL.RawQuery}}})
		return
	}

	entries := make([]any, f.boardEntries)
	for i := range entries {
		entries[i] = map[string]any{
			"category": "IR",
			"passList": []any{
				map[string]any{"station": map[string]any{"id": "8504200", "name": "Neuchatel"}},
				map[string]any{"station": map[string]any{
					"id":         "dest" + strconv.Itoa(i),
					"name":       "Destination " + strconv.Itoa(i),
					"coordinate": map[string]any{"type": "WGS84", "x": float64(i + 1), "y": float64(i+1) * 10},
				}},
			},
		}
	}
	writeFake(w, map[string]any{"stationboard": entries})
}

// destIndex maps a lat parameter back to a destination index.
func destIndex(r *http.Request) (int, bool) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < 1 || int(lat) > len(destTemps) {
		return 0, false
	}
	return int(lat) - 1, true
}

func (f *fakeUpstreams) weather(w http.ResponseWriter, r *http.Request) {
	f.weatherHits.Add(1)

	if r.URL.Query().Get("appid") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		writeFake(w, map[string]any{"cod": 401, "message": "Invalid API key"})
		return
	}
	if city := r.URL.Query().Get("q"); city != "" {
		writeFake(w, map[string]any{"name": city, "main": map[string]any{"temp": 280.0}})
		return
	}

	i, ok := destIndex(r)
	if !ok {
		writeFake(w, map[string]any{"cod": "400", "message": "wrong latitude"})
		return
	}
	writeFake(w, map[string]any{
		"name":   "Destination " + strconv.Itoa(i),
		"main":   map[string]any{"temp": destTemps[i], "humidity": destHumidity[i], "pressure": 1000 + i},
		"wind":   map[string]any{"speed": float64(i)},
		"clouds": map[string]any{"all": 100 - i},
	})
}

// forecast returns one entry per day around fixedNow; the temperature of an
// entry is the destination's base temperature plus its day offset.
func (f *fakeUpstreams) forecast(w http.ResponseWriter, r *http.Request) {
	f.weatherHits.Add(1)

	i, ok := destIndex(r)
	if !ok {
		writeFake(w, map[string]any{"cod": "400", "message": "wrong latitude"})
		return
	}

	list := make([]any, 0, len(forecastShift))
	for _, shift := range forecastShift {
		at := fixedNow.AddDate(0, 0, shift)
		list = append(list, map[string]any{
			"dt":     at.Unix(),
			"dt_txt": at.Format("2006-01-02 15:04:05"),
			"main":   map[string]any{"temp": destTemps[i] + float64(shift), "humidity": destHumidity[i]},
		})
	}
	writeFake(w, map[string]any{"cod": "200", "cnt": len(list), "list": list})
}

func (f *fakeUpstreams) client(apiKey string) *upstream.Client {
	return upstream.NewClient(upstream.Config{
		IPBaseURL:        f.server.URL + "/json",
		TransportBaseURL: f.server.URL + "/v1",
		WeatherBaseURL:   f.server.URL + "/data/2.5",
		WeatherAPIKey:    apiKey,
		Timeout:          5 * time.Second,
	})
}

// newTestRouter builds the full router over the fake upstreams.
func newTestRouter(t *testing.T, f *fakeUpstreams) http.Handler {
	t.Helper()
	h := NewHandler(f.client(testAPIKey), 3).WithClock(func() time.Time { return fixedNow })
	return NewRouter(h, nil).SetupChi()
}

// get performs a GET against router and returns the recorder.
func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// decodeBody decodes a recorder body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %v: %s", err, rec.Body.String())
	}
	return body
}
