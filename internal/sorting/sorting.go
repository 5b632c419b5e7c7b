// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package sorting orders destination weather records by a weather reading
// chosen by the caller.
package sorting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/stationweather/internal/compose"
	"github.com/tomtom215/stationweather/internal/jsonpath"
)

// Key names the weather reading records are sorted by.
type Key int

const (
	Temperature Key = iota
	Humidity
	Pressure
	Wind
	Cloud
)

var keyNames = map[Key]string{
	Temperature: "TEMPERATURE",
	Humidity:    "HUMIDITY",
	Pressure:    "PRESSURE",
	Wind:        "WIND",
	Cloud:       "CLOUD",
}

// keyFields maps each key to its dotted path inside a weather reading.
var keyFields = map[Key]string{
	Temperature: "main.temp",
	Humidity:    "main.humidity",
	Pressure:    "main.pressure",
	Wind:        "wind.speed",
	Cloud:       "clouds.all",
}

// CurrentKeys are accepted by the current weather route.
var CurrentKeys = []Key{Temperature, Humidity, Pressure, Wind, Cloud}

// ForecastKeys are accepted by the forecast route.
var ForecastKeys = []Key{Temperature, Humidity, Pressure}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Field returns the reading's path relative to a weather payload.
func (k Key) Field() string {
	return keyFields[k]
}

// ParseKey matches name case-insensitively against allowed. Unknown and
// empty names fall back to Temperature.
func ParseKey(name string, allowed []Key) Key {
	for _, k := range allowed {
		if strings.EqualFold(name, k.String()) {
			return k
		}
	}
	return Temperature
}

// PathFunc builds the dotted path to resolve on a record for a key field.
type PathFunc func(record jsonpath.Value, field string) string

// CurrentPath reads the reading straight off the record's weather.
func CurrentPath(_ jsonpath.Value, field string) string {
	return "weather." + field
}

// ForecastPath reads the reading from the last entry of the record's
// forecast list. An empty or missing list resolves to nothing.
func ForecastPath(record jsonpath.Value, field string) string {
	last := jsonpath.Resolve(record, "weather.list").Len() - 1
	return "weather.list." + strconv.Itoa(last) + "." + field
}

// Sort orders records in place by descending value of the reading keyName
// selects, and returns the key used. Missing or non-numeric readings count as
// 0. Equal readings keep their incoming order.
func Sort(records []compose.Record, keyName string, allowed []Key, path PathFunc) Key {
	key := ParseKey(keyName, allowed)

	type keyed struct {
		record compose.Record
		value  float64
	}
	items := make([]keyed, len(records))
	for i, rec := range records {
		v := rec.Value()
		items[i] = keyed{record: rec, value: jsonpath.Resolve(v, path(v, key.Field())).Float()}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].value > items[j].value
	})

	for i, it := range items {
		records[i] = it.record
	}
	return key
}
