// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package compose

import (
	"time"

	"github.com/tomtom215/stationweather/internal/jsonpath"
)

// forecastTimeLayout is the layout of the dt_txt field of forecast entries.
const forecastTimeLayout = "2006-01-02 15:04:05"

// FilterForecastWindow keeps, in each record's weather.list, the entries
// dated from the day before now up to days after now, both ends included, at
// UTC day granularity. Entries without a usable date are dropped. Only the
// list changes; records whose weather carries no list are returned as is.
// The input records are not modified.
func FilterForecastWindow(records []Record, days int, now time.Time) []Record {
	today := dayOf(now)
	from := today.AddDate(0, 0, -1)
	to := today.AddDate(0, 0, days)

	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec

		weather, ok := rec.Weather.(map[string]any)
		if !ok {
			continue
		}
		list, ok := weather["list"].([]any)
		if !ok {
			continue
		}

		kept := make([]any, 0, len(list))
		for _, entry := range list {
			day, ok := entryDay(jsonpath.Of(entry))
			if !ok || day.Before(from) || day.After(to) {
				continue
			}
			kept = append(kept, entry)
		}

		cp := make(map[string]any, len(weather))
		for k, v := range weather {
			cp[k] = v
		}
		cp["list"] = kept
		out[i].Weather = cp
	}
	return out
}

// entryDay reads the forecast timestamp from dt (unix seconds) or, failing
// that, from dt_txt.
func entryDay(entry jsonpath.Value) (time.Time, bool) {
	if dt := entry.Field("dt").Float(); dt > 0 {
		return dayOf(time.Unix(int64(dt), 0)), true
	}
	if txt := entry.Field("dt_txt").String(); txt != "" {
		t, err := time.ParseInLocation(forecastTimeLayout, txt, time.UTC)
		if err == nil {
			return dayOf(t), true
		}
	}
	return time.Time{}, false
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
