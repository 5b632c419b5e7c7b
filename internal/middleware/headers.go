// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package middleware

import (
	"net/http"
	"strings"
)

// StaticHeaders sets fixed response headers before calling next.
// kv holds alternating header names and values; a trailing name is ignored.
func StaticHeaders(kv ...string) func(http.Handler) http.Handler {
	headers := make(http.Header, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		headers.Set(kv[i], kv[i+1])
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, values := range headers {
				h[name] = append([]string(nil), values...)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Allow sets the Allow header on every response.
func Allow(methods ...string) func(http.Handler) http.Handler {
	return StaticHeaders("Allow", strings.Join(methods, ", "))
}
