// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/tomtom215/stationweather/internal/logging"
)

// ErrorRenderer writes an error response for a failed request.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, err error)

// Recover converts handler panics into an error response written by render.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover(render ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity, as net/http does
					panic(rvr)
				}

				err := panicError(rvr)
				logging.Ctx(r.Context()).Error().
					Err(err).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from handler panic")

				render(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("%v", e)
	}
}
