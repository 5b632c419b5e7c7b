// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package services adapts long-running components to suture.Service so the
// supervisor tree can start, restart and stop them.
//
// HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine,
// and context cancellation triggers Shutdown bounded by the configured
// timeout.
package services
