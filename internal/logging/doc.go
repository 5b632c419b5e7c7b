// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package logging provides centralized zerolog-based structured logging.
//
// JSON output is the default; LOG_FORMAT=console switches to the
// human-readable console writer for development.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Error().Err(err).Msg("Server failed")
//
// # Request Context
//
// The API middleware stores a request ID and a correlation ID in every
// request context. Ctx(ctx) returns a logger carrying both, so the upstream
// calls made for one inbound request can be grepped together:
//
//	logging.Ctx(ctx).Debug().Str("service", "transport").Msg("Upstream call completed")
//	// {"level":"debug","request_id":"...","correlation_id":"3f2a9c1e","service":"transport",...}
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Supervisor Integration
//
// NewSlogLogger bridges zerolog into log/slog for the sutureslog event hook
// used by the supervisor tree.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
