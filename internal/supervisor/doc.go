// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

/*
Package supervisor runs the gateway's long-lived services under suture v4.

# Overview

	RootSupervisor ("stationweather")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService ("http-server")

A listener that dies (for example a transient bind failure) is restarted
with suture's decaying failure counter instead of taking the process down.
Supervisor events are logged through sutureslog using the zerolog bridge
from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	err = supervisor.AwaitStop(errCh, 2*cfg.Server.ShutdownTimeout)

The ServeBackground channel carries exactly one value and is never closed,
so ranging over it never ends.

# Configuration

Zero values in TreeConfig fall back to suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Contract

Services implement suture.Service. Returning nil stops the service for
good, returning an error restarts it, and a canceled context means
shutdown was requested and Serve must return promptly.

Upstream HTTP clients are not supervised: they are plain values owned by
the request path, and failure isolation for them is the circuit breaker
in the upstream package.
*/
package supervisor
