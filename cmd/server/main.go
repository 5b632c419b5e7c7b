// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/stationweather/internal/api"
	"github.com/tomtom215/stationweather/internal/config"
	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/metrics"
	"github.com/tomtom215/stationweather/internal/supervisor"
	"github.com/tomtom215/stationweather/internal/supervisor/services"
	"github.com/tomtom215/stationweather/internal/upstream"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so this goes through the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("ip_url", cfg.Upstream.IPURL).
		Str("transport_url", cfg.Upstream.TransportURL).
		Str("weather_url", cfg.Upstream.WeatherURL).
		Bool("breaker_enabled", cfg.Upstream.BreakerEnabled).
		Int("fanout_concurrency", cfg.Fanout.Concurrency).
		Msg("Configuration loaded")

	client := upstream.NewClient(cfg.ClientConfig())
	handler := api.NewHandler(client, cfg.Fanout.Concurrency)
	router := api.NewRouter(handler, cfg.Security.CORSOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
		// Root and api-layer each wait up to the shutdown timeout.
		err := supervisor.AwaitStop(errCh, 2*cfg.Server.ShutdownTimeout)
		switch {
		case errors.Is(err, supervisor.ErrStopTimeout):
			logging.Error().Dur("timeout", 2*cfg.Server.ShutdownTimeout).Msg("Supervisor did not stop in time")
			os.Exit(1)
		case err != nil && !errors.Is(err, context.Canceled):
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	if len(unstopped) > 0 {
		os.Exit(1)
	}

	logging.Info().Msg("Server stopped gracefully")
}
