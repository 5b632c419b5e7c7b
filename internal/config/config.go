// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package config

import (
	"time"

	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/upstream"
)

// Config holds the gateway configuration, loaded by Load.
type Config struct {
	Upstream UpstreamConfig `koanf:"upstream"`
	Fanout   FanoutConfig   `koanf:"fanout"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// UpstreamConfig locates the three third-party services.
type UpstreamConfig struct {
	IPURL          string        `koanf:"ip_url"`
	TransportURL   string        `koanf:"transport_url"`
	WeatherURL     string        `koanf:"weather_url"`
	WeatherAPIKey  string        `koanf:"weather_api_key"`
	Timeout        time.Duration `koanf:"timeout"`          // per upstream call
	BreakerEnabled bool          `koanf:"breaker_enabled"` // wrap each upstream in a circuit breaker
}

// FanoutConfig bounds the per-destination weather calls of one request.
type FanoutConfig struct {
	Concurrency int `koanf:"concurrency"` // 1 issues the calls one after another
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds browser-facing settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// ClientConfig converts the upstream section into upstream.Config.
func (c *Config) ClientConfig() upstream.Config {
	return upstream.Config{
		IPBaseURL:        c.Upstream.IPURL,
		TransportBaseURL: c.Upstream.TransportURL,
		WeatherBaseURL:   c.Upstream.WeatherURL,
		WeatherAPIKey:    c.Upstream.WeatherAPIKey,
		Timeout:          c.Upstream.Timeout,
		BreakerEnabled:   c.Upstream.BreakerEnabled,
	}
}

// LoggingOptions converts the logging section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	opts.Caller = c.Logging.Caller
	return opts
}
