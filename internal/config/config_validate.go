// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateFanout(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateUpstream validates the upstream service locations and credentials
func (c *Config) validateUpstream() error {
	urls := []struct {
		value string
		env   string
	}{
		{c.Upstream.IPURL, "IP_API_URL"},
		{c.Upstream.TransportURL, "TRANSPORT_API_URL"},
		{c.Upstream.WeatherURL, "WEATHER_API_URL"},
	}
	for _, u := range urls {
		if u.value == "" {
			return fmt.Errorf("%s is required", u.env)
		}
		if err := validateHTTPURL(u.value, u.env); err != nil {
			return err
		}
	}

	if err := c.validateWeatherAPIKey(); err != nil {
		return err
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

// validateWeatherAPIKey validates the OpenWeatherMap API key
func (c *Config) validateWeatherAPIKey() error {
	key := strings.TrimSpace(c.Upstream.WeatherAPIKey)
	if key == "" {
		return fmt.Errorf("WEATHER_API_KEY is required")
	}
	if containsPlaceholder(key) {
		return fmt.Errorf("WEATHER_API_KEY appears to be a placeholder value")
	}
	return nil
}

func (c *Config) validateFanout() error {
	if c.Fanout.Concurrency < 1 {
		return fmt.Errorf("FANOUT_CONCURRENCY must be at least 1")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates the CORS origin list
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS"); err != nil {
			return err
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns flag values copied from sample configs without edits.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"PLACEHOLDER",
}

func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
