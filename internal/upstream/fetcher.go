// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stationweather/internal/logging"
	"github.com/tomtom215/stationweather/internal/metrics"
)

const (
	maxBodyBytes  = 4 << 20
	maxErrorBytes = 256
)

// fetcher performs GET requests against one upstream service and decodes the
// JSON body into plain Go values.
type fetcher struct {
	service string
	client  *http.Client
	timeout time.Duration
	breaker *breaker // nil when circuit breaking is disabled
}

// get fetches reqURL and returns the decoded body. Any JSON body is returned
// as-is whatever the status code; everything else is an *UpstreamError.
func (f *fetcher) get(ctx context.Context, reqURL string) (any, error) {
	start := time.Now()

	call := func() (any, error) {
		return f.do(ctx, reqURL)
	}

	var result any
	var err error
	if f.breaker != nil {
		result, err = f.breaker.execute(call)
	} else {
		result, err = call()
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil && isRejection(err):
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordUpstreamCall(f.service, outcome, time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("service", f.service).Str("outcome", outcome).Msg("Upstream call failed")
		return nil, &UpstreamError{Service: f.service, Err: err}
	}

	logging.Ctx(ctx).Debug().Str("service", f.service).Dur("duration", time.Since(start)).Msg("Upstream call completed")
	return result, nil
}

func (f *fetcher) do(ctx context.Context, reqURL string) (any, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, truncateBody(body))
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}

// redact strips the query string from URLs embedded in net/http errors so the
// weather API key never reaches logs or response bodies.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			uerr.URL = u.String()
		} else {
			uerr.URL = "<redacted>"
		}
	}
	return err
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBytes {
		return string(body[:maxErrorBytes]) + "..."
	}
	return string(body)
}
