// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package upstream

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stationweather/internal/jsonpath"
)

// ErrorMessage is one entry of an error payload.
type ErrorMessage struct {
	Message string `json:"message"`
}

// ErrorPayload is the {"errors":[{"message":...}]} body returned to clients
// for validation failures, empty results and error bodies passed through from
// an upstream. It is an error so it can travel the normal error path, but it
// is rendered with HTTP 200.
type ErrorPayload struct {
	Errors []ErrorMessage `json:"errors"`

	// raw holds an upstream body verbatim so it re-encodes unchanged.
	raw   any
	cause error
}

// errorPayloadJSON breaks the MarshalJSON recursion.
type errorPayloadJSON struct {
	Errors []ErrorMessage `json:"errors"`
}

// NewErrorPayload builds a payload carrying a single message.
func NewErrorPayload(message string) *ErrorPayload {
	return &ErrorPayload{Errors: []ErrorMessage{{Message: message}}}
}

// WithCause attaches a sentinel so callers can match the payload with errors.Is.
func (e *ErrorPayload) WithCause(cause error) *ErrorPayload {
	cp := *e
	cp.cause = cause
	return &cp
}

// Error joins the carried messages.
func (e *ErrorPayload) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, m := range e.Errors {
		msgs = append(msgs, m.Message)
	}
	if len(msgs) == 0 {
		return "upstream returned an error payload"
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the attached sentinel, if any.
func (e *ErrorPayload) Unwrap() error {
	return e.cause
}

// Body returns the value to encode as the response body.
func (e *ErrorPayload) Body() any {
	if e.raw != nil {
		return e.raw
	}
	return errorPayloadJSON{Errors: e.Errors}
}

// MarshalJSON encodes the upstream body verbatim when the payload was
// detected in one, otherwise the canonical errors shape.
func (e *ErrorPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Body())
}

// AsErrorPayload reports whether a decoded upstream body is an object
// carrying an "errors" key, and if so wraps it without altering it.
func AsErrorPayload(result any) (*ErrorPayload, bool) {
	v := jsonpath.Of(result)
	errs := v.Field("errors")
	if errs.IsAbsent() {
		return nil, false
	}
	p := &ErrorPayload{raw: result}
	for _, item := range errs.Items() {
		p.Errors = append(p.Errors, ErrorMessage{Message: item.Field("message").String()})
	}
	return p, true
}

// UpstreamError is a transport-level failure talking to an upstream:
// network errors, timeouts, undecodable bodies and open circuit breakers.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
