// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package jsonpath resolves dotted paths ("weather.main.temp") inside decoded
// JSON documents of unknown shape.
//
// Decoded upstream bodies are plain Go values (map[string]any, []any and
// scalars). Value wraps one of them as an explicit tagged union so callers can
// walk heterogeneous responses without type switches of their own, and so that
// any mismatch along a path collapses to Absent instead of panicking.
//
//	temp := jsonpath.Resolve(jsonpath.Of(record), "weather.main.temp").Float()
package jsonpath

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	// Absent marks a path that did not resolve.
	Absent Kind = iota
	// Object is a JSON object (map[string]any).
	Object
	// Array is a JSON array ([]any).
	Array
	// Scalar is a string, number, boolean or null.
	Scalar
)

// String returns the kind name for logs and test output.
func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case Scalar:
		return "scalar"
	default:
		return "absent"
	}
}

// Value is a tagged view over a decoded JSON value.
// The zero Value is Absent.
type Value struct {
	kind Kind
	raw  any
}

// Of wraps a decoded JSON value. A nil argument is treated as JSON null,
// which is a present scalar; only failed lookups produce Absent.
func Of(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case map[string]any:
		return Value{kind: Object, raw: t}
	case []any:
		return Value{kind: Array, raw: t}
	default:
		return Value{kind: Scalar, raw: v}
	}
}

// IsAbsent reports whether the value is the Absent variant.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Raw returns the underlying decoded value (nil for Absent and JSON null).
func (v Value) Raw() any { return v.raw }

// Field indexes an object by key. Non-objects and missing keys yield Absent.
func (v Value) Field(name string) Value {
	if v.kind != Object {
		return Value{}
	}
	child, ok := v.raw.(map[string]any)[name]
	if !ok {
		return Value{}
	}
	return Of(child)
}

// Has reports whether v is an object carrying the given key.
func (v Value) Has(name string) bool {
	return !v.Field(name).IsAbsent()
}

// Index indexes an array. Non-arrays and out-of-range indexes yield Absent.
func (v Value) Index(i int) Value {
	if v.kind != Array {
		return Value{}
	}
	items := v.raw.([]any)
	if i < 0 || i >= len(items) {
		return Value{}
	}
	return Of(items[i])
}

// Len returns the element count of an array, or 0 for any other variant.
func (v Value) Len() int {
	if v.kind != Array {
		return 0
	}
	return len(v.raw.([]any))
}

// Items returns the elements of an array in order, or nil for any other variant.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	raw := v.raw.([]any)
	items := make([]Value, len(raw))
	for i, item := range raw {
		items[i] = Of(item)
	}
	return items
}

// Last returns the final element of an array, or Absent.
func (v Value) Last() Value {
	return v.Index(v.Len() - 1)
}

// Float coerces the value to a number for comparisons. Numbers are returned
// as-is, numeric strings are parsed, and everything else (absent, null,
// booleans, objects, arrays, non-numeric strings) is 0.
func (v Value) Float() float64 {
	if v.kind != Scalar {
		return 0
	}
	switch n := v.raw.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String renders a scalar for use as a query parameter value. Strings are
// returned verbatim, numbers in their shortest form, null and non-scalars as "".
func (v Value) String() string {
	if v.kind != Scalar {
		return ""
	}
	switch s := v.raw.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Resolve walks v along a dotted path. Each segment indexes an object by key
// or an array by a non-negative decimal index. Any segment that does not
// resolve, including empty segments and indexing into a scalar, yields Absent.
func Resolve(v Value, dottedPath string) Value {
	if dottedPath == "" {
		return Value{}
	}
	cur := v
	for _, seg := range strings.Split(dottedPath, ".") {
		cur = step(cur, seg)
		if cur.IsAbsent() {
			return cur
		}
	}
	return cur
}

func step(v Value, seg string) Value {
	if seg == "" {
		return Value{}
	}
	switch v.kind {
	case Object:
		return v.Field(seg)
	case Array:
		i, ok := parseIndex(seg)
		if !ok {
			return Value{}
		}
		return v.Index(i)
	default:
		return Value{}
	}
}

func parseIndex(seg string) (int, bool) {
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return i, true
}
