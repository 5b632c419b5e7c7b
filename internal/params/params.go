// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

// Package params holds the per-request parameter set and the predicates that
// gate every upstream call.
//
// A Set is an ordered list of name/value pairs. Name lookup is
// case-insensitive, values are never touched, and repeated names are kept so
// that array-style filters (transportations[]=ir&transportations[]=re_d)
// survive a round trip. A Set is built once per request and treated as
// immutable: nothing mutates a set after construction.
package params

import (
	"net/url"
	"strings"
)

// Pair is a single name/value entry of a Set.
type Pair struct {
	Name  string
	Value string
}

// Set is an immutable, ordered, case-insensitive parameter set.
// The zero value is an empty set.
type Set struct {
	pairs []Pair
}

// New builds a set from alternating name/value arguments.
// A trailing name without a value is paired with the empty string.
//
//	params.New("from", "Neuchatel", "to", "Bern")
func New(kv ...string) Set {
	pairs := make([]Pair, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := Pair{Name: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		pairs = append(pairs, p)
	}
	return Set{pairs: pairs}
}

// FromPairs builds a set from the given pairs. The slice is copied.
func FromPairs(pairs []Pair) Set {
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return Set{pairs: cp}
}

// FromRawQuery parses a raw URL query string preserving the order in which
// parameters appear. Malformed escapes are kept verbatim rather than dropped.
func FromRawQuery(raw string) Set {
	var pairs []Pair
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		pairs = append(pairs, Pair{Name: unescape(name), Value: unescape(value)})
	}
	return Set{pairs: pairs}
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// IsEmpty reports whether the set carries no parameters at all.
func (s Set) IsEmpty() bool {
	return len(s.pairs) == 0
}

// Has reports whether name is present, compared case-insensitively.
func (s Set) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the first value stored under name (case-insensitive).
func (s Set) Lookup(name string) (string, bool) {
	for _, p := range s.pairs {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Get returns the first value stored under name, or "" when absent.
func (s Set) Get(name string) string {
	v, _ := s.Lookup(name)
	return v
}

// OrDefault returns s unless it is empty, in which case def is returned.
func (s Set) OrDefault(def Set) Set {
	if s.IsEmpty() {
		return def
	}
	return s
}

// Encode renders the set as application/x-www-form-urlencoded, in order.
func (s Set) Encode() string {
	var b strings.Builder
	for i, p := range s.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// HasAll reports whether every name in required is a key of s.
// Names are compared case-insensitively; an empty required list is satisfied.
func HasAll(s Set, required ...string) bool {
	for _, name := range required {
		if !s.Has(name) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one name in required is a key of s.
func HasAny(s Set, required ...string) bool {
	for _, name := range required {
		if s.Has(name) {
			return true
		}
	}
	return false
}
