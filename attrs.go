package tiled

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// attrScanner pulls typed values out of an element's unordered attribute
// list. Required lookups (Uint, String) that are absent or fail to coerce
// record the failure and return a zero value; Err then reports all of them
// as a single error so callers never act on a partial required set. Optional
// lookups fall back to their default silently, even on a bad value.
type attrScanner struct {
	attrs   []xml.Attr
	element string
	bad     bool
}

func scanAttrs(start xml.StartElement) *attrScanner {
	return &attrScanner{attrs: start.Attr, element: start.Name.Local}
}

func (s *attrScanner) lookup(name string) (string, bool) {
	for _, a := range s.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute is present, regardless of its value.
func (s *attrScanner) Has(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

// Uint reads a required unsigned integer attribute.
func (s *attrScanner) Uint(name string) int {
	v, ok := s.lookup(name)
	if !ok {
		s.bad = true
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		s.bad = true
		return 0
	}
	return int(n)
}

// String reads a required string attribute.
func (s *attrScanner) String(name string) string {
	v, ok := s.lookup(name)
	if !ok {
		s.bad = true
		return ""
	}
	return v
}

// OptUint reads an optional unsigned integer attribute, returning def when
// the attribute is absent or does not parse.
func (s *attrScanner) OptUint(name string, def int) int {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return def
	}
	return int(n)
}

// OptUintOK is OptUint with a presence report: ok is true only when the
// attribute is present and parses.
func (s *attrScanner) OptUintOK(name string) (int, bool) {
	v, ok := s.lookup(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// OptString reads an optional string attribute.
func (s *attrScanner) OptString(name, def string) string {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	return v
}

// OptFloat reads an optional float attribute.
func (s *attrScanner) OptFloat(name string, def float64) float64 {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Err returns nil if every required lookup so far succeeded, and otherwise a
// single ErrMalformedAttributes naming the required set. want describes the
// set, e.g. "a firstgid and source".
func (s *attrScanner) Err(want string) error {
	if !s.bad {
		return nil
	}
	return fmt.Errorf("tiled: <%s> must have %s with correct types: %w", s.element, want, ErrMalformedAttributes)
}
