package model

import (
	"time"

	"github.com/spf13/cast"
)

// Row is a single analytics record as returned by the API. Field presence
// varies per endpoint; views read only the fields they need and tolerate
// absence through the typed accessors below.
type Row map[string]any

// Str returns the named field as a string, or "" when absent.
func (r Row) Str(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Float returns the named field coerced to float64. The second return is
// false when the field is absent or cannot be coerced.
func (r Row) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the named field coerced to int, or 0 when absent/unparseable.
func (r Row) Int(field string) int {
	v, ok := r[field]
	if !ok || v == nil {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Time parses the named field as an RFC 3339 timestamp. Returns the zero
// time when absent or malformed.
func (r Row) Time(field string) time.Time {
	s := r.Str(field)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
