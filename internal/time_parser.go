// internal/time_parser.go
// ------------------------
// This internal package provides helper functions for parsing and formatting
// time values. Tools use these to stamp output envelopes with ISO-8601
// timestamps and to apply date-range filters to provider payloads whose
// timestamps arrive in provider-specific formats.
//
// Functions:
// - NowISO: current UTC time as an ISO-8601 / RFC 3339 string.
// - ParseDate: accept "2006-01-02" or full RFC 3339 input strings.
// - ParseProviderTime: tolerant parse of timestamp strings seen in provider payloads.
// - WithinRange: check a timestamp against an optional [from, to] window.
package internal

import (
	"fmt"
	"strings"
	"time"
)

// providerTimeLayouts covers the timestamp shapes upstream NFT APIs emit.
var providerTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// NowISO returns the current UTC time formatted as ISO-8601.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseDate parses a caller-supplied date argument. A bare date is taken as
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// ParseProviderTime parses a timestamp string from a provider payload,
// trying the known layouts in order. Returns the zero time when nothing
// matches.
func ParseProviderTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range providerTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// WithinRange reports whether t falls inside the optional window. Zero-valued
// bounds are open ends; a zero t passes only a fully open window.
func WithinRange(t, from, to time.Time) bool {
	if t.IsZero() {
		return from.IsZero() && to.IsZero()
	}
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
