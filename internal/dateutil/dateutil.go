// Package dateutil resolves post dates: the "auto" default written into
// generated front matter and the free-form dates authors put there.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat reports a malformed "auto" value or date pattern.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength bounds a date pattern.
const MaxDateFormatLength = 50

// DefaultDateFormat is the pattern behind a bare "auto".
const DefaultDateFormat = "YYYY-MM-DD"

// DatePresets are named patterns usable as "auto:<name>".
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokenReplacer tries longer tokens first at each position.
var tokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"MMM", "Jan",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// ParseDateFormat turns a pattern such as "DD/MM/YYYY" into a Go layout.
// Text inside square brackets is copied verbatim; everything else outside
// the tokens YYYY YY MMMM MMM MM M DD D is kept as is.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest := format
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			layout.WriteString(tokenReplacer.Replace(rest))
			break
		}
		layout.WriteString(tokenReplacer.Replace(rest[:open]))

		closing := strings.IndexByte(rest[open+1:], ']')
		if closing < 0 {
			pos := len(format) - len(rest) + open
			return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
		}
		layout.WriteString(rest[open+1 : open+1+closing])
		rest = rest[open+closing+2:]
	}
	return layout.String(), nil
}

// ResolveDate expands the "auto" forms against now and returns any other
// value untouched:
//
//	auto            now as YYYY-MM-DD
//	auto:PRESET     now in a DatePresets pattern (case-insensitive)
//	auto:PATTERN    now in a custom pattern
func ResolveDate(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	pattern := DefaultDateFormat
	if lower != "auto" {
		custom, ok := strings.CutPrefix(value[len("auto"):], ":")
		if !ok {
			return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		if custom == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		pattern = custom
		if preset, ok := DatePresets[strings.ToLower(custom)]; ok {
			pattern = preset
		}
	}

	layout, err := ParseDateFormat(pattern)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// postDateLayouts are tried in order; zone-less values are taken as UTC.
var postDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParsePostDate reads a front-matter date. ok is false when no layout fits.
func ParsePostDate(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range postDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
