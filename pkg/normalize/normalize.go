// pkg/normalize/normalize.go
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ordinalRe = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)\b`)
	offsetRe  = regexp.MustCompile(`(?i)[,\s]*\(?(?:UTC|GMT)(?:\s*[+-]\d{1,2}(?::\d{2})?)?\)?\s*$`)
)

// dateLayouts are tried in order. The legacy export mixes long-form
// dates from dropdown fields with short numeric dates from formulas.
var dateLayouts = []string{
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/06",
}

// Date converts a human-readable date string into an ISO-8601 UTC
// instant. Ordinal suffixes ("June 2nd, 2024") and trailing UTC-offset
// annotations are stripped before parsing. The second return value is
// false when nothing parseable remains; an invalid-date marker never
// leaks through.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	s = ordinalRe.ReplaceAllString(s, "$1")
	s = offsetRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}

	// Epoch milliseconds show up in raw exports of date columns.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 1e11 {
		return time.UnixMilli(ms).UTC().Format(time.RFC3339), true
	}

	return "", false
}

// Currency parses a money field such as "$1,500.00". Empty or
// unparseable input yields exactly 0, never NaN: billing math
// downstream sums these values without nil checks.
func Currency(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Number parses a plain numeric field. Unlike Currency, absence is
// meaningful here: the second return value distinguishes "no value
// recorded" from "recorded as zero".
func Number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
