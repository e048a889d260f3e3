package services

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// missingTokens are the cell values treated as null when reading the source
// tables, matching the usual CSV reader defaults.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell holds a null marker.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// HasDigit reports whether s contains at least one decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ParseCount coerces a noisy count such as "1,000,000+" or "2,345" into an
// integer. It returns false when the value has no digit or when something other
// than digits remains after the separators and trailing plus are removed.
func ParseCount(s string) (uint64, bool) {
	if !HasDigit(s) {
		return 0, false
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "+")
	n, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRating returns the rating as a float, or NaN when it is missing or
// unparseable. NaN is kept on purpose so bucketing sees the same value the
// source table had.
func ParseRating(s string) float64 {
	if IsMissing(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseDate parses a free-text date like "January 7, 2018" in UTC.
func ParseDate(s string) (time.Time, bool) {
	if IsMissing(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormaliseLabel maps null markers in a categorical cell to "".
// Other values are returned untouched so joins and prefix filters see the raw text.
func NormaliseLabel(s string) string {
	if IsMissing(s) {
		return ""
	}
	return s
}
