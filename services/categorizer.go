package services

import (
	"sort"
	"strings"

	"playstore-dashboard/models"
)

// BucketRating maps a rating onto its star bucket. NaN compares false against
// both thresholds and therefore lands in the lowest bucket.
func BucketRating(r float64) models.RatingGroup {
	if r >= 4 {
		return models.RatingHigh
	} else if r >= 3 {
		return models.RatingMid
	}
	return models.RatingLow
}

// TopN returns the n most frequent non-empty keys of rows, most frequent first.
// Ties keep the order in which the keys were first seen.
func TopN[T any](rows []T, key func(T) string, n int) []string {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		k := key(r)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// KeepIn keeps the rows whose key is one of keys.
func KeepIn[T any](rows []T, key func(T) string, keys []string) []T {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return filter(rows, func(r T) bool {
		_, ok := set[key(r)]
		return ok
	})
}

// ExcludeByPrefix drops the rows whose field starts with any of prefixes.
func ExcludeByPrefix[T any](rows []T, field func(T) string, prefixes ...string) []T {
	return filter(rows, func(r T) bool { return !hasAnyPrefix(field(r), prefixes) })
}

// KeepByPrefix keeps only the rows whose field starts with one of prefixes.
func KeepByPrefix[T any](rows []T, field func(T) string, prefixes ...string) []T {
	return filter(rows, func(r T) bool { return hasAnyPrefix(field(r), prefixes) })
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
