// Package match provides the pure similarity primitives used by duplicate
// detection: normalized string similarity, calendar-day distance, and
// line-item-set similarity. Nothing in this package performs I/O.
package match

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/mataresit/dupecheck/internal/model"
)

// descriptionMatchThreshold is the per-item similarity floor used when
// comparing line-item descriptions across two receipts.
const descriptionMatchThreshold = 0.8

// StringSimilarity returns a normalized similarity in [0,1] between two
// strings. Comparison is case-insensitive and whitespace-trimmed: equal
// strings score 1.0, and an empty string on either side scores 0.0.
// Otherwise the score is 1 - editDistance/max(len(a), len(b)).
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	return 1 - float64(dist)/float64(longest)
}

// DateDifferenceDays returns the absolute difference between two calendar
// dates in whole days, rounded up.
func DateDifferenceDays(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// LineItemSimilarity compares two line-item sets and returns a score in
// [0,1]. The score averages a count similarity (min/max of set sizes)
// with a description similarity (fraction of items in the first set that
// fuzzily match something in the second, over the larger set size).
// Either set being empty scores 0.
func LineItemSimilarity(a, b []model.LineItem) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	smaller, larger := len(a), len(b)
	if smaller > larger {
		smaller, larger = larger, smaller
	}
	countSimilarity := float64(smaller) / float64(larger)

	matched := 0
	for _, itemA := range a {
		for _, itemB := range b {
			if StringSimilarity(itemA.Description, itemB.Description) > descriptionMatchThreshold {
				matched++
				break
			}
		}
	}
	descriptionSimilarity := float64(matched) / float64(larger)

	return (countSimilarity + descriptionSimilarity) / 2
}
