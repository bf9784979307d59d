package extensions

import (
	"strings"
	"time"
)

// FilterMultiplePtr return all pointers that satisfy the predicate
func FilterMultiplePtr[T any](elements []*T, predicate func(*T) bool) (results []*T) {
	for _, element := range elements {
		if predicate(element) {
			results = append(results, element)
		}
	}
	return
}

// MapPtr applies f to every pointer, nil elements are skipped
func MapPtr[T, R any](elements []*T, f func(*T) R) []R {
	results := make([]R, 0, len(elements))
	for _, element := range elements {
		if element != nil {
			results = append(results, f(element))
		}
	}
	return results
}

// AreEqual is a simple case invariant string comparason
func AreEqual(s, c string) bool {
	return strings.EqualFold(s, c)
}

// FmtShort formats a time in a date only string
func FmtShort(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseShort parses a date only string as a UTC midnight
func ParseShort(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.UTC)
}
