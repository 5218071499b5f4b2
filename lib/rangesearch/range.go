package rangesearch

import (
	"fmt"
)

// LessFunc reports whether the key of elem is strictly less than key.
//
// It must be pure: repeated calls with equal arguments must return equal
// results.
type LessFunc[T any, K any] func(elem T, key K) bool

// Range represents a half-open range of keys.  Matching elements are greater
// than or equal to Lo but strictly less than Hi.
//
// Nothing checks that Lo comes before Hi.  An inverted range simply matches
// nothing.
type Range[K any] struct {
	Lo K
	Hi K
}

// String returns a human-readable string representation of this Range.
func (r Range[K]) String() string {
	return fmt.Sprintf("[%v,%v)", r.Lo, r.Hi)
}

// ContainsBy returns true if elem lies within r, as judged by lt.
func ContainsBy[T any, K any](elem T, r Range[K], lt LessFunc[T, K]) bool {
	return lt(elem, r.Hi) && !lt(elem, r.Lo)
}
