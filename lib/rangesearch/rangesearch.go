package rangesearch

import (
	"golang.org/x/exp/constraints"
)

// SearchBy returns the sub-slice of list whose elements lie within r.
//
// The result shares its backing array with list.  Its capacity is clipped to
// its length, so appending to it never overwrites elements of list.  If no
// element matches, the result is empty.
func SearchBy[T any, K any](list []T, r Range[K], lt LessFunc[T, K]) []T {
	lo, hi := BoundsBy(list, r, lt)
	return list[lo:hi:hi]
}

// BoundsBy returns the indices [lo, hi) of the elements of list which lie
// within r.  It always holds that lo <= hi <= len(list), even if list is not
// sorted with respect to lt.
func BoundsBy[T any, K any](list []T, r Range[K], lt LessFunc[T, K]) (lo uint, hi uint) {
	if debugChecks {
		checkPartitioned(list, r, lt)
	}

	size := uint(len(list))
	if size == 0 {
		return 0, 0
	}

	var base uint
	for size > 1 {
		half := size / 2
		mid := base + half
		elem := list[mid]
		if lt(elem, r.Lo) {
			base = mid
		} else if lt(elem, r.Hi) {
			// mid is inside the range: Lo is somewhere in [base, mid]
			// and Hi is somewhere in [mid, base+size].
			lo = refine(list, base, half, r.Lo, lt)
			hi = refine(list, mid, size-half, r.Hi, lt)
			return lo, hi
		}
		size -= half
	}

	if elem := list[base]; lt(elem, r.Hi) && !lt(elem, r.Lo) {
		return base, base + 1
	}
	return base, base
}

// PartitionPoint returns the index of the first element of list which is not
// less than key, or len(list) if every element is less than key.
func PartitionPoint[T any, K any](list []T, key K, lt LessFunc[T, K]) uint {
	size := uint(len(list))
	if size == 0 {
		return 0
	}
	return refine(list, 0, size, key, lt)
}

// Search is SearchBy for slices of ordered values, using the < operator.
func Search[T constraints.Ordered](list []T, r Range[T]) []T {
	return SearchBy(list, r, less[T])
}

// Bounds is BoundsBy for slices of ordered values, using the < operator.
func Bounds[T constraints.Ordered](list []T, r Range[T]) (lo uint, hi uint) {
	return BoundsBy(list, r, less[T])
}

// refine returns the first index in [base, base+size] whose element is not
// less than key.  size must be at least 1.
func refine[T any, K any](list []T, base uint, size uint, key K, lt LessFunc[T, K]) uint {
	for size > 1 {
		half := size / 2
		mid := base + half
		if lt(list[mid], key) {
			base = mid
		}
		size -= half
	}
	if lt(list[base], key) {
		base++
	}
	return base
}

func less[T constraints.Ordered](a T, b T) bool {
	return a < b
}
