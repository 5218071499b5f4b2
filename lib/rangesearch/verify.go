package rangesearch

import (
	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

// DebugSamples is the number of indices probed per bound when the debug
// assertion mode is compiled in.
const DebugSamples = 64

// VerifyBy checks that list is partitioned by both r.Lo and r.Hi, probing up
// to samples evenly spaced indices (always including the first and the last).
// A samples value of 0 probes every index, which costs O(N).
//
// It returns nil if no violation was observed, or an UnsortedError describing
// the first one found.  A nil result from a sampled check is not a proof that
// list is sorted.
func VerifyBy[T any, K any](list []T, r Range[K], lt LessFunc[T, K], samples uint) error {
	if err := verifyBound(list, BoundLo, r.Lo, lt, samples); err != nil {
		return err
	}
	return verifyBound(list, BoundHi, r.Hi, lt, samples)
}

func verifyBound[T any, K any](list []T, bound Bound, key K, lt LessFunc[T, K], samples uint) error {
	length := uint(len(list))
	if length < 2 {
		return nil
	}

	if samples == 0 || samples > length {
		samples = length
	}
	if samples < 2 {
		samples = 2
	}

	var (
		prev    uint
		seenNot bool
	)
	span := uint64(length - 1)
	steps := uint64(samples - 1)
	for step := uint64(0); step <= steps; step++ {
		index := uint(step * span / steps)
		if !lt(list[index], key) {
			if !seenNot {
				prev = index
				seenNot = true
			}
			continue
		}
		if seenNot {
			return UnsortedError{Bound: bound, Index: index, Prev: prev}
		}
	}
	return nil
}

func checkPartitioned[T any, K any](list []T, r Range[K], lt LessFunc[T, K]) {
	err := VerifyBy(list, r, lt, DebugSamples)
	searchutil.Assertf(err == nil, "rangesearch: %v", err)
}
