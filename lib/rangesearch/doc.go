// Package rangesearch locates the run of elements of a sorted slice whose keys
// fall inside a half-open range [Lo, Hi).
//
// The search is a two-phase binary search: a coarse bisection narrows the
// window until some element lies inside the range, and then two independent
// bisections find the lower and upper boundaries on either side of it.  The
// worst-case cost is O(log N) comparisons, and no memory is allocated.
//
// Elements and keys may have different types.  They are related only through
// a LessFunc, which reports whether an element's key is strictly less than a
// given key.  The slice must be partitioned by every key: for any key k,
// lt(elem, k) must be true for a prefix of the slice and false for the rest.
// This is not checked.  A slice that violates it produces unspecified bounds,
// but never an out-of-range index and never an infinite loop.  VerifyBy can
// check the precondition at sampled indices, and binaries built with the
// "rangesearch_debug" build tag do so on every search.
//
package rangesearch
