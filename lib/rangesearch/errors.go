package rangesearch

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// ErrUnsorted signals that a list is not partitioned by a key.  Every
// UnsortedError matches it under errors.Is.
var ErrUnsorted = unsortedError(0)

// Bound identifies one side of a Range.
type Bound uint8

const (
	BoundLo Bound = iota
	BoundHi
)

// String returns the name of the Range field for this Bound.
func (bound Bound) String() string {
	if bound == BoundHi {
		return "Hi"
	}
	return "Lo"
}

// type unsortedError {{{

type unsortedError int

// Error fulfills the error interface.
func (err unsortedError) Error() string {
	return "list is not sorted"
}

// GRPCStatusCode returns the GRPC status code "FailedPrecondition".
func (err unsortedError) GRPCStatusCode() codes.Code {
	return codes.FailedPrecondition
}

var _ error = unsortedError(0)

// }}}

// type UnsortedError {{{

// UnsortedError reports an element which compares less than a key even though
// an earlier element does not.
type UnsortedError struct {
	Bound Bound
	Index uint
	Prev  uint
}

// Error fulfills the error interface.
func (err UnsortedError) Error() string {
	return fmt.Sprintf(
		"list is not partitioned by Range.%s: list[%d] is less than the key, but list[%d] is not",
		err.Bound,
		err.Index,
		err.Prev,
	)
}

// Is returns true for ErrUnsorted.
func (err UnsortedError) Is(other error) bool {
	return other == ErrUnsorted
}

// GRPCStatusCode returns the GRPC status code "FailedPrecondition".
func (err UnsortedError) GRPCStatusCode() codes.Code {
	return codes.FailedPrecondition
}

var _ error = UnsortedError{}

// }}}
