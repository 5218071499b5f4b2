package searchutil

import (
	"fmt"
)

// Assert panics with CheckError if cond is false.
func Assert(cond bool, message string) {
	if cond {
		return
	}
	panic(CheckError{Message: message})
}

// Assertf panics with CheckError if cond is false.  The message is only
// formatted on failure.
func Assertf(cond bool, format string, v ...interface{}) {
	if cond {
		return
	}
	message := fmt.Sprintf(format, v...)
	panic(CheckError{Message: message})
}
