package misc

import (
	multierror "github.com/hashicorp/go-multierror"
)

// ErrorOrNil collapses an accumulated multierror.Error: nil if it holds no
// errors, the sole error if it holds one, or a flattened copy otherwise.  Nil
// entries are dropped and nested *multierror.Error values are spliced in.
func ErrorOrNil(multi multierror.Error) error {
	clone := &multierror.Error{
		Errors:      make([]error, 0, len(multi.Errors)),
		ErrorFormat: multi.ErrorFormat,
	}
	flatten(clone, multi.Errors...)

	switch uint(len(clone.Errors)) {
	case 0:
		return nil
	case 1:
		return clone.Errors[0]
	default:
		return clone
	}
}

func flatten(out *multierror.Error, errs ...error) {
	for _, e := range errs {
		switch x := e.(type) {
		case nil:
			// skip
		case *multierror.Error:
			if x != nil {
				flatten(out, x.Errors...)
			}
		default:
			out.Errors = append(out.Errors, e)
		}
	}
}
