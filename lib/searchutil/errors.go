package searchutil

import (
	"fmt"
	"io/fs"

	"google.golang.org/grpc/codes"
)

// ErrNotExist signals that something does not exist.
var ErrNotExist = notExistError(0)

// ErrExpectNonEmpty et al signal that input parsing has failed.
var (
	ErrExpectNonEmpty     = inputError("expected non-empty string")
	ErrExpectTimestamp    = inputError("expected RFC 3339 timestamp or Unix seconds")
	ErrExpectKnownFormat  = inputError("expected one of \"json\", \"rfc3339\", \"unix\"")
	ErrExpectTimeAsString = inputError("expected JSON string or number")
)

// type notExistError {{{

// notExistError represents failure to locate something.
type notExistError int

// Error fulfills the error interface.
func (err notExistError) Error() string {
	return "does not exist"
}

// Is returns true for fs.ErrNotExist.
func (err notExistError) Is(other error) bool {
	return other == fs.ErrNotExist
}

// GRPCStatusCode returns the GRPC status code "NotFound".
func (err notExistError) GRPCStatusCode() codes.Code {
	return codes.NotFound
}

var _ error = notExistError(0)

// }}}

// type inputError {{{

// inputError represents failure to parse an input.
type inputError string

// Error fulfills the error interface.
func (err inputError) Error() string {
	return string(err)
}

// GRPCStatusCode returns the GRPC status code "InvalidArgument".
func (err inputError) GRPCStatusCode() codes.Code {
	return codes.InvalidArgument
}

var _ error = inputError("")

// }}}

// type CheckError {{{

// CheckError represents an assertion failure.
type CheckError struct {
	Message string
}

// Error fulfills the error interface.
func (err CheckError) Error() string {
	return err.Message
}

// GRPCStatusCode returns the GRPC status code "Internal".
func (err CheckError) GRPCStatusCode() codes.Code {
	return codes.Internal
}

var _ error = CheckError{}

// }}}

// type TimeError {{{

// TimeError represents failure to parse a timestamp.
type TimeError struct {
	Input string
	Err   error
}

// Error fulfills the error interface.
func (err TimeError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", err.Input, err.Err)
}

// Unwrap returns the underlying cause of this error.
func (err TimeError) Unwrap() error {
	return err.Err
}

// GRPCStatusCode returns the GRPC status code "InvalidArgument".
func (err TimeError) GRPCStatusCode() codes.Code {
	return codes.InvalidArgument
}

var _ error = TimeError{}

// }}}

// type FlagError {{{

// FlagError indicates an error in the value of one command line flag.
type FlagError struct {
	Flag  string
	Value string
	Err   error
}

// Error fulfills the error interface.
func (err FlagError) Error() string {
	return fmt.Sprintf("--%s=%q: %v", err.Flag, err.Value, err.Err)
}

// Unwrap returns the underlying cause of this error.
func (err FlagError) Unwrap() error {
	return err.Err
}

var _ error = FlagError{}

// }}}

// type EnvVarLookupError {{{

// EnvVarLookupError represents failure to look up an environment variable.
type EnvVarLookupError struct {
	Var string
	Err error
}

// Error fulfills the error interface.
func (err EnvVarLookupError) Error() string {
	return fmt.Sprintf("invalid environment variable ${%s}: %v", err.Var, err.Err)
}

// Unwrap returns the underlying cause of this error.
func (err EnvVarLookupError) Unwrap() error {
	return err.Err
}

var _ error = EnvVarLookupError{}

// }}}

// type LookupUserByNameError {{{

// LookupUserByNameError represents failure to look up an OS user by name.
type LookupUserByNameError struct {
	Name string
	Err  error
}

// Error fulfills the error interface.
func (err LookupUserByNameError) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("\"os/user\".Current() failed: %v", err.Err)
	}
	return fmt.Sprintf("\"os/user\".Lookup(%q) failed: %v", err.Name, err.Err)
}

// Unwrap returns the underlying cause of this error.
func (err LookupUserByNameError) Unwrap() error {
	return err.Err
}

var _ error = LookupUserByNameError{}

// }}}
