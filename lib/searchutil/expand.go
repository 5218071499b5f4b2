package searchutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// ExpandString expands ${ENV_VAR} references.
func ExpandString(in string) (string, error) {
	var errors []error

	expanded := os.Expand(in, func(name string) string {
		value, found := os.LookupEnv(name)
		if !found {
			err := EnvVarLookupError{Var: name, Err: ErrNotExist}
			errors = append(errors, err)
		}
		return value
	})

	return expanded, errorOrNil(errors)
}

// ExpandPath expands ${ENV_VAR} references, ~ and ~user references, and makes
// the path absolute (by assuming it is relative to the current directory).
//
// The path "-" is returned unchanged, as it conventionally means stdin.
func ExpandPath(in string) (string, error) {
	if in == "-" {
		return in, nil
	}

	var errors []error

	expanded, err := ExpandString(in)
	if err != nil {
		if multi, ok := err.(*multierror.Error); ok {
			errors = multi.Errors
		} else {
			errors = append(errors, err)
		}
	}

	if expanded == "" {
		errors = append(errors, ErrExpectNonEmpty)
		return expanded, errorOrNil(errors)
	}

	if expanded[0] == '~' {
		var userName string
		var rest string
		if i := strings.IndexByte(expanded, '/'); i >= 0 {
			userName, rest = expanded[1:i], expanded[i+1:]
		} else {
			userName = expanded[1:]
		}

		var homeDir string
		if value, found := os.LookupEnv("HOME"); found && userName == "" {
			homeDir = value
		} else if u, err := lookupUserByName(userName); err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = filepath.Join("/home", userName)
			errors = append(errors, err)
		}
		expanded = filepath.Join(homeDir, rest)
	}

	if !filepath.IsAbs(expanded) {
		abs, err := filepath.Abs(expanded)
		if err != nil {
			errors = append(errors, err)
			abs = expanded
		}
		expanded = abs
	}
	expanded = filepath.Clean(expanded)

	return expanded, errorOrNil(errors)
}

func lookupUserByName(userName string) (*user.User, error) {
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if _, ok := err.(user.UnknownUserError); ok {
		err = ErrNotExist
	}
	if err != nil {
		return nil, LookupUserByNameError{Name: userName, Err: err}
	}
	return u, nil
}

func errorOrNil(errors []error) error {
	switch uint(len(errors)) {
	case 0:
		return nil
	case 1:
		return errors[0]
	default:
		return &multierror.Error{Errors: errors}
	}
}
