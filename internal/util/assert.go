package util

import "github.com/pkg/errors"

// Assert panics with a formatted error when cond is false.
// Reserved for broken structural invariants, never for ordinary absence.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
