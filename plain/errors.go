package plain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnsupported is the cause reported when a composite shape (map, struct,
// sequence) is requested from a plain string.
var ErrUnsupported = errors.New("unsupported shape for a plain string")

// Error reports a failed conversion of Input to Type.
type Error struct {
	Input string
	Type  string
	Err   error
}

// Error returns a human-readable description of the failure.
func (e *Error) Error() string {
	return fmt.Sprintf("cannot parse %q as %s: %v", e.Input, e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as an *Error for input and typ. A nil err stays nil and an
// existing *Error is returned unchanged.
func Wrap(input, typ string, err error) error {
	if err == nil {
		return nil
	}

	var pe *Error
	if errors.As(err, &pe) {
		return err
	}

	// strconv errors repeat the function name and input; keep only the cause.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}

	return &Error{Input: input, Type: typ, Err: err}
}
