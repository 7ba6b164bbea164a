package de

import (
	"errors"

	"regex-with/plain"
)

// Kind classifies an Error.
type Kind int

const (
	_ Kind = iota
	KindNoMatch
	KindPlain
	KindCustom
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNoMatch:
		return "no match"
	case KindPlain:
		return "plain"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ErrNoMatch matches, under errors.Is, any KindNoMatch error: the pattern
// matched nowhere in the input. errors.Is walks the whole chain, so it also
// reports a nested parser's failure wrapped in a KindPlain error. Use
// errors.As and compare Kind to tell the outer pattern failing apart.
var ErrNoMatch error = &Error{Kind: KindNoMatch}

func noMatch() *Error {
	return &Error{Kind: KindNoMatch}
}

// Error is the error returned by a Source.
type Error struct {
	Kind Kind
	// Msg is the framework-supplied message for KindCustom.
	Msg string
	// Err is the wrapped cause: a *plain.Error for KindPlain, the original
	// framework error for KindCustom.
	Err error
}

// Error returns the error text.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNoMatch:
		return "no match"
	case KindPlain:
		if e.Err == nil {
			return "invalid value"
		}

		return e.Err.Error()
	default:
		return e.Msg
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports NoMatch errors as equal to ErrNoMatch.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Kind == KindNoMatch && e.Kind == KindNoMatch
}

// Custom returns a KindCustom error carrying msg.
func Custom(msg string) *Error {
	return &Error{Kind: KindCustom, Msg: msg}
}

// Plain returns a KindPlain error wrapping a scalar conversion failure.
func Plain(err *plain.Error) *Error {
	if err == nil {
		return &Error{Kind: KindPlain}
	}

	return &Error{Kind: KindPlain, Err: err}
}

// classify folds any error raised while decoding into an *Error.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	// A nested parse failure arrives inside a *plain.Error and stays a
	// conversion failure of the outer field.
	var pe *plain.Error
	if errors.As(err, &pe) {
		return Plain(pe)
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Kind: KindCustom, Msg: err.Error(), Err: err}
}
