package decode

import (
	"fmt"
	"reflect"
)

// Error is a structural error raised by the framework itself, such as a
// missing field or a value of the wrong shape.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf formats a framework error.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// InvalidType reports a value of the wrong shape.
func InvalidType(unexpected, expected string) error {
	return Errorf("invalid type: %s, expected %s", unexpected, expected)
}

// MissingField reports a required field absent from the input.
func MissingField(name string) error {
	return Errorf("missing field %q", name)
}

// DuplicateField reports a field that appeared more than once.
func DuplicateField(name string) error {
	return Errorf("duplicate field %q", name)
}

// InvalidLength reports a sequence of the wrong length.
func InvalidLength(n int, expected string) error {
	return Errorf("invalid length %d, expected %s", n, expected)
}

// InvalidValue reports a value that has the right shape but does not fit.
func InvalidValue(value any, expected string) error {
	return Errorf("invalid value: %v, expected %s", value, expected)
}

// InvalidUnmarshalError describes an invalid argument passed to Unmarshal.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "decode: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "decode: Unmarshal(non-pointer " + e.Type.String() + ")"
	}

	return "decode: Unmarshal(nil " + e.Type.String() + ")"
}
