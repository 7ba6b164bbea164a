package plain

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// ParseBool parses s as a boolean.
func ParseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, Wrap(s, "bool", err)
	}

	return b, nil
}

// ParseInt parses s as a base-10 signed integer that fits in bits.
func ParseInt(s string, bits int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, Wrap(s, fmt.Sprintf("int%d", bits), err)
	}

	return n, nil
}

// ParseUint parses s as a base-10 unsigned integer that fits in bits.
func ParseUint(s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, Wrap(s, fmt.Sprintf("uint%d", bits), err)
	}

	return n, nil
}

// ParseFloat parses s as a floating point number of the given size.
func ParseFloat(s string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, Wrap(s, fmt.Sprintf("float%d", bits), err)
	}

	return f, nil
}

// ParseDuration parses s with time.ParseDuration.
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, Wrap(s, "time.Duration", err)
	}

	return d, nil
}

// UnmarshalText feeds s to u and reports failures as *Error.
func UnmarshalText(s string, u encoding.TextUnmarshaler) error {
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return Wrap(s, typeName(u), err)
	}

	return nil
}

// Unsupported returns the error for a shape that cannot come from a plain string.
func Unsupported(s, shape string) error {
	return &Error{Input: s, Type: shape, Err: ErrUnsupported}
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.String()
}
