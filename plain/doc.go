// Package plain converts plain strings into scalar values.
//
// It is the scalar half of the decode framework: every capture value reaches
// a record field as an unadorned string and is converted here according to
// the field's type. Failures are reported as *Error.
package plain
