// Package de presents a single regular expression match as a decode source.
//
// A Source runs its capture provider once and offers the named, participating
// groups to the decode framework as a string-keyed map, whatever shape the
// framework asks for. Each group value is a plain string converted by the
// target field's type.
//
//	rec, err := de.FromString[Record](input, _RecordCapturable{})
//
// Errors are reported as *Error with one of three kinds: KindNoMatch when the
// pattern does not match, KindPlain when a value fails to convert, and
// KindCustom for structural problems such as a missing required field. Only
// the top-level Kind says which: a field whose own parser found no match
// is a KindPlain failure of the outer record, even though errors.Is still
// finds ErrNoMatch in its chain.
package de
