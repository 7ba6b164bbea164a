// Package decode is a small visitor-based deserialization framework.
//
// A Deserializer is a data source that is asked for a particular shape (a
// map, a struct, a uint64, ...) and answers by calling the matching method
// on a Visitor. Unmarshal walks a Go value reflectively, issues one request
// per value and stores whatever the visitor receives.
//
// Struct fields are bound by name:
//
//	type Record struct {
//		ID   uint64  `regex:"id"`
//		Name string  // matches "Name", then "name" case-insensitively
//		Age  *uint8  // optional: nil when absent
//		Note string  `regex:",default"` // optional: zero when absent
//		Skip string  `regex:"-"`
//	}
//
// Scalars arrive as plain strings through Plain and are converted with the
// plain package.
package decode
