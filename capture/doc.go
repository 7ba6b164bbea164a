// Package capture defines the capture provider capability: matching a
// pre-compiled pattern against a haystack and reporting its named groups.
//
// Generated code holds one Pattern per annotated type. The pattern is
// compiled on first use and reused for the lifetime of the process.
package capture
