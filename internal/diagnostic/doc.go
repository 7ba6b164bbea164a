// Package diagnostic provides structured errors, warnings, and notes
// produced while scanning annotated types and planning generated code.
//
// Key capabilities:
//   - Directive errors (unknown verbs or keys, missing patterns)
//   - Pattern errors (invalid syntax)
//   - Binding lints (unbound fields, unused groups, unanchored patterns)
//   - "Did you mean" suggestions for near-miss field and group names
package diagnostic
