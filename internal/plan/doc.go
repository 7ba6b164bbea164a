// Package plan turns the analyzed type graph into a generation plan.
//
// Resolution pipeline:
//  1. Select the annotated types (all, or those named with -type)
//  2. Report directive problems and validate each pattern
//  3. Check the target shape: a struct or a map with string keys
//  4. Bind struct fields to named groups the way decode does at runtime
//  5. Emit lints (unbound fields, unused groups, unanchored patterns)
//
// Targets with errors are left out of the plan; the rest are grouped per
// package for the generator.
package plan
