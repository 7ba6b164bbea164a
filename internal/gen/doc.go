// Package gen writes one regexwith_gen.go file per package from a plan.
//
// Generation approach uses text/template + go/format for readable Go code.
//
// Per annotated type T it emits:
//   - _TPattern, a lazily compiled capture.Pattern
//   - _TCapturable, an empty type implementing capture.Provider
//   - ParseT, which runs de.FromString over _TCapturable (fromstr only)
//   - (*T).UnmarshalText delegating to ParseT, unless T declares one
package gen
