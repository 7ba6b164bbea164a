// Package analyze loads Go packages and extracts the annotated record types.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// model of every top-level type declaration, its fields, and the regexwith
// directives found in its doc comment.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind, fields, directives and unmarshal capabilities
//   - FieldInfo: describes field name, type, tag, and embedding
//   - Directives: parsed //regexwith: comment lines
//   - PatternInfo: named groups and anchoring of a pattern
package analyze
