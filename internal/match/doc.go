// Package match provides identifier normalization and edit-distance ranking
// used to suggest capture group names for unbound struct fields, and field
// names for unused groups.
//
// Key functions:
//   - NormalizeIdent: folds CamelCase, snake_case and kebab-case to one form
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names by normalized similarity
package match
