// Package match provides identifier normalization and Levenshtein distance
// for "did you mean" suggestions when a type or member name does not
// resolve.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against a query
package match
