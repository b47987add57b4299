// Package match ranks known names by similarity to an unresolved one, for
// "did you mean" suggestions in layout diagnostics.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - NormalizeName: folds case and separators before comparing
//   - Suggest: picks the closest candidates for a name
package match
