// Package match provides identifier normalization, Levenshtein distance
// calculation, and suggestion ranking for unresolved type names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known identities closest to an unresolved name
package match
