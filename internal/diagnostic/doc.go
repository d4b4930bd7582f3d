// Package diagnostic provides structured warnings, errors, and infos
// recorded while composing a declaration graph.
//
// Key capabilities:
//   - Malformed annotation and unmatched block reports
//   - Typealias cycle and kind conflict reports
//   - Unresolved reference infos with "did you mean" suggestions
//   - Deterministic merging of per-file diagnostics
package diagnostic
