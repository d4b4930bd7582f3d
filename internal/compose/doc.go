// Package compose builds the canonical type graph of a composition run.
//
// The pipeline runs in fixed stages over a complete snapshot of
// normalized declarations:
//
//  1. merge: DeclEntry values are grouped by identity and folded into one
//     canonical model.Type each, primary declarations first, then
//     extensions in file order.
//  2. alias: typealias chains are resolved in their declaring scope and
//     protocol compositions reached through an alias are materialized.
//  3. link: every type-name occurrence is resolved to the Type it denotes.
//     Links are lookups by identity into the graph, so self-referential and
//     mutually recursive declarations need no special handling.
//  4. flatten: each type's visible members are computed across
//     inheritance, requirements first, then defaults, nearest ancestor first.
//
// Recoverable problems are reported as diagnostics in the Result. Only an
// internal invariant violation aborts the run, with an error wrapping
// ErrInvariant.
package compose
