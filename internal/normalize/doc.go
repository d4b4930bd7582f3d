// Package normalize converts raw per-file declarations into DeclEntry values.
//
// Each source file is scanned once for annotation directives, then every
// declaration (including nested ones) becomes a DeclEntry carrying its
// identity, annotations, model members and source order. Files are
// independent and are normalized in parallel; results are concatenated in
// input file order so the output never depends on scheduling.
//
// Declarations with an unrecognized kind are dropped with a diagnostic.
package normalize
