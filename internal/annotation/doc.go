// Package annotation parses structured key/value annotations out of
// source comments.
//
// A directive is a comment line starting with the configured prefix:
//
//	// sourcery: skipEquality, name = "Custom", weight = 2
//	// sourcery:begin: generated
//	// sourcery:end
//	// sourcery:file: module = Core
//
// Inline directives annotate the next declaration (or the token a
// trailing comment is attached to). Block directives annotate every
// declaration between begin and end. File directives annotate every
// top-level declaration of the file. Precedence, lowest first: file,
// block (outer to inner), inline.
package annotation
