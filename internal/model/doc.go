// Package model defines the composed declaration graph handed to
// templates: canonical types, their members, typealiases, and parsed
// type-name expressions linked to the declarations they denote.
//
// Key types:
//   - Graph: identity -> *Type arena in first-discovery order
//   - Type: one canonical type merged from a declaration and its extensions
//   - TypeName: a parsed type expression ([T], [K: V], (A) -> B, A & B, T?)
//   - Variable, Method, EnumCase, AssociatedValue, Typealias
//
// Links between types are shared pointers into the arena, so self and
// mutually recursive references need no special handling.
package model
