// Package source defines the raw declaration stream handed to the composer
// by a syntax parser, and loads it from YAML files.
//
// Key types:
//   - File: one source file's declarations and free-standing comments
//   - RawDeclaration: a type, extension, typealias, function or global
//   - RawMember: a variable, method, enum case or nested declaration
//   - RawParameter: a method parameter or enum case associated value
package source
