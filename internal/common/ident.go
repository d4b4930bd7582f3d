package common

import "strings"

// IdentitySep separates path components of a declaration identity.
const IdentitySep = "."

// UnknownStr is the string form of unknown enum values.
const UnknownStr = "unknown"

// JoinIdentity builds a dot-qualified identity from a parent identity and a name.
// Returns name unchanged if parent is empty.
func JoinIdentity(parent, name string) string {
	if parent == "" {
		return name
	}

	if name == "" {
		return parent
	}

	return parent + IdentitySep + name
}

// PathIdentity joins an ancestor chain and a name into an identity.
func PathIdentity(path []string, name string) string {
	return JoinIdentity(strings.Join(path, IdentitySep), name)
}

// ParentIdentity returns the identity of the enclosing scope, or empty string at file scope.
// Example: "Foo.Bar.Baz" -> "Foo.Bar".
func ParentIdentity(identity string) string {
	if i := strings.LastIndex(identity, IdentitySep); i >= 0 {
		return identity[:i]
	}

	return ""
}

// LocalName returns the last component of an identity.
// Example: "Foo.Bar.Baz" -> "Baz".
func LocalName(identity string) string {
	if i := strings.LastIndex(identity, IdentitySep); i >= 0 {
		return identity[i+1:]
	}

	return identity
}

// ScopeChain returns the lookup scopes for a scope identity, innermost first,
// always ending with the file scope ("").
// Example: "A.B" -> ["A.B", "A", ""].
func ScopeChain(scope string) []string {
	chain := make([]string, 0, strings.Count(scope, IdentitySep)+2)

	for scope != "" {
		chain = append(chain, scope)
		scope = ParentIdentity(scope)
	}

	return append(chain, "")
}
