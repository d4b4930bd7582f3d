package model

import (
	"slices"

	"source-composer/internal/annotation"
	"source-composer/internal/common"
)

// Kind represents the kind of a canonical type.
type Kind int

const (
	KindUnknown Kind = iota // extended but never declared in the run
	KindClass
	KindStruct
	KindEnum
	KindProtocol
	KindProtocolComposition
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindProtocol:
		return "protocol"
	case KindProtocolComposition:
		return "protocolComposition"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML encodes the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// AccessLevel is a declaration's visibility.
type AccessLevel string

const (
	AccessOpen        AccessLevel = "open"
	AccessPublic      AccessLevel = "public"
	AccessPackage     AccessLevel = "package"
	AccessInternal    AccessLevel = "internal"
	AccessFilePrivate AccessLevel = "fileprivate"
	AccessPrivate     AccessLevel = "private"
)

// ParseAccessLevel maps written access text to a level; empty or
// unrecognized text is internal.
func ParseAccessLevel(s string) AccessLevel {
	switch l := AccessLevel(s); l {
	case AccessOpen, AccessPublic, AccessPackage, AccessFilePrivate, AccessPrivate:
		return l
	default:
		return AccessInternal
	}
}

// Type is the canonical, merged representation of every declaration
// sharing an identity.
type Type struct {
	Identity string // dot-qualified path, e.g. "Outer.Inner"
	Name     string // last path component
	Kind     Kind

	// IsExtension is true only if no primary declaration contributed.
	IsExtension bool
	// IsSynthetic marks compositions materialized from inline expressions.
	IsSynthetic bool

	AccessLevel AccessLevel
	Modifiers   []string
	Annotations annotation.Map

	InheritedTypeNames []string
	InheritedTypes     []*Type // resolvable subset of InheritedTypeNames, in order

	ComposedTypeNames []string
	ComposedTypes     []*Type

	GenericParameters   []*GenericParameter
	GenericRequirements []*GenericRequirement

	Variables []*Variable
	Methods   []*Method
	Cases     []*EnumCase

	Typealiases    []*Typealias
	ContainedTypes []*Type
	Parent         *Type

	// RawTypeName is the raw value type of an enum, if any.
	RawTypeName *TypeName

	// AllVariables and AllMethods are the flattened member views:
	// own members first, then inherited ones by signature.
	AllVariables []*Variable
	AllMethods   []*Method
}

// IsProtocol returns true for declared protocols.
func (t *Type) IsProtocol() bool {
	return t.Kind == KindProtocol
}

// IsUnknownExtension returns true for types only known through extensions.
func (t *Type) IsUnknownExtension() bool {
	return t.Kind == KindUnknown && t.IsExtension
}

// IsIndirect returns true for enums declared indirect.
func (t *Type) IsIndirect() bool {
	return slices.Contains(t.Modifiers, "indirect")
}

// Variable returns the own variable with the given name, or nil.
func (t *Type) Variable(name string) *Variable {
	for _, v := range t.Variables {
		if v.Name == name {
			return v
		}
	}

	return nil
}

// Method returns the first own method with the given name or selector, or nil.
func (t *Type) Method(name string) *Method {
	for _, m := range t.Methods {
		if m.Name == name || m.Selector == name {
			return m
		}
	}

	return nil
}

// Case returns the enum case with the given name, or nil.
func (t *Type) Case(name string) *EnumCase {
	for _, c := range t.Cases {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ContainedType returns the directly nested type with the given local name, or nil.
func (t *Type) ContainedType(name string) *Type {
	for _, c := range t.ContainedTypes {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// GenericParameter is a generic parameter with an optional bound.
type GenericParameter struct {
	Name          string
	BoundTypeName *TypeName
}

// GenericRequirement is a "where" constraint: Left : Right or Left == Right.
type GenericRequirement struct {
	LeftTypeName  *TypeName
	RightTypeName *TypeName
	Relationship  string // ":" or "=="
}

// String renders the requirement as written, e.g. "T: Equatable".
func (r *GenericRequirement) String() string {
	if r.Relationship == ":" {
		return r.LeftTypeName.String() + ": " + r.RightTypeName.String()
	}

	return r.LeftTypeName.String() + " " + r.Relationship + " " + r.RightTypeName.String()
}

// Graph is the identity -> Type arena of one composition run.
type Graph struct {
	types      []*Type
	byIdentity map[string]*Type
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{byIdentity: make(map[string]*Type)}
}

// Add registers t under its identity. It returns false, leaving the graph
// unchanged, if another type already holds the identity.
func (g *Graph) Add(t *Type) bool {
	if _, exists := g.byIdentity[t.Identity]; exists {
		return false
	}

	g.byIdentity[t.Identity] = t
	g.types = append(g.types, t)

	return true
}

// Get returns the type with the given identity, or nil if not found.
func (g *Graph) Get(identity string) *Type {
	return g.byIdentity[identity]
}

// Types returns every type in first-discovery order.
func (g *Graph) Types() []*Type {
	return g.types
}

// Identities returns every identity in first-discovery order.
func (g *Graph) Identities() []string {
	ids := make([]string, len(g.types))
	for i, t := range g.types {
		ids[i] = t.Identity
	}

	return ids
}

// Len returns the number of types.
func (g *Graph) Len() int {
	return len(g.types)
}
