package model

import (
	"strings"

	"source-composer/internal/annotation"
)

// Variable is a stored or computed property, or a file-scope global.
type Variable struct {
	Name         string
	TypeName     *TypeName
	AccessLevel  AccessLevel
	Modifiers    []string
	IsStatic     bool
	IsComputed   bool
	IsReadOnly   bool
	DefaultValue string
	Annotations  annotation.Map

	// DefinedIn is the identity of the declaring type, empty for globals.
	DefinedIn string
	// IsDefault marks variables provided by a protocol extension.
	IsDefault bool
}

// Signature identifies the variable for de-duplication.
func (v *Variable) Signature() string {
	if v.IsStatic {
		return "static var " + v.Name
	}

	return "var " + v.Name
}

// Type returns the linked type of the variable, or nil.
func (v *Variable) Type() *Type {
	return v.TypeName.Linked()
}

// MethodParameter is a parameter of a method or function.
type MethodParameter struct {
	Label        string // argument label; "_" for none, empty if same as Name
	Name         string
	TypeName     *TypeName
	DefaultValue string
	Annotations  annotation.Map
}

// ArgumentLabel returns the label callers write, or "_" if none.
func (p *MethodParameter) ArgumentLabel() string {
	switch {
	case p.Label != "":
		return p.Label
	case p.Name != "":
		return p.Name
	default:
		return "_"
	}
}

// Method is a method, initializer, or free function.
type Method struct {
	Name           string // short name, e.g. "move"
	Selector       string // e.g. "move(to:animated:)"
	Parameters     []*MethodParameter
	ReturnTypeName *TypeName // nil for Void
	Throws         bool
	Async          bool
	IsStatic       bool
	AccessLevel    AccessLevel
	Modifiers      []string
	Annotations    annotation.Map

	GenericParameters []*GenericParameter

	// DefinedIn is the identity of the declaring type, empty for free functions.
	DefinedIn string
	// IsDefault marks methods provided by a protocol extension.
	IsDefault bool
}

// IsInitializer returns true for initializers.
func (m *Method) IsInitializer() bool {
	return m.Name == "init"
}

// Signature identifies the method for de-duplication: selector, static
// flag, parameter types and return type.
func (m *Method) Signature() string {
	var sb strings.Builder

	if m.IsStatic {
		sb.WriteString("static ")
	}

	sb.WriteString(m.Name)
	sb.WriteByte('(')

	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.ArgumentLabel())
		sb.WriteString(": ")
		sb.WriteString(p.TypeName.String())
	}

	sb.WriteByte(')')

	if m.ReturnTypeName != nil && !m.ReturnTypeName.IsVoid() {
		sb.WriteString(" -> ")
		sb.WriteString(m.ReturnTypeName.String())
	}

	return sb.String()
}

// BuildSelector renders a selector such as "move(to:_:)".
func BuildSelector(name string, params []*MethodParameter) string {
	var sb strings.Builder

	sb.WriteString(name)
	sb.WriteByte('(')

	for _, p := range params {
		sb.WriteString(p.ArgumentLabel())
		sb.WriteByte(':')
	}

	sb.WriteByte(')')

	return sb.String()
}

// EnumCase is a case of an enum.
type EnumCase struct {
	Name             string
	RawValue         string
	AssociatedValues []*AssociatedValue
	IsIndirect       bool
	Annotations      annotation.Map
}

// Signature identifies the case for de-duplication.
func (c *EnumCase) Signature() string {
	return "case " + c.Name
}

// HasAssociatedValues returns true if the case carries a payload.
func (c *EnumCase) HasAssociatedValues() bool {
	return len(c.AssociatedValues) > 0
}

// AssociatedValue is one element of an enum case payload.
type AssociatedValue struct {
	LocalName    string
	ExternalName string
	TypeName     *TypeName
	DefaultValue string
	Annotations  annotation.Map
}

// Type returns the linked type of the associated value, or nil.
func (a *AssociatedValue) Type() *Type {
	return a.TypeName.Linked()
}

// Typealias is a named alias for a type expression.
type Typealias struct {
	Name           string
	Identity       string // dot-qualified with the declaring scope
	ParentIdentity string // declaring scope, empty at file scope
	TypeName       *TypeName
	AccessLevel    AccessLevel
	Annotations    annotation.Map

	Parent *Type
	// ActualTypeName is the alias chain's final, non-alias expression;
	// nil while unresolved (for example, inside a cycle).
	ActualTypeName *TypeName
	// Type is the declaration the chain ends at, if any.
	Type *Type
}
