package model

import "strings"

// TypeName is a parsed type expression as written in source. Exactly one
// of Array, Dictionary, Tuple, Closure, Generic or Composition is set for
// structured expressions; none is set for a plain (possibly dotted) name.
type TypeName struct {
	Name       string   // text as written, trimmed
	Unwrapped  string   // canonical text without attributes, specifier and optionality
	Attributes []string // e.g. "@escaping"
	Specifier  string   // "inout", "some", "any", ...

	IsOptional            bool
	IsImplicitlyUnwrapped bool

	Array       *ArrayType
	Dictionary  *DictionaryType
	Tuple       *TupleType
	Closure     *ClosureType
	Generic     *GenericType
	Composition []*TypeName

	// ActualTypeName is the alias-resolved expression when Name denotes a typealias.
	ActualTypeName *TypeName
	// Type is the declaration this expression denotes, if any.
	Type *Type
}

// ArrayType is "[Element]".
type ArrayType struct {
	ElementTypeName *TypeName
}

// DictionaryType is "[Key: Value]".
type DictionaryType struct {
	KeyTypeName   *TypeName
	ValueTypeName *TypeName
}

// TupleType is "(a: A, B)".
type TupleType struct {
	Elements []*TupleElement
}

// TupleElement is one element of a tuple.
type TupleElement struct {
	Name     string
	TypeName *TypeName
}

// ClosureType is "(A, B) async throws -> R".
type ClosureType struct {
	Parameters     []*TypeName
	ReturnTypeName *TypeName
	Async          bool
	Throws         bool
}

// GenericType is "Name<A, B>".
type GenericType struct {
	Name           string
	TypeParameters []*TypeName
}

// NewTypeName returns a plain name expression.
func NewTypeName(name string) *TypeName {
	return &TypeName{Name: name, Unwrapped: name}
}

// Linked returns the linked declaration, or nil. Safe on a nil receiver.
func (t *TypeName) Linked() *Type {
	if t == nil {
		return nil
	}

	return t.Type
}

// IsPlain returns true if the expression is a bare (possibly dotted) name.
func (t *TypeName) IsPlain() bool {
	return t.Array == nil && t.Dictionary == nil && t.Tuple == nil &&
		t.Closure == nil && t.Generic == nil && len(t.Composition) == 0
}

// IsComposition returns true for "A & B" expressions.
func (t *TypeName) IsComposition() bool {
	return len(t.Composition) > 0
}

// IsVoid returns true for "Void" and "()".
func (t *TypeName) IsVoid() bool {
	return t.Unwrapped == "Void" || t.Unwrapped == "()"
}

// LookupName returns the name to look up as an identity: the plain name,
// or the base name of a generic. Empty for other structured expressions.
func (t *TypeName) LookupName() string {
	switch {
	case t.Generic != nil:
		return t.Generic.Name
	case t.IsPlain():
		return t.Unwrapped
	default:
		return ""
	}
}

// Children returns the directly nested type expressions.
func (t *TypeName) Children() []*TypeName {
	switch {
	case t.Array != nil:
		return []*TypeName{t.Array.ElementTypeName}
	case t.Dictionary != nil:
		return []*TypeName{t.Dictionary.KeyTypeName, t.Dictionary.ValueTypeName}
	case t.Tuple != nil:
		out := make([]*TypeName, len(t.Tuple.Elements))
		for i, e := range t.Tuple.Elements {
			out[i] = e.TypeName
		}

		return out
	case t.Closure != nil:
		out := append([]*TypeName{}, t.Closure.Parameters...)
		return append(out, t.Closure.ReturnTypeName)
	case t.Generic != nil:
		return t.Generic.TypeParameters
	default:
		return t.Composition
	}
}

// ComposedNames returns the operand names of a composition.
func (t *TypeName) ComposedNames() []string {
	names := make([]string, len(t.Composition))
	for i, c := range t.Composition {
		names[i] = c.String()
	}

	return names
}

// String renders the expression canonically.
func (t *TypeName) String() string {
	if t == nil {
		return "Void"
	}

	var sb strings.Builder

	for _, a := range t.Attributes {
		sb.WriteString(a)
		sb.WriteByte(' ')
	}

	if t.Specifier != "" {
		sb.WriteString(t.Specifier)
		sb.WriteByte(' ')
	}

	core := t.Unwrapped
	if (t.IsOptional || t.IsImplicitlyUnwrapped) && (t.IsComposition() || t.Closure != nil) {
		core = "(" + core + ")"
	}

	sb.WriteString(core)

	if t.IsOptional {
		sb.WriteByte('?')
	}

	if t.IsImplicitlyUnwrapped {
		sb.WriteByte('!')
	}

	return sb.String()
}

// render builds the canonical unwrapped text from the structure.
func (t *TypeName) render() string {
	switch {
	case t.Array != nil:
		return "[" + t.Array.ElementTypeName.String() + "]"
	case t.Dictionary != nil:
		return "[" + t.Dictionary.KeyTypeName.String() + ": " + t.Dictionary.ValueTypeName.String() + "]"
	case t.Tuple != nil:
		parts := make([]string, len(t.Tuple.Elements))
		for i, e := range t.Tuple.Elements {
			parts[i] = e.TypeName.String()
			if e.Name != "" {
				parts[i] = e.Name + ": " + parts[i]
			}
		}

		return "(" + strings.Join(parts, ", ") + ")"
	case t.Closure != nil:
		parts := make([]string, len(t.Closure.Parameters))
		for i, p := range t.Closure.Parameters {
			parts[i] = p.String()
		}

		s := "(" + strings.Join(parts, ", ") + ")"
		if t.Closure.Async {
			s += " async"
		}

		if t.Closure.Throws {
			s += " throws"
		}

		return s + " -> " + t.Closure.ReturnTypeName.String()
	case t.Generic != nil:
		parts := make([]string, len(t.Generic.TypeParameters))
		for i, p := range t.Generic.TypeParameters {
			parts[i] = p.String()
		}

		return t.Generic.Name + "<" + strings.Join(parts, ", ") + ">"
	case t.IsComposition():
		return strings.Join(t.ComposedNames(), " & ")
	default:
		return t.Unwrapped
	}
}
