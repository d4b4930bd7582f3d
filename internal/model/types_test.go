package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "struct", KindStruct.String())
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "protocol", KindProtocol.String())
	assert.Equal(t, "protocolComposition", KindProtocolComposition.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestParseAccessLevel(t *testing.T) {
	assert.Equal(t, AccessPublic, ParseAccessLevel("public"))
	assert.Equal(t, AccessFilePrivate, ParseAccessLevel("fileprivate"))
	assert.Equal(t, AccessInternal, ParseAccessLevel(""))
	assert.Equal(t, AccessInternal, ParseAccessLevel("weird"))
}

func TestGraph(t *testing.T) {
	g := NewGraph()
	foo := &Type{Identity: "Foo", Name: "Foo"}
	bar := &Type{Identity: "Foo.Bar", Name: "Bar"}

	assert.True(t, g.Add(foo))
	assert.True(t, g.Add(bar))
	assert.False(t, g.Add(&Type{Identity: "Foo"}))

	assert.Same(t, foo, g.Get("Foo"))
	assert.Nil(t, g.Get("Baz"))
	assert.Equal(t, []string{"Foo", "Foo.Bar"}, g.Identities())
	assert.Equal(t, 2, g.Len())
}

func TestType_Lookups(t *testing.T) {
	inner := &Type{Identity: "E.Inner", Name: "Inner"}
	e := &Type{
		Identity:       "E",
		Kind:           KindEnum,
		Modifiers:      []string{"indirect"},
		Variables:      []*Variable{{Name: "x"}},
		Methods:        []*Method{{Name: "f", Selector: "f(a:)"}},
		Cases:          []*EnumCase{{Name: "c"}},
		ContainedTypes: []*Type{inner},
	}

	assert.True(t, e.IsIndirect())
	assert.NotNil(t, e.Variable("x"))
	assert.NotNil(t, e.Method("f(a:)"))
	assert.NotNil(t, e.Case("c"))
	assert.Same(t, inner, e.ContainedType("Inner"))
	assert.Nil(t, e.Variable("y"))
	assert.False(t, (&Type{Kind: KindUnknown}).IsUnknownExtension())
}

func TestMethod_SignatureAndSelector(t *testing.T) {
	m := &Method{
		Name: "move",
		Parameters: []*MethodParameter{
			{Label: "to", Name: "point", TypeName: ParseTypeName("Point")},
			{Label: "_", Name: "animated", TypeName: ParseTypeName("Bool")},
		},
		ReturnTypeName: ParseTypeName("Void"),
	}

	assert.Equal(t, "move(to: Point, _: Bool)", m.Signature())
	assert.Equal(t, "move(to:_:)", BuildSelector(m.Name, m.Parameters))

	m.IsStatic = true
	m.ReturnTypeName = ParseTypeName("Int?")
	assert.Equal(t, "static move(to: Point, _: Bool) -> Int?", m.Signature())
}

func TestVariableAndCaseSignatures(t *testing.T) {
	assert.Equal(t, "var x", (&Variable{Name: "x"}).Signature())
	assert.Equal(t, "static var x", (&Variable{Name: "x", IsStatic: true}).Signature())
	assert.Equal(t, "case c", (&EnumCase{Name: "c"}).Signature())
}
