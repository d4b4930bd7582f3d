package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"source-composer/internal/annotation"
	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
	"source-composer/internal/source"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func parse(t *testing.T, path, doc string) *source.File {
	t.Helper()

	f, err := source.Parse([]byte(doc))
	require.NoError(t, err)

	f.Path = path

	return f
}

func byIdentity(entries []*DeclEntry, identity string) []*DeclEntry {
	var out []*DeclEntry

	for _, e := range entries {
		if e.Identity == identity {
			out = append(out, e)
		}
	}

	return out
}

func TestNormalizeFile_Struct(t *testing.T) {
	f := parse(t, "Foo.swift", `
declarations:
  - kind: struct
    name: Foo
    members:
      - kind: variable
        name: x
        type: Int
`)

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Empty(t, diags.All())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Foo", e.Identity)
	assert.Equal(t, source.KindStruct, e.Kind)
	assert.Equal(t, model.KindStruct, e.ModelKind())
	assert.False(t, e.IsExtension())
	assert.Equal(t, model.AccessInternal, e.AccessLevel)
	assert.Nil(t, e.Annotations)

	require.Len(t, e.Variables, 1)
	assert.Equal(t, "x", e.Variables[0].Name)
	assert.Equal(t, "Int", e.Variables[0].TypeName.Name)
	assert.Equal(t, "Foo", e.Variables[0].DefinedIn)
}

func TestNormalizeFile_NestedDeclarations(t *testing.T) {
	f := parse(t, "Outer.swift", `
declarations:
  - kind: struct
    name: Outer
    members:
      - kind: declaration
        declaration:
          kind: enum
          name: Inner
          members:
            - kind: case
              name: a
      - kind: declaration
        declaration:
          kind: typealias
          name: ID
          type: String
  - kind: extension
    name: Outer
    access: public
    members:
      - kind: declaration
        declaration:
          kind: class
          name: Helper
      - kind: declaration
        declaration:
          kind: function
          name: helper
          parameters:
            - name: value
              type: Int
`)

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Empty(t, diags.All())

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Identity
	}

	assert.Equal(t, []string{"Outer", "Outer.Inner", "Outer.ID", "Outer", "Outer.Helper"}, ids)

	inner := byIdentity(entries, "Outer.Inner")[0]
	assert.Equal(t, "Outer", inner.ParentIdentity)
	assert.False(t, inner.InExtension)
	require.Len(t, inner.Cases, 1)

	alias := byIdentity(entries, "Outer.ID")[0]
	require.NotNil(t, alias.Typealias)
	assert.Equal(t, "Outer", alias.Typealias.ParentIdentity)
	assert.Equal(t, "String", alias.Typealias.TypeName.Name)

	helper := byIdentity(entries, "Outer.Helper")[0]
	assert.True(t, helper.InExtension)

	ext := entries[3]
	assert.True(t, ext.IsExtension())
	assert.Equal(t, model.AccessPublic, ext.AccessLevel)
	require.Len(t, ext.Methods, 1)
	assert.Equal(t, "helper(value:)", ext.Methods[0].Selector)
	assert.Equal(t, "Outer", ext.Methods[0].DefinedIn)

	for i, e := range entries {
		assert.Equal(t, i, e.Order.Seq)
		assert.Equal(t, "Outer.swift", e.Order.Path)
	}
}

func TestNormalizeFile_UnknownKindDropped(t *testing.T) {
	f := parse(t, "x.swift", `
declarations:
  - kind: actor
    name: Worker
  - kind: struct
    name: Kept
    members:
      - kind: subscript
        name: sub
`)

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Identity)

	unknown := diags.WithCode(diagnostic.CodeUnknownKind)
	require.Len(t, unknown, 2)
	assert.Equal(t, "Worker", unknown[0].Identity)
	assert.Equal(t, "x.swift", unknown[0].File)
	assert.Equal(t, "sub", unknown[1].Member)
}

func TestNormalizeFile_NamelessDeclarationsDropped(t *testing.T) {
	f := parse(t, "anon.swift", `
declarations:
  - kind: struct
    name: Foo
    members:
      - kind: declaration
        declaration:
          kind: enum
          name: ""
  - kind: extension
    members:
      - kind: method
        name: m
`)
	f.Declarations = append(f.Declarations, source.RawDeclaration{
		Kind:       source.KindFunction,
		ParentPath: []string{"Foo"},
		Range:      source.Range{Start: 1, End: 2},
	})

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Len(t, entries, 1)
	assert.Equal(t, "Foo", entries[0].Identity)
	assert.Empty(t, entries[0].Methods)

	missing := diags.WithCode(diagnostic.CodeMissingName)
	require.Len(t, missing, 3)
	assert.Equal(t, "Foo", missing[0].Identity)
	assert.Empty(t, missing[1].Identity)
	assert.Equal(t, "Foo", missing[2].Identity)
	assert.Empty(t, diags.Errors)
}

func TestNormalizeFile_FlatNested(t *testing.T) {
	f := &source.File{
		Path: "flat.swift",
		Declarations: []source.RawDeclaration{
			{Kind: source.KindClass, Name: "Box", Range: source.Range{Start: 0, End: 100}},
			{Kind: source.KindStruct, Name: "Item", ParentPath: []string{"Box"}, Range: source.Range{Start: 10, End: 20}},
			{Kind: source.KindFunction, Name: "open", ParentPath: []string{"Box"}, Range: source.Range{Start: 30, End: 40}},
			{Kind: source.KindStruct, Name: "Lid", ParentPath: []string{"Box"}, Range: source.Range{Start: 200, End: 210}},
			{Kind: source.KindGlobal, Name: "stray", ParentPath: []string{"Crate"}, TypeName: "Int", Range: source.Range{Start: 300, End: 310}},
		},
	}

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Len(t, entries, 3)

	box := entries[0]
	require.Len(t, box.Methods, 1)
	assert.Equal(t, "open", box.Methods[0].Name)
	assert.Equal(t, "Box", box.Methods[0].DefinedIn)

	item := entries[1]
	assert.Equal(t, "Box.Item", item.Identity)
	assert.False(t, item.InExtension)

	lid := entries[2]
	assert.Equal(t, "Box.Lid", lid.Identity)
	assert.True(t, lid.InExtension)

	orphans := diags.WithCode(diagnostic.CodeOrphanMember)
	require.Len(t, orphans, 1)
	assert.Equal(t, "stray", orphans[0].Member)
}

func TestNormalizeFile_Annotations(t *testing.T) {
	f := parse(t, "Shape.swift", `
declarations:
  - kind: enum
    name: Shape
    leading_comment: "// sourcery: model, version = 2"
    members:
      - kind: case
        name: circle
        leading_comment: "// sourcery: round"
        parameters:
          - name: radius
            type: Double
            comment: "/* sourcery: unit = \"cm\" */"
      - kind: method
        name: area
        type: Double
        trailing_comment: "// sourcery: pure"
`)

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Empty(t, diags.All())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, annotation.Map{"model": annotation.True(), "version": annotation.Number(2)}, e.Annotations)

	circle := e.Cases[0]
	assert.Equal(t, annotation.Map{"round": annotation.True()}, circle.Annotations)
	require.Len(t, circle.AssociatedValues, 1)
	assert.Equal(t, annotation.Map{"unit": annotation.String("cm")}, circle.AssociatedValues[0].Annotations)

	assert.Equal(t, annotation.Map{"pure": annotation.True()}, e.Methods[0].Annotations)
}

func TestNormalizeFile_GenericRequirements(t *testing.T) {
	f := parse(t, "Stack.swift", `
declarations:
  - kind: struct
    name: Stack
    generic_parameters:
      - name: Element
        bound: Equatable
    generic_requirements:
      - "Element: Hashable"
      - "nonsense"
`)

	entries, diags := New("sourcery", 1, nil).NormalizeFile(0, f)
	require.Len(t, entries, 1)

	e := entries[0]
	require.Len(t, e.GenericParameters, 1)
	assert.Equal(t, "Equatable", e.GenericParameters[0].BoundTypeName.Name)
	require.Len(t, e.GenericRequirements, 1)
	assert.Equal(t, "Hashable", e.GenericRequirements[0].RightTypeName.Name)
	assert.Len(t, diags.WithCode(diagnostic.CodeMalformedRequirement), 1)
}

func TestNormalizeFiles_OrderAcrossFiles(t *testing.T) {
	var files []*source.File
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		files = append(files, &source.File{
			Path: name + ".swift",
			Declarations: []source.RawDeclaration{
				{Kind: source.KindStruct, Name: name},
				{Kind: source.KindExtension, Name: name},
			},
		})
	}

	entries, diags, err := New("sourcery", 3, nil).NormalizeFiles(files)
	require.NoError(t, err)
	assert.Empty(t, diags.All())
	require.Len(t, entries, 10)

	for i, e := range entries {
		assert.Equal(t, i, e.Order.Seq)
		assert.Equal(t, i/2, e.Order.File)
		assert.Equal(t, files[i/2].Declarations[0].Name, e.Identity)
	}
}

func TestNormalizeFiles_NilFile(t *testing.T) {
	_, _, err := New("sourcery", 2, nil).NormalizeFiles([]*source.File{{Path: "ok.swift"}, nil})
	require.ErrorIs(t, err, ErrNilFile)
}
