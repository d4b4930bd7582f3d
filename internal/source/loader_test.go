package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
path: Models.swift
declarations:
  - kind: struct
    name: Foo
    access: public
    inherits: [Equatable]
    leading_comment: "// sourcery: model"
    range: {start: 10, end: 80}
    members:
      - kind: variable
        name: x
        type: Int
        range: {start: 20, end: 30}
      - kind: declaration
        range: {start: 40, end: 70}
        declaration:
          kind: enum
          name: Inner
          range: {start: 40, end: 70}
          members:
            - kind: case
              name: a
              parameters:
                - type: Foo
                  comment: "/* sourcery: weak */"
comments:
  - text: "// sourcery:end"
    offset: 75
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "Models.swift", f.Path)
	require.Len(t, f.Declarations, 1)

	foo := f.Declarations[0]
	assert.Equal(t, KindStruct, foo.Kind)
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, "public", foo.AccessLevel)
	assert.Equal(t, []string{"Equatable"}, foo.InheritedTypeNames)
	assert.Equal(t, Range{Start: 10, End: 80}, foo.Range)
	require.Len(t, foo.Members, 2)

	inner := foo.Members[1].Declaration
	require.NotNil(t, inner)
	assert.Equal(t, KindEnum, inner.Kind)
	require.Len(t, inner.Members, 1)
	assert.Equal(t, MemberCase, inner.Members[0].Kind)
	assert.Equal(t, "Foo", inner.Members[0].Parameters[0].TypeName)

	require.Len(t, f.Comments, 1)
	assert.Equal(t, 75, f.Comments[0].Offset)
}

func TestParse_FillsMissingRanges(t *testing.T) {
	yaml := `
declarations:
  - kind: struct
    name: A
    members:
      - kind: variable
        name: x
        type: Int
  - kind: struct
    name: B
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, f.Declarations, 2)

	a, b := f.Declarations[0], f.Declarations[1]
	assert.True(t, a.Range.Contains(a.Members[0].Range))
	assert.Less(t, a.Range.End, b.Range.Start)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("declarations: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse declaration YAML")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.yaml")
	require.NoError(t, os.WriteFile(path, []byte("declarations:\n  - kind: class\n    name: C\n"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	require.Len(t, f.Declarations, 1)
	assert.Equal(t, KindClass, f.Declarations[0].Kind)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestKind(t *testing.T) {
	assert.True(t, KindExtension.IsValid())
	assert.True(t, KindExtension.IsType())
	assert.False(t, KindTypealias.IsType())
	assert.False(t, Kind("macro").IsValid())
}

func TestMarshalRoundTrip(t *testing.T) {
	f := &File{Path: "a.swift", Declarations: []RawDeclaration{{Kind: KindTypealias, Name: "A", TypeName: "Int", Range: Range{Start: 1, End: 2}}}}

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}
