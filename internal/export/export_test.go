package export

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"source-composer/internal/compose"
	"source-composer/internal/source"
)

const sample = `
declarations:
  - kind: protocol
    name: Shape
    members:
      - kind: method
        name: area
        type: Double
  - kind: struct
    name: Canvas
    inherits: [Shape]
    leading_comment: "// sourcery: drawable"
    members:
      - kind: variable
        name: shapes
        type: "[String: [Canvas]]"
      - kind: method
        name: area
        type: Double
      - kind: declaration
        declaration:
          kind: enum
          name: Layer
          inherits: [Int]
          members:
            - kind: case
              name: back
            - kind: case
              name: front
  - kind: typealias
    name: Board
    type: Canvas?
`

func composeSample(t *testing.T) *compose.Result {
	t.Helper()

	f, err := source.Parse([]byte(sample))
	require.NoError(t, err)

	f.Path = "Canvas.swift"

	res, err := compose.New(compose.DefaultConfig(), slog.New(slog.DiscardHandler)).Compose([]*source.File{f})
	require.NoError(t, err)

	return res
}

func TestBuild_ReferencesByIdentity(t *testing.T) {
	doc := Build(composeSample(t))

	require.Len(t, doc.Types, 3)
	assert.Equal(t, "Shape", doc.Types[0].Identity)

	canvas := doc.Types[1]
	assert.Equal(t, "Canvas", canvas.Identity)
	assert.Equal(t, []string{"Shape"}, canvas.InheritedTypes)
	assert.Equal(t, []string{"Canvas.Layer"}, canvas.ContainedTypes)
	assert.True(t, canvas.Annotations.Has("drawable"))

	require.Len(t, canvas.Variables, 1)
	shapes := canvas.Variables[0].Type
	require.NotNil(t, shapes)
	assert.Equal(t, "[String: [Canvas]]", shapes.Name)
	assert.Empty(t, shapes.Type)
	assert.Equal(t, []string{"Canvas"}, shapes.Links)

	require.Len(t, canvas.AllMethods, 1)
	assert.Equal(t, "Canvas", canvas.AllMethods[0].DefinedIn)

	layer := doc.Types[2]
	assert.Equal(t, "Canvas", layer.Parent)
	require.NotNil(t, layer.RawType)
	assert.Equal(t, "Int", layer.RawType.Name)
	assert.Len(t, layer.Cases, 2)

	require.Len(t, doc.Typealiases, 1)
	board := doc.Typealiases[0].Target
	assert.Equal(t, "Canvas?", board.Name)
	assert.Equal(t, "Canvas?", board.Actual)
	assert.Equal(t, "Canvas", board.Type)
	assert.Nil(t, board.Links)
}

func TestYAML_Encodes(t *testing.T) {
	out, err := YAML(composeSample(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "identity: Canvas.Layer")
	assert.Contains(t, text, "kind: struct")
	assert.Contains(t, text, "drawable: true")

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Len(t, back["types"], 3)
}
