package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const protocols = `
declarations:
  - kind: protocol
    name: Named
    members:
      - kind: variable
        name: name
        type: String
  - kind: extension
    name: Named
    members:
      - kind: method
        name: greet
`

const person = `
declarations:
  - kind: struct
    name: Person
    inherits: [Named]
    members:
      - kind: variable
        name: name
        type: String
`

func writeInputs(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_named.yaml"), []byte(protocols), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_person.yml"), []byte(person), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), errOut.String(), err
}

func TestComposeCommand_WritesGraph(t *testing.T) {
	dir := writeInputs(t)
	out := filepath.Join(t.TempDir(), "graph.yaml")

	_, _, err := execute(t, "compose", "--color", "off", "--cache-dir", t.TempDir(), "-o", out, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "identity: Named")
	assert.Contains(t, text, "identity: Person")
	assert.Contains(t, text, "signature: greet()")
}

func TestComposeCommand_UnreadableFileFailsRun(t *testing.T) {
	dir := writeInputs(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_broken.yaml"), []byte("declarations: ["), 0o644))

	out := filepath.Join(t.TempDir(), "graph.yaml")

	_, stderr, err := execute(t, "compose", "--color", "off", "-o", out, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s)")
	assert.Contains(t, err.Error(), "c_broken.yaml")
	assert.Contains(t, stderr, "error: [load_failed]")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "identity: Person")
	assert.Contains(t, string(data), "load_failed")
}

func TestFlattenCommand_ListsMembers(t *testing.T) {
	dir := writeInputs(t)

	stdout, _, err := execute(t, "flatten", "--color", "off", "Person", dir)
	require.NoError(t, err)

	assert.Equal(t, "var name  // Person\ngreet()  // Named, default\n", stdout)
}

func TestFlattenCommand_UnknownType(t *testing.T) {
	dir := writeInputs(t)

	_, _, err := execute(t, "flatten", "--color", "off", "Missing", dir)
	assert.ErrorContains(t, err, `no type "Missing"`)
}

func TestInputPaths_ExpandsDirectories(t *testing.T) {
	dir := writeInputs(t)

	paths, err := inputPaths([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_named.yaml"), filepath.Join(dir, "b_person.yml")}, paths)

	_, err = inputPaths([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
