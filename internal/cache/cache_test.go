package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"source-composer/internal/source"
)

const decls = `
declarations:
  - kind: struct
    name: Foo
    members:
      - kind: variable
        name: x
        type: Int
`

func TestDiskCache_PutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	f, err := source.Parse([]byte(decls))
	require.NoError(t, err)

	key := Key([]byte(decls))
	require.NoError(t, c.Put(key, f))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Declarations, 1)
	assert.Equal(t, "Foo", got.Declarations[0].Name)
	assert.Equal(t, f.Declarations[0].Range, got.Declarations[0].Range)
	assert.Equal(t, "Int", got.Declarations[0].Members[0].TypeName)

	_, ok, err = c.Get(Key([]byte("other")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCache_SchemaMismatchIsMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := Key([]byte(decls))
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1, File: &source.File{}})
	require.NoError(t, err)

	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCache_LoadHitsOnUnchangedContent(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Foo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(decls), 0o644))

	first, hit, err := c.Load(path)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, path, first.Path)

	second, hit, err := c.Load(path)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, path, second.Path)
	assert.Equal(t, first.Declarations[0].Name, second.Declarations[0].Name)

	require.NoError(t, c.Clear())

	_, hit, err = c.Load(path)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDiskCache_NilNeverHits(t *testing.T) {
	var c *DiskCache

	path := filepath.Join(t.TempDir(), "Foo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(decls), 0o644))

	f, hit, err := c.Load(path)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Foo", f.Declarations[0].Name)
	assert.NoError(t, c.Put(Key(nil), f))
	assert.Empty(t, c.Dir())
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	_, _, err = c.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
