package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"source-composer/internal/source"
)

// Current schema version; increment when Entry or source.File changes shape.
const schemaVersion uint16 = 1

// Digest is the SHA-256 of a declaration file's content.
type Digest [sha256.Size]byte

// Key returns the digest of data.
func Key(data []byte) Digest {
	return sha256.Sum256(data)
}

// Entry is one cached parse result.
type Entry struct {
	Schema uint16
	File   *source.File
}

// DiskCache keeps entries under a directory. A nil *DiskCache is a valid
// cache that never hits. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put stores f under key. The entry is written to a temporary file and
// renamed into place.
func (c *DiskCache) Put(key Digest, f *source.File) (err error) {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = msgpack.NewEncoder(tmp).Encode(&Entry{Schema: schemaVersion, File: f}); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), p)
}

// Get returns the file stored under key. A missing entry, or one written
// with another schema version, reports false without error.
func (c *DiskCache) Get(key Digest) (*source.File, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	if entry.Schema != schemaVersion || entry.File == nil {
		return nil, false, nil
	}

	return entry.File, true, nil
}

// Load reads a declaration file, serving the parse from the cache when the
// content is unchanged. The returned flag reports a cache hit. Cache write
// failures are not fatal.
func (c *DiskCache) Load(path string) (*source.File, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	key := Key(data)

	if f, ok, err := c.Get(key); err == nil && ok {
		if f.Path == "" {
			f.Path = path
		}

		return f, true, nil
	}

	f, err := source.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	_ = c.Put(key, f)

	if f.Path == "" {
		f.Path = path
	}

	return f, false, nil
}

// Clear removes every entry.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
