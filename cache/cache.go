// Package cache remembers which files are already formatted, so that
// repeated runs over a large tree only parse what changed.
package cache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gqlfmt/printer"
)

const fileName = "formatted.gob"

type entry struct {
	Hash        string
	Fingerprint string
	CheckedAt   time.Time
}

type Cache struct {
	dir     string
	mutex   sync.RWMutex
	entries map[string]entry
}

// Open loads the cache stored in dir, creating the directory if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:     dir,
		entries: make(map[string]entry),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

// OpenDefault opens the cache in Location.
func OpenDefault() (*Cache, error) {
	dir, err := Location()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

// Save writes the cache to disk. The file is replaced atomically.
func (c *Cache) Save() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	tmp, err := os.CreateTemp(c.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(c.entries); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, fileName)); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Formatted reports whether content is known to be the formatted form of
// the file at path under the options identified by fingerprint.
func (c *Cache) Formatted(path string, content []byte, fingerprint string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.entries[key(path)]
	return ok && e.Fingerprint == fingerprint && e.Hash == hash(content)
}

// Remember records content as the formatted form of the file at path.
func (c *Cache) Remember(path string, content []byte, fingerprint string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key(path)] = entry{
		Hash:        hash(content),
		Fingerprint: fingerprint,
		CheckedAt:   time.Now(),
	}
}

func (c *Cache) Forget(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key(path))
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Prune drops entries older than maxAge.
func (c *Cache) Prune(maxAge time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, e := range c.entries {
		if time.Since(e.CheckedAt) > maxAge {
			delete(c.entries, k)
		}
	}
}

// Fingerprint identifies printer options. Files formatted under different
// options are not considered formatted.
func Fingerprint(opts printer.Options) string {
	opts = opts.WithDefaults()
	sum := sha256.Sum256(fmt.Appendf(nil, "%q/%d/%t/%t/%t",
		opts.IndentationStep,
		opts.MaxLineLength,
		opts.PreserveComments,
		opts.Pretty,
		opts.CompactSelectionSets,
	))
	return hex.EncodeToString(sum[:8])
}

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
