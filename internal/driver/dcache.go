package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sharplint/internal/diag"
)

// Current schema version - increment when cacheEntry or diag.Record change
const cacheSchemaVersion uint16 = 1

// Cache хранит диагностики правил по хешу содержимого файла и набора правил.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema  uint16
	Records []diag.Record
}

// OpenCache initializes and returns a cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache opens a cache rooted at dir, creating it when missing.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "diags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes the records of one file.
func (c *Cache) Put(key Digest, recs []diag.Record) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(cacheEntry{Schema: cacheSchemaVersion, Records: recs}); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the records stored under key. Entries of another schema
// version are reported as misses.
func (c *Cache) Get(key Digest) ([]diag.Record, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", filepath.Base(f.Name()), err)
	}
	if entry.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return entry.Records, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
