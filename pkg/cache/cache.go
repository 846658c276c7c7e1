// Package cache stores check results keyed by file content and
// configuration, in memory and on disk.
package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/highwayhash"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/pystyle/internal/logging"
	"github.com/yaklabco/pystyle/pkg/lint"
)

// schemaVersion must be incremented when the entry layout changes.
const schemaVersion uint16 = 1

// DefaultSize is the number of entries kept in memory.
const DefaultSize = 1024

const entryExt = ".msgpack"

// hashKey only has to be stable between runs; it is not a secret.
var hashKey = []byte("pystyle-content-hash-key-0000001")

// ErrSchemaMismatch is returned when a disk entry was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("cache schema mismatch")

// Cache is a two-level result cache: an LRU in front of a directory of
// msgpack files. It is safe for concurrent use and implements
// lint.ResultCache.
type Cache struct {
	dir     string
	version string
	size    int
	logger  *log.Logger

	mem *lru.Cache[uint64, *entry]
	mu  sync.RWMutex
}

var _ lint.ResultCache = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for debug output about cache faults.
func WithLogger(logger *log.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSize sets the number of entries kept in memory.
func WithSize(size int) Option {
	return func(c *Cache) {
		if size > 0 {
			c.size = size
		}
	}
}

// New opens a cache rooted at dir. The version string is mixed into every
// key so that results from another release are never reused.
func New(dir, version string, opts ...Option) (*Cache, error) {
	c := &Cache{
		dir:     dir,
		version: version,
		size:    DefaultSize,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	mem, err := lru.New[uint64, *entry](c.size)
	if err != nil {
		return nil, fmt.Errorf("create memory cache: %w", err)
	}
	c.mem = mem

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return c, nil
}

// DefaultDir returns the per-user cache directory for app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}

	return filepath.Join(base, app), nil
}

// Dir returns the directory holding the disk entries.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives the cache key of content checked under fingerprint by the
// given tool version.
func Key(content []byte, fingerprint, version string) uint64 {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		// The key is a fixed 32 bytes.
		panic(err)
	}

	_, _ = hash.Write(content)
	_, _ = hash.Write([]byte{0})
	_, _ = io.WriteString(hash, fingerprint)
	_, _ = hash.Write([]byte{0})
	_, _ = io.WriteString(hash, version)

	return hash.Sum64()
}

func (c *Cache) pathFor(key uint64) string {
	return filepath.Join(c.dir, keyName(key)+entryExt)
}

func keyName(key uint64) string {
	return fmt.Sprintf("%016x", key)
}

// Lookup returns a fresh copy of the result stored for content, or false
// on a miss. Disk faults are logged and treated as misses.
func (c *Cache) Lookup(content []byte, fingerprint string) (*lint.FileResult, bool) {
	key := Key(content, fingerprint, c.version)

	if e, ok := c.mem.Get(key); ok {
		return e.result(), true
	}

	e, err := c.readEntry(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("cache read failed", logging.FieldKey, keyName(key), logging.FieldError, err)
		}
		return nil, false
	}

	c.mem.Add(key, e)

	return e.result(), true
}

// Store records result for content checked under fingerprint.
func (c *Cache) Store(content []byte, fingerprint string, result *lint.FileResult) error {
	e, err := newEntry(result)
	if err != nil {
		return err
	}

	key := Key(content, fingerprint, c.version)
	c.mem.Add(key, e)

	if err := c.writeEntry(key, e); err != nil {
		c.logger.Debug("cache write failed", logging.FieldKey, keyName(key), logging.FieldError, err)
		return err
	}

	return nil
}

// Clear drops every entry, in memory and on disk.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem.Purge()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear cache: %w", err)
	}

	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != entryExt {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, de.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear cache: %w", err)
		}
	}

	return nil
}

func (c *Cache) readEntry(key uint64) (*entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, err
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}

	if e.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, e.Schema, schemaVersion)
	}

	return &e, nil
}

func (c *Cache) writeEntry(key uint64, e *entry) error {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	defer func() {
		// After a successful rename the temp name no longer exists.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.pathFor(key)); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	return nil
}
