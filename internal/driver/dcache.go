package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"qasmc/internal/project"
	"qasmc/internal/source"
)

// DiskCache хранит результаты unroll по хешу исходника и опций.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it when needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey identifies an unroll result: the normalised source text plus
// every option that changes the output.
func CacheKey(file *source.File, opts Options) project.Digest {
	opts = opts.withDefaults()
	optDigest := project.Of([]byte("schema=" + strconv.Itoa(int(documentSchema)) +
		";max_inline_depth=" + strconv.Itoa(opts.MaxInlineDepth)))
	return project.Combine(project.Digest(file.Hash), optDigest)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// подкаталог "unroll" проще чистить руками
	return filepath.Join(c.dir, "unroll", key.Hex()+".mp")
}

// Put serializes and writes a document to the disk cache.
func (c *DiskCache) Put(key project.Digest, doc *Document) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf("failed to remove temp file: %w", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached document. Entries written with another schema are
// reported as misses.
func (c *DiskCache) Get(key project.Digest) (*Document, bool, error) {
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

	var doc Document
	if err := msgpack.NewDecoder(f).Decode(&doc); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key.Hex(), err)
	}
	if doc.Schema != documentSchema {
		return nil, false, nil
	}
	return &doc, true, nil
}

// DropAll removes every cached entry and recreates the empty root.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
