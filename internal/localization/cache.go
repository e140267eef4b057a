package localization

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the cacheEntry format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash of a source catalog.
type Digest [sha256.Size]byte

// HashBytes digests a source catalog's raw bytes.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// BuildCache remembers which source catalogs have already been compiled so
// batch compilation can skip unchanged locales. Entries are msgpack files
// keyed by locale name. Safe for concurrent use; compilation fans out.
type BuildCache struct {
	mu  sync.RWMutex
	dir string
}

// cacheEntry is the on-disk record for one compiled locale.
type cacheEntry struct {
	Schema     uint16
	SourceHash Digest
	Output     string
}

// OpenBuildCache returns the build cache at the standard per-user location.
func OpenBuildCache(app string) (*BuildCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return NewBuildCache(dir), nil
}

// NewBuildCache returns a build cache rooted at dir.
func NewBuildCache(dir string) *BuildCache {
	return &BuildCache{dir: dir}
}

func (c *BuildCache) pathFor(locale string) string {
	return filepath.Join(c.dir, "catalogs", locale+".mp")
}

// Fresh reports whether locale's source catalog hashed to src when it was
// last compiled and the recorded output file still exists.
func (c *BuildCache) Fresh(locale string, src Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(locale))
	if err != nil {
		return false
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false
	}
	if entry.Schema != cacheSchemaVersion || entry.SourceHash != src {
		return false
	}
	return fileExists(entry.Output)
}

// Record stores the digest and output path for a freshly compiled locale.
// The entry is written to a temp file and renamed into place.
func (c *BuildCache) Record(locale string, src Digest, output string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(locale)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", err)
		}
	}()

	entry := cacheEntry{
		Schema:     cacheSchemaVersion,
		SourceHash: src,
		Output:     output,
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Drop removes the cached entry for locale, if any.
func (c *BuildCache) Drop(locale string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.pathFor(locale))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
