// Package cache keeps fetched submission details on disk so repeated heatmap
// and detail requests do not hit the upstream API again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pinchbench/pinchboard/internal/api"
)

// Store caches submission details by submission id. Submissions are
// immutable upstream, so entries never expire.
type Store interface {
	Get(id string) (*api.SubmissionDetail, bool)
	Put(detail *api.SubmissionDetail) error
	Clear() error
	Close() error
}

// Driver names a cache backend.
type Driver string

const (
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
)

// SQLiteFileName is the database file created inside the cache directory.
const SQLiteFileName = "submissions.db"

// Open returns the Store for driver rooted at dir. An empty dir disables
// caching and returns a Store that never hits.
func Open(driver Driver, dir string) (Store, error) {
	if dir == "" {
		return NewFileCache(""), nil
	}
	switch driver {
	case DriverFile, "":
		return NewFileCache(dir), nil
	case DriverSQLite:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", driver)
	}
}

// Key returns the hex sha256 of a submission id, used as its storage key.
func Key(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// FileCache stores one JSON file per submission.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// NewFileCache creates a file cache in dir. An empty dir makes every
// operation a no-op.
func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

// Get retrieves a cached submission if it exists.
func (c *FileCache) Get(id string) (*api.SubmissionDetail, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cachePath(id))
	if err != nil {
		return nil, false
	}

	var detail api.SubmissionDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}
	return &detail, true
}

// Put stores a submission in the cache.
func (c *FileCache) Put(detail *api.SubmissionDetail) error {
	if c.dir == "" || detail == nil {
		return nil
	}
	if detail.ID == "" {
		return fmt.Errorf("cannot cache submission without id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	if err := os.WriteFile(c.cachePath(detail.ID), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Clear removes all cached submissions.
func (c *FileCache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Only remove directories that look like ours.
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
		}
		if filepath.Ext(entry.Name()) != ".json" {
			return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

// Close is a no-op for the file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) cachePath(id string) string {
	return filepath.Join(c.dir, Key(id)+".json")
}
