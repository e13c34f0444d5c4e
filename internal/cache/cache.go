// Package cache is a file-backed key/value store with per-entry expiry.
//
// Each key lives in its own file named after the SHA-256 digest of the key.
// Entries are checked against the clock on every read; expired files are
// removed lazily by Get or in bulk by PruneExpired. There is no locking:
// a reader racing a writer from another process may see a partial file,
// which is treated as a miss.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDirName = "ramadan-cli"
	fileExt    = ".json"
)

// Entry is the on-disk representation of a cached value.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"createdAt"` // epoch ms
	ExpiresAt int64           `json:"expiresAt"` // epoch ms
}

// expired reports whether the entry is stale at now.
func (e Entry) expired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}

// Repository stores cache entries as JSON files in a single directory.
type Repository struct {
	dir string
	now func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the clock used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// DefaultDir returns the per-user cache directory.
// It respects $XDG_CACHE_HOME if set, otherwise uses ~/.cache/.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appDirName), nil
}

// New creates a Repository rooted at dir, creating the directory if needed.
// If dir is empty, DefaultDir is used.
func New(dir string, opts ...Option) (*Repository, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	r := &Repository{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir returns the directory the repository writes to.
func (r *Repository) Dir() string {
	return r.dir
}

// HashKey returns the hex SHA-256 digest used as the file name for key.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (r *Repository) path(key string) string {
	return filepath.Join(r.dir, HashKey(key)+fileExt)
}

// Get decodes the cached value for key into dst and reports whether it was
// found. Missing and undecodable entries are misses; corrupt and expired
// entries are deleted before reporting the miss.
func (r *Repository) Get(key string, dst any) bool {
	path := r.path(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return false
	}

	if entry.expired(r.now()) {
		_ = os.Remove(path)
		return false
	}

	if err := json.Unmarshal(entry.Data, dst); err != nil {
		return false
	}
	return true
}

// Set stores data under key for ttl, replacing any previous entry.
// The file is written to a temporary name and renamed into place.
func (r *Repository) Set(key string, data any, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	now := r.now()
	entry := Entry{
		Data:      payload,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory %s: %w", r.dir, err)
	}

	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	if err := os.Rename(tmpName, r.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for key. It reports whether a file was removed.
func (r *Repository) Delete(key string) (bool, error) {
	err := os.Remove(r.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to delete cache entry: %w", err)
}

// jsonFiles lists the *.json files in the cache directory. A missing
// directory yields no files.
func (r *Repository) jsonFiles() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		files = append(files, filepath.Join(r.dir, e.Name()))
	}
	return files, nil
}

// Clear removes every cache entry. Other files in the directory are kept.
func (r *Repository) Clear() error {
	files, err := r.jsonFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}

// PruneExpired deletes expired and unparsable entries and returns how many
// files were removed.
func (r *Repository) PruneExpired() (int, error) {
	files, err := r.jsonFiles()
	if err != nil {
		return 0, err
	}

	now := r.now()
	removed := 0
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(raw, &entry); err == nil && !entry.expired(now) {
			continue
		}

		if err := os.Remove(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("failed to prune cache: %w", err)
		}
		removed++
	}
	return removed, nil
}
