// Package tracker keeps the user's personal Ramadan log: which days they
// fasted and what they gave in charity. Everything lives in one JSON
// document under the XDG data directory.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	appDirName = "ramadan-cli"
	fileName   = "tracker.json"

	// DateLayout is the key format of the fasting log.
	DateLayout = "2006-01-02"
)

// document is the on-disk layout.
type document struct {
	Fasts     map[string]Fast `json:"fasts"`
	Donations []Donation      `json:"donations"`
}

// Store is the loaded tracker document. Mutations stay in memory until Save.
type Store struct {
	path string
	doc  document
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to timestamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// DefaultDir returns the per-user data directory.
// It respects $XDG_DATA_HOME if set, otherwise uses ~/.local/share/.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appDirName), nil
}

// Open loads the tracker document from dir. If dir is empty, DefaultDir is
// used. A missing file yields an empty store; a corrupt one is an error so
// the user's log is never silently replaced.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	s := &Store{
		path: filepath.Join(dir, fileName),
		doc:  document{Fasts: map[string]Fast{}},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read tracker file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, fmt.Errorf("invalid tracker file %s: %w", s.path, err)
	}
	if s.doc.Fasts == nil {
		s.doc.Fasts = map[string]Fast{}
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Save writes the document to a temporary file and renames it into place.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create data directory %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tracker: %w", err)
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(dir, ".tmp-tracker-*")
	if err != nil {
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	return nil
}
