package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge is how long a registry answer is trusted.
	DefaultCacheMaxAge = 24 * time.Hour
)

// CheckRecord is the last registry answer for one package.
type CheckRecord struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// Fresh reports whether the record can answer for currentVersion at now.
func (r *CheckRecord) Fresh(currentVersion string, now time.Time, maxAge time.Duration) bool {
	if r == nil || r.CurrentVersion != currentVersion {
		return false
	}
	return now.Sub(r.CheckedAt) <= maxAge
}

// cacheStore persists CheckRecords keyed by package name in a single file.
type cacheStore struct {
	fs   afero.Fs
	path string
}

func newCacheStore(fsys afero.Fs, dir string) *cacheStore {
	return &cacheStore{fs: fsys, path: filepath.Join(dir, cacheFileName)}
}

func (s *cacheStore) readAll() (map[string]*CheckRecord, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*CheckRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	records := map[string]*CheckRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return records, nil
}

// Get returns the record for pkg, or nil when none is stored.
func (s *cacheStore) Get(pkg string) (*CheckRecord, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	return records[pkg], nil
}

// Put stores rec under pkg. A corrupted file is replaced.
func (s *cacheStore) Put(pkg string, rec *CheckRecord) error {
	records, err := s.readAll()
	if err != nil {
		records = map[string]*CheckRecord{}
	}
	records[pkg] = rec

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}
