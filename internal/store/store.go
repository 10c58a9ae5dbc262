package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// ErrCorrupt indicates a state document exists on disk but cannot be parsed
// or fails schema validation. The original file is left untouched.
var ErrCorrupt = errors.New("state document is corrupt")

// Store reads and writes the durable state documents under a data directory.
// Every operation is a whole-document read or write; there is no partial or
// streaming mode.
type Store struct {
	dataDir  string
	validate *validator.Validate
}

// New creates a store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{
		dataDir:  dataDir,
		validate: validator.New(),
	}
}

// DataDir returns the root data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// CatalogPath returns the path of the catalog document.
func (s *Store) CatalogPath() string {
	return filepath.Join(s.dataDir, "catalog.json")
}

// LockPath returns the path of the lock document.
func (s *Store) LockPath() string {
	return filepath.Join(s.dataDir, "lock.json")
}

// IndexPath returns the path of a provider's index document.
func (s *Store) IndexPath(provider string) string {
	return filepath.Join(s.dataDir, "index", provider+".json")
}

// ProviderDir returns the directory holding a provider's version trees.
func (s *Store) ProviderDir(provider string) string {
	return filepath.Join(s.dataDir, "providers", provider)
}

// VersionDir returns the directory for one materialized provider version.
func (s *Store) VersionDir(provider, version string) string {
	return filepath.Join(s.ProviderDir(provider), version)
}

// ReadCatalog loads the provider catalog. A missing file is a valid empty
// catalog, not an error.
func (s *Store) ReadCatalog() ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := s.readDoc(s.CatalogPath(), &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if err := s.validate.Struct(&entries[i]); err != nil {
			return nil, fmt.Errorf("%w: catalog entry %d: %v", ErrCorrupt, i, err)
		}
	}
	return entries, nil
}

// WriteCatalog replaces the catalog wholesale.
func (s *Store) WriteCatalog(entries []CatalogEntry) error {
	for i := range entries {
		if err := s.validate.Struct(&entries[i]); err != nil {
			return fmt.Errorf("refusing to write invalid catalog entry %d: %w", i, err)
		}
	}
	return s.writeDoc(s.CatalogPath(), entries)
}

// ReadLock loads the lock file. A missing file yields an empty lock.
func (s *Store) ReadLock() (Lock, error) {
	lock := Lock{}
	if err := s.readDoc(s.LockPath(), &lock); err != nil {
		return nil, err
	}
	for name, rec := range lock {
		if err := s.validate.Struct(&rec); err != nil {
			return nil, fmt.Errorf("%w: lock entry %q: %v", ErrCorrupt, name, err)
		}
	}
	return lock, nil
}

// WriteLock replaces the lock file wholesale.
func (s *Store) WriteLock(lock Lock) error {
	for name, rec := range lock {
		if err := s.validate.Struct(&rec); err != nil {
			return fmt.Errorf("refusing to write invalid lock entry %q: %w", name, err)
		}
	}
	return s.writeDoc(s.LockPath(), lock)
}

// ReadIndex loads a provider's artifact index. Missing file yields nil.
func (s *Store) ReadIndex(provider string) ([]IndexEntry, error) {
	var entries []IndexEntry
	if err := s.readDoc(s.IndexPath(provider), &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if err := s.validate.Struct(&entries[i]); err != nil {
			return nil, fmt.Errorf("%w: index entry %d for %s: %v", ErrCorrupt, i, provider, err)
		}
	}
	return entries, nil
}

// WriteIndex replaces a provider's artifact index wholesale.
func (s *Store) WriteIndex(provider string, entries []IndexEntry) error {
	return s.writeDoc(s.IndexPath(provider), entries)
}

// RemoveIndex deletes a provider's index document if present.
func (s *Store) RemoveIndex(provider string) error {
	err := os.Remove(s.IndexPath(provider))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove index for %s: %w", provider, err)
	}
	return nil
}

// readDoc unmarshals a JSON document into v. Absent files leave v untouched.
func (s *Store) readDoc(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	return nil
}

// writeDoc marshals v and replaces the document atomically. The marshal
// happens before any file is touched, so a serialization failure leaves the
// previous document intact; the temp-then-rename keeps a crashed write from
// truncating it.
func (s *Store) writeDoc(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
