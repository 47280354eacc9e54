// Package cas implements the install state store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallStateStore = (*Store)(nil)

// Store implements ports.InstallStateStore using a flat JSON file keyed by project name.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.InstallRecord
}

// NewStore creates a new InstallStateStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.InstallRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}
	return nil
}

// save must be called with s.mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}
	return nil
}

// Get retrieves the install record of a project. Returns nil, nil if none exists.
func (s *Store) Get(project string) (*domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[project]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the record and persists the whole store.
func (s *Store) Put(record domain.InstallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[record.Project] = record
	return s.save()
}
