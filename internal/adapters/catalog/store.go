package catalog

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RegistryStore on registry files.
// The format of each file follows its extension.
type Store struct{}

// NewStore creates a new file-backed registry store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the registry at path. A missing file yields an empty registry.
func (s *Store) Load(path string) (*domain.Registry, error) {
	reg := domain.NewRegistry()

	//nolint:gosec // path comes from the user's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrRegistryLoadFailed, err), "path", path)
	}

	if err := Decode(bytes.NewReader(data), FormatForPath(path), reg); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return reg, nil
}

// Save writes reg to path, creating parent directories as needed.
func (s *Store) Save(path string, reg *domain.Registry) error {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatForPath(path), reg); err != nil {
		return zerr.With(err, "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrRegistrySaveFailed, err), "path", path)
	}

	//nolint:gosec // path comes from the user's configuration
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrRegistrySaveFailed, err), "path", path)
	}
	return nil
}
