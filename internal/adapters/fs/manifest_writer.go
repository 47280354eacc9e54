package fs

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter writes environment snapshots as requirements files.
type ManifestWriter struct{}

// NewManifestWriter creates a new ManifestWriter.
func NewManifestWriter() *ManifestWriter {
	return &ManifestWriter{}
}

// Write replaces the file at path with the snapshot. The content is written to a
// temporary file in the same directory first and renamed into place.
func (w *ManifestWriter) Write(path string, m *domain.Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}

	tmp, err := os.CreateTemp(dir, ".requirements-*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(m.Requirements())
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(errors.Join(domain.ErrManifestWriteFailed, err), "path", path)
	}
	return nil
}
