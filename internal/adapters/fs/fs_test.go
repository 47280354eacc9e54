package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/adapters/fs"
	"go.trai.ch/pyman/internal/core/domain"
)

func TestHasher_HashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	content := []byte("flask==3.0.0\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	h := fs.NewHasher()
	sum, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64(content), sum)

	hex, err := h.HashFile(path)
	require.NoError(t, err)
	assert.Len(t, hex, 16)

	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.1\n"), 0o600))
	changed, err := h.HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, hex, changed)
}

func TestHasher_MissingFile(t *testing.T) {
	_, err := fs.NewHasher().HashFile(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, domain.ErrFileHashFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerifier_VerifyOutputs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "python"), nil, 0o600))

	v := fs.NewVerifier()

	ok, err := v.VerifyOutputs(root, []string{filepath.Join("bin", "python")})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.VerifyOutputs(root, []string{filepath.Join(root, "bin", "python")})
	require.NoError(t, err)
	assert.True(t, ok, "absolute paths are checked as given")

	ok, err = v.VerifyOutputs(root, []string{filepath.Join("bin", "python"), filepath.Join("bin", "pip")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManifestWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api", "requirements.txt")
	m := domain.ParseManifest([]byte("flask==3.0.0\njinja2==3.1.2\n"))

	w := fs.NewManifestWriter()
	require.NoError(t, w.Write(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "flask==3.0.0\njinja2==3.1.2\n", string(data))

	require.NoError(t, w.Write(path, domain.ParseManifest(nil)))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestManifestWriter_Unwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := fs.NewManifestWriter().Write(filepath.Join(blocker, "requirements.txt"), &domain.Manifest{})
	require.ErrorIs(t, err, domain.ErrManifestWriteFailed)
}
