package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/adapters/config"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeConfig(t, `
version: "1"
base_path: envs
python: python3.12
registry: catalog/registry.json
projects:
  api:
    packages: ["requests", "flask==3.0.0"]
  legacy:
    python: python3.8
    packages: [six]
`)
	dir := filepath.Dir(path)

	cfg, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "envs"), cfg.BasePath)
	assert.Equal(t, "python3.12", cfg.Interpreter)
	assert.Equal(t, filepath.Join(dir, "catalog", "registry.json"), cfg.RegistryPath)
	assert.Equal(t, filepath.Join(dir, ".pyman", "state.json"), cfg.StatePath)
	assert.Equal(t, []string{"api", "legacy"}, cfg.ProjectNames())

	api, err := cfg.Project("api")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "envs", "api"), api.Dir)
	assert.Equal(t, "python3.12", api.Interpreter)
	assert.Equal(t, []domain.PackageSpec{
		{Name: "requests"},
		{Name: "flask", Version: "3.0.0"},
	}, api.Packages)

	legacy, err := cfg.Project("legacy")
	require.NoError(t, err)
	assert.Equal(t, "python3.8", legacy.Interpreter)
}

func TestLoader_Defaults(t *testing.T) {
	path := writeConfig(t, "projects: {}\n")
	dir := filepath.Dir(path)

	cfg, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "python_project"), cfg.BasePath)
	assert.Equal(t, domain.DefaultInterpreter, cfg.Interpreter)
	assert.Equal(t, filepath.Join(dir, domain.DefaultRegistryFile), cfg.RegistryPath)
	assert.Empty(t, cfg.Projects)
}

func TestLoader_AbsolutePathsKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "shared")
	path := writeConfig(t, "base_path: "+abs+"\n")

	cfg, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.BasePath)
}

func TestLoader_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("no pyman.yaml found, using defaults")

	dir := t.TempDir()
	cfg, err := config.NewLoader(mockLogger).Load(filepath.Join(dir, domain.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "python_project"), cfg.BasePath)
	assert.Empty(t, cfg.Projects)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "projects: [", wantErr: domain.ErrConfigParseFailed},
		{name: "invalid project name", content: "projects:\n  \"my app\":\n    packages: [flask]\n", wantErr: domain.ErrInvalidProjectName},
		{name: "invalid package spec", content: "projects:\n  api:\n    packages: [\"flask>=2\"]\n", wantErr: domain.ErrInvalidPackageSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewLoader(nil).Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Unreadable(t *testing.T) {
	dir := t.TempDir()
	_, err := config.NewLoader(nil).Load(dir)
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestParse_RelativeBasePathIsAbsolute(t *testing.T) {
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := config.Parse([]byte("projects:\n  demo:\n    packages: [six]\n"), ".")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, "python_project"), cfg.BasePath)
	assert.Equal(t, filepath.Join(cwd, domain.DefaultStateFile), cfg.StatePath)

	demo, err := cfg.Project("demo")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(demo.EnvPath()))
	assert.Equal(t, filepath.Join(cwd, "python_project", "demo", ".venv"), demo.EnvPath())
}

func TestLoader_MissingDefaultConfigInWorkingDir(t *testing.T) {
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := config.NewLoader(nil).Load(domain.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "python_project"), cfg.BasePath)
	assert.Equal(t, filepath.Join(cwd, domain.DefaultRegistryFile), cfg.RegistryPath)
}
