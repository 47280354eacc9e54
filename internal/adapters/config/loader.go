// Package config provides the configuration loader for pyman.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the configuration file at path.
// A missing file yields the default configuration with no projects.
func (l *FileConfigLoader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if l.logger != nil {
				l.logger.Warn("no " + filepath.Base(path) + " found, using defaults")
			}
			return Parse(nil, filepath.Dir(path))
		}
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// Parse builds a domain.Config from YAML data. Relative paths are resolved against dir and
// the working directory, so every path in the result is absolute.
func Parse(data []byte, dir string) (*domain.Config, error) {
	var file Pymanfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, err)
	}

	cfg := &domain.Config{
		BasePath:     resolvePath(dir, valueOr(file.BasePath, domain.DefaultBasePath)),
		Interpreter:  valueOr(file.Python, domain.DefaultInterpreter),
		RegistryPath: resolvePath(dir, valueOr(file.Registry, domain.DefaultRegistryFile)),
		StatePath:    resolvePath(dir, valueOr(file.State, domain.DefaultStateFile)),
		Projects:     make(map[string]*domain.Project, len(file.Projects)),
	}

	for name, dto := range file.Projects {
		specs, err := domain.ParsePackageSpecs(dto.Packages)
		if err != nil {
			return nil, zerr.With(err, "project", name)
		}

		project, err := domain.NewProject(name, cfg.BasePath, valueOr(dto.Python, cfg.Interpreter), specs)
		if err != nil {
			return nil, err
		}
		cfg.Projects[name] = project
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// resolvePath anchors path at dir and makes it absolute, so commands started in another
// working directory still see the same location.
func resolvePath(dir, path string) string {
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
