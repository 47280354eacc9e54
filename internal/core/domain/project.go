package domain

import (
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// ConfigFileName is the default name of the project configuration file.
	ConfigFileName = "pyman.yaml"

	// DefaultBasePath is the directory projects are created under when none is configured.
	DefaultBasePath = "./python_project"

	// DefaultInterpreter is the Python executable used to create environments.
	DefaultInterpreter = "python"

	// DefaultRegistryFile is the registry path used when none is configured.
	DefaultRegistryFile = "registry.yaml"

	// DefaultStateFile is the install state path used when none is configured.
	DefaultStateFile = ".pyman/state.json"

	// EnvDirName is the directory name of a project's virtual environment.
	EnvDirName = ".venv"

	// RequirementsFileName is the file a project's installed packages are frozen into.
	RequirementsFileName = "requirements.txt"

	// DirPerm is the permission used for directories created by pyman.
	DirPerm = 0o750

	// FilePerm is the permission used for files written by pyman.
	FilePerm = 0o644
)

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config is the loaded pyman configuration.
type Config struct {
	// BasePath is the directory every project directory is created in.
	BasePath string
	// Interpreter is the Python executable used to create environments.
	Interpreter string
	// RegistryPath points to the structured package registry file.
	RegistryPath string
	// StatePath points to the install state store.
	StatePath string
	// Projects maps project names to their definitions.
	Projects map[string]*Project
}

// Project returns the project registered under name.
func (c *Config) Project(name string) (*Project, error) {
	p, ok := c.Projects[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrProjectNotFound, "failed to look up project"), "project", name)
	}
	return p, nil
}

// ProjectNames returns the declared project names in sorted order.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Project describes an isolated environment and the packages requested for it.
type Project struct {
	Name        string
	Dir         string
	Interpreter string
	Packages    []PackageSpec
}

// NewProject creates a project rooted at basePath/name.
func NewProject(name, basePath, interpreter string, packages []PackageSpec) (*Project, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return &Project{
		Name:        name,
		Dir:         filepath.Join(basePath, name),
		Interpreter: interpreter,
		Packages:    packages,
	}, nil
}

// EnvPath returns the path of the project's virtual environment.
func (p *Project) EnvPath() string {
	return filepath.Join(p.Dir, EnvDirName)
}

// RequirementsPath returns the path of the project's frozen requirements file.
func (p *Project) RequirementsPath() string {
	return filepath.Join(p.Dir, RequirementsFileName)
}

// ValidateProjectName checks that name is usable as a directory name.
func ValidateProjectName(name string) error {
	if !projectNamePattern.MatchString(name) {
		return zerr.With(zerr.Wrap(ErrInvalidProjectName, "invalid project name"), "project", name)
	}
	return nil
}

// Environment is a provisioned virtual environment.
type Environment struct {
	// Path is the root directory of the environment.
	Path string
	// GOOS selects the executable layout; it defaults to runtime.GOOS.
	GOOS string
}

// NewEnvironment describes the environment rooted at path for the current platform.
func NewEnvironment(path string) *Environment {
	return &Environment{Path: path, GOOS: runtime.GOOS}
}

// BinDir returns the directory holding the environment's executables.
func (e *Environment) BinDir() string {
	if e.GOOS == "windows" {
		return filepath.Join(e.Path, "Scripts")
	}
	return filepath.Join(e.Path, "bin")
}

// Executable returns the path of a named executable inside the environment.
func (e *Environment) Executable(name string) string {
	if e.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return filepath.Join(e.BinDir(), name)
}

// Python returns the environment's interpreter path.
func (e *Environment) Python() string {
	return e.Executable("python")
}

// Pip returns the environment's installer path.
func (e *Environment) Pip() string {
	return e.Executable("pip")
}
