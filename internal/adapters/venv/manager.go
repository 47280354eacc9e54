// Package venv provisions Python virtual environments and installs packages into them with pip.
package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Provisioner = (*Manager)(nil)

// Manager implements ports.Provisioner using "python -m venv" and the environment's pip.
type Manager struct {
	runner   ports.CommandRunner
	verifier ports.Verifier
	logger   ports.Logger
}

// NewManager creates a new Provisioner backed by venv and pip.
func NewManager(runner ports.CommandRunner, verifier ports.Verifier, logger ports.Logger) *Manager {
	return &Manager{
		runner:   runner,
		verifier: verifier,
		logger:   logger,
	}
}

// Create ensures project.Dir exists and holds a virtual environment.
// An environment whose interpreter is already present is reused as is.
func (m *Manager) Create(ctx context.Context, project *domain.Project) (*domain.Environment, error) {
	// venv resolves a relative target against Dir, not against our working directory.
	envPath, err := filepath.Abs(project.EnvPath())
	if err != nil {
		return nil, createError(err, project)
	}
	env := domain.NewEnvironment(envPath)

	exists, err := m.verifier.VerifyOutputs(env.Path, []string{env.Python()})
	if err != nil {
		return nil, createError(err, project)
	}
	if exists {
		return env, nil
	}

	if err := os.MkdirAll(project.Dir, domain.DirPerm); err != nil {
		return nil, createError(err, project)
	}

	_, err = m.runner.Run(ctx, &domain.Command{
		Name: project.Interpreter,
		Args: []string{"-m", "venv", env.Path},
		Dir:  project.Dir,
	})
	if err != nil {
		return nil, createError(err, project)
	}

	m.logger.Info("Created virtual environment at " + env.Path)
	return env, nil
}

func createError(err error, project *domain.Project) error {
	createErr := zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "project", project.Name)
	return zerr.With(createErr, "interpreter", project.Interpreter)
}

// UpgradeInstaller runs "pip install --upgrade pip" inside env.
func (m *Manager) UpgradeInstaller(ctx context.Context, env *domain.Environment) error {
	if _, err := m.pip(ctx, env, "install", "--upgrade", "pip"); err != nil {
		return zerr.With(errors.Join(domain.ErrInstallerUpgradeFailed, err), "env", env.Path)
	}
	return nil
}

// Install runs "pip install --quiet <spec>" inside env. An unpinned spec installs the latest version.
func (m *Manager) Install(ctx context.Context, env *domain.Environment, spec domain.PackageSpec) error {
	if _, err := m.pip(ctx, env, "install", "--quiet", spec.String()); err != nil {
		installErr := zerr.With(errors.Join(domain.ErrInstallFailed, err), "package", spec.Name)
		return zerr.With(installErr, "version", spec.VersionOrLatest())
	}
	return nil
}

// Snapshot runs "pip freeze" inside env.
func (m *Manager) Snapshot(ctx context.Context, env *domain.Environment) (*domain.Manifest, error) {
	out, err := m.pip(ctx, env, "freeze")
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSnapshotFailed, err), "env", env.Path)
	}
	return domain.ParseManifest(out), nil
}

func (m *Manager) pip(ctx context.Context, env *domain.Environment, args ...string) ([]byte, error) {
	return m.runner.Run(ctx, &domain.Command{
		Name: env.Pip(),
		Args: args,
		Env:  activation(env),
	})
}

// activation returns the variables "activate" would set for env.
func activation(env *domain.Environment) []string {
	return []string{
		"VIRTUAL_ENV=" + env.Path,
		"PATH=" + env.BinDir(),
		"PIP_DISABLE_PIP_VERSION_CHECK=1",
	}
}
