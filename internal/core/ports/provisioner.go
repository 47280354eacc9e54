package ports

import (
	"context"

	"go.trai.ch/pyman/internal/core/domain"
)

// Provisioner creates isolated Python environments and installs packages into them.
//
//go:generate go run go.uber.org/mock/mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Create ensures the project directory and its virtual environment exist.
	Create(ctx context.Context, project *domain.Project) (*domain.Environment, error)

	// UpgradeInstaller upgrades the installer inside env.
	UpgradeInstaller(ctx context.Context, env *domain.Environment) error

	// Install installs a single package into env.
	Install(ctx context.Context, env *domain.Environment, spec domain.PackageSpec) error

	// Snapshot lists the packages currently installed in env.
	Snapshot(ctx context.Context, env *domain.Environment) (*domain.Manifest, error)
}
