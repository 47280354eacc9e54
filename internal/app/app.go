// Package app implements the application layer for pyman.
package app

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/pyman/internal/engine/installer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	registryStore ports.RegistryStore
	openState     ports.InstallStateStoreFactory
	installer     *installer.Installer
	logger        ports.Logger

	configPath string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	registryStore ports.RegistryStore,
	openState ports.InstallStateStoreFactory,
	inst *installer.Installer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		registryStore: registryStore,
		openState:     openState,
		installer:     inst,
		logger:        logger,
		configPath:    domain.ConfigFileName,
	}
}

// SetConfigPath sets the configuration file loaded by every operation.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// SetupOptions controls Setup.
type SetupOptions struct {
	// Force reinstalls everything, ignoring stored install records.
	Force bool
	// Strict rejects packages the registry does not know.
	Strict bool
	// Jobs limits how many projects are set up at once. Zero means runtime.NumCPU().
	Jobs int
}

// ProjectPlan is the install plan of one project.
type ProjectPlan struct {
	Project *domain.Project
	Plan    []domain.PackageSpec
}

func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) load() (*domain.Config, *domain.Registry, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg, err := a.registryStore.Load(cfg.RegistryPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load registry")
	}
	return cfg, reg, nil
}

// Resolve returns the install order of the named registry packages.
func (a *App) Resolve(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, domain.ErrNoPackagesSpecified
	}
	_, reg, err := a.load()
	if err != nil {
		return nil, err
	}
	return domain.NewResolver(reg).ResolveAll(names)
}

// Plan returns the install plans of the named projects, or of every project when names is
// empty. Plans are built concurrently and returned in the order of names.
func (a *App) Plan(ctx context.Context, names []string, strict bool) ([]ProjectPlan, error) {
	cfg, reg, err := a.load()
	if err != nil {
		return nil, err
	}
	return a.plan(ctx, cfg, reg, names, strict)
}

func (a *App) plan(ctx context.Context, cfg *domain.Config, reg *domain.Registry, names []string, strict bool) ([]ProjectPlan, error) {
	if len(names) == 0 {
		names = cfg.ProjectNames()
	}

	projects := make([]*domain.Project, 0, len(names))
	for _, name := range names {
		p, err := cfg.Project(name)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	plans := make([]ProjectPlan, len(projects))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range projects {
		g.Go(func() error {
			plan, err := domain.BuildInstallPlan(reg, p.Packages, strict)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to plan project"), "project", p.Name)
			}
			plans[i] = ProjectPlan{Project: p, Plan: plan}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Setup provisions the named projects, or every project when names is empty.
// Projects whose environment still matches their stored install record are skipped
// unless opts.Force is set.
func (a *App) Setup(ctx context.Context, names []string, opts SetupOptions) ([]installer.Result, error) {
	cfg, reg, err := a.load()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 && len(cfg.Projects) == 0 {
		a.logger.Warn("no projects configured")
		return nil, nil
	}

	plans, err := a.plan(ctx, cfg, reg, names, opts.Strict)
	if err != nil {
		return nil, err
	}

	store, err := a.openState(cfg.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open install state")
	}

	jobs := make([]installer.Job, 0, len(plans))
	for _, p := range plans {
		jobs = append(jobs, installer.Job{Project: p.Project, Plan: p.Plan})
	}

	return a.installer.Run(ctx, store, jobs, installer.Options{
		Force:         opts.Force,
		SkipUnchanged: true,
		Record:        true,
		Jobs:          opts.Jobs,
	})
}

// Install installs additional packages into a project's environment, creating the
// environment when needed. A project missing from the configuration is created under the
// configured base path.
func (a *App) Install(ctx context.Context, projectName string, rawSpecs []string, strict bool) (*installer.Result, error) {
	if len(rawSpecs) == 0 {
		return nil, domain.ErrNoPackagesSpecified
	}
	specs, err := domain.ParsePackageSpecs(rawSpecs)
	if err != nil {
		return nil, err
	}

	cfg, reg, err := a.load()
	if err != nil {
		return nil, err
	}

	project, err := cfg.Project(projectName)
	if errors.Is(err, domain.ErrProjectNotFound) {
		project, err = domain.NewProject(projectName, cfg.BasePath, cfg.Interpreter, nil)
	}
	if err != nil {
		return nil, err
	}

	plan, err := domain.BuildInstallPlan(reg, specs, strict)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to plan install"), "project", projectName)
	}

	store, err := a.openState(cfg.StatePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open install state")
	}

	results, err := a.installer.Run(ctx, store, []installer.Job{{Project: project, Plan: plan}}, installer.Options{Jobs: 1})
	if len(results) == 0 {
		return nil, err
	}
	return &results[0], err
}

// Freeze rewrites a project's requirements file from its environment.
func (a *App) Freeze(ctx context.Context, projectName string) (*domain.Manifest, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	project, err := cfg.Project(projectName)
	if err != nil {
		return nil, err
	}
	return a.installer.Freeze(ctx, project)
}

// RegistryAdd inserts or replaces a package in the registry file.
func (a *App) RegistryAdd(pkg domain.Package) error {
	if pkg.Name == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidPackageSpec, "package name is empty"), "spec", pkg.Spec().String())
	}

	cfg, reg, err := a.load()
	if err != nil {
		return err
	}
	reg.Insert(pkg)
	if err := a.registryStore.Save(cfg.RegistryPath, reg); err != nil {
		return zerr.Wrap(err, "failed to save registry")
	}
	a.logger.Info("Added " + pkg.Name + "==" + pkg.Spec().VersionOrLatest() + " to " + cfg.RegistryPath)
	return nil
}

// RegistryList returns every registry package sorted by name.
func (a *App) RegistryList() ([]domain.Package, error) {
	_, reg, err := a.load()
	if err != nil {
		return nil, err
	}
	return reg.Packages(), nil
}

// RegistryShow returns a registry package together with its install order.
func (a *App) RegistryShow(name string) (domain.Package, []string, error) {
	_, reg, err := a.load()
	if err != nil {
		return domain.Package{}, nil, err
	}
	pkg, ok := reg.Lookup(name)
	if !ok {
		return domain.Package{}, nil, zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "package is not in the registry"), "package", name)
	}
	order, err := domain.NewResolver(reg).Resolve(name)
	if err != nil {
		return pkg, nil, err
	}
	return pkg, order, nil
}
