// Package installer provisions project environments and installs their install plans.
package installer

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Job is one project to provision together with its resolved install plan.
type Job struct {
	Project *domain.Project
	// Plan lists the packages in installation order, dependencies first.
	Plan []domain.PackageSpec
}

// Options controls a Run.
type Options struct {
	// Force reinstalls packages even when the environment already has them.
	Force bool
	// SkipUnchanged skips projects whose stored install record still matches.
	SkipUnchanged bool
	// Record stores an install record for every project that succeeds.
	Record bool
	// Jobs limits how many projects are provisioned at once. Zero means runtime.NumCPU().
	Jobs int
}

// PackageResult is the outcome for one entry of a plan.
type PackageResult struct {
	Spec   domain.PackageSpec
	Status domain.VertexStatus
}

// Result is the outcome for one project.
type Result struct {
	Project string
	EnvPath string
	// UpToDate is set when the project was skipped because nothing changed.
	UpToDate bool
	Packages []PackageResult
	Err      error
}

// Installer runs jobs against a provisioner.
type Installer struct {
	provisioner ports.Provisioner
	writer      ports.ManifestWriter
	hasher      ports.Hasher
	verifier    ports.Verifier
	telemetry   ports.Telemetry
	logger      ports.Logger

	mu     sync.RWMutex
	status map[string]map[string]domain.VertexStatus
}

// New creates a new Installer.
func New(
	provisioner ports.Provisioner,
	writer ports.ManifestWriter,
	hasher ports.Hasher,
	verifier ports.Verifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Installer {
	return &Installer{
		provisioner: provisioner,
		writer:      writer,
		hasher:      hasher,
		verifier:    verifier,
		telemetry:   telemetry,
		logger:      logger,
		status:      make(map[string]map[string]domain.VertexStatus),
	}
}

// Status returns the last known status of a package within a project.
func (i *Installer) Status(project, pkg string) domain.VertexStatus {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if s, ok := i.status[project][pkg]; ok {
		return s
	}
	return domain.VertexStatusPending
}

func (i *Installer) setStatus(project, pkg string, status domain.VertexStatus) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status[project] == nil {
		i.status[project] = make(map[string]domain.VertexStatus)
	}
	i.status[project][pkg] = status
}

// Run provisions every job. Projects run concurrently up to opts.Jobs; the packages of one
// project install sequentially in plan order. A failing project does not stop the others.
// Results are returned in job order. The error joins domain.ErrSetupFailed with every
// project failure.
func (i *Installer) Run(ctx context.Context, store ports.InstallStateStore, jobs []Job, opts Options) ([]Result, error) {
	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for idx, job := range jobs {
		for _, spec := range job.Plan {
			i.setStatus(job.Project.Name, spec.Name, domain.VertexStatusPending)
		}
		g.Go(func() error {
			results[idx] = i.runJob(ctx, store, job, opts)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) > 0 {
		return results, errors.Join(append([]error{domain.ErrSetupFailed}, errs...)...)
	}
	return results, nil
}

func (i *Installer) runJob(ctx context.Context, store ports.InstallStateStore, job Job, opts Options) Result {
	project := job.Project
	res := Result{Project: project.Name, EnvPath: project.EnvPath()}

	envID := domain.GenerateEnvID(project.Interpreter, job.Plan)
	if opts.SkipUnchanged && !opts.Force && i.upToDate(store, project, envID) {
		_, v := i.telemetry.Record(ctx, "set up environment", ports.WithGroup(project.Name))
		v.Cached()
		v.Complete(nil)

		for _, spec := range job.Plan {
			i.setStatus(project.Name, spec.Name, domain.VertexStatusCached)
		}
		i.logger.Info("Project " + project.Name + " is up to date")
		res.UpToDate = true
		res.Packages = i.packageResults(project.Name, job.Plan)
		return res
	}

	err := i.provision(ctx, store, job, envID, opts)
	res.Packages = i.packageResults(project.Name, job.Plan)
	if err != nil {
		res.Err = zerr.With(zerr.Wrap(err, "failed to set up project"), "project", project.Name)
	}
	return res
}

// upToDate reports whether the stored record matches the plan and the environment on disk.
func (i *Installer) upToDate(store ports.InstallStateStore, project *domain.Project, envID string) bool {
	rec, err := store.Get(project.Name)
	if err != nil || rec == nil || rec.EnvID != envID {
		return false
	}

	env := domain.NewEnvironment(project.EnvPath())
	ok, err := i.verifier.VerifyOutputs(env.Path, []string{env.Python(), project.RequirementsPath()})
	if err != nil || !ok {
		return false
	}

	hash, err := i.hasher.HashFile(project.RequirementsPath())
	return err == nil && hash == rec.RequirementsHash
}

func (i *Installer) provision(ctx context.Context, store ports.InstallStateStore, job Job, envID string, opts Options) error {
	project := job.Project

	createCtx, v := i.telemetry.Record(ctx, "create environment", ports.WithGroup(project.Name))
	env, err := i.provisioner.Create(createCtx, project)
	v.Complete(err)
	if err != nil {
		i.skipRemaining(project.Name, job.Plan)
		return err
	}

	upgradeCtx, v := i.telemetry.Record(ctx, "upgrade pip", ports.WithGroup(project.Name))
	err = i.provisioner.UpgradeInstaller(upgradeCtx, env)
	if err != nil {
		// An outdated pip can still install packages.
		v.Log(domain.LogLevelWarn, "continuing with the bundled pip")
		i.logger.Warn("could not upgrade pip for " + project.Name + ": " + err.Error())
	}
	v.Complete(err)

	installed := &domain.Manifest{}
	if !opts.Force {
		if installed, err = i.provisioner.Snapshot(ctx, env); err != nil {
			i.skipRemaining(project.Name, job.Plan)
			return err
		}
	}

	for idx, spec := range job.Plan {
		if err := i.installPackage(ctx, project.Name, env, spec, installed); err != nil {
			i.skipRemaining(project.Name, job.Plan[idx+1:])
			return err
		}
	}

	manifest, err := i.provisioner.Snapshot(ctx, env)
	if err != nil {
		return err
	}
	if err := i.writer.Write(project.RequirementsPath(), manifest); err != nil {
		return err
	}

	if !opts.Record {
		return nil
	}
	return i.record(store, project, envID, job.Plan)
}

func (i *Installer) installPackage(
	ctx context.Context,
	project string,
	env *domain.Environment,
	spec domain.PackageSpec,
	installed *domain.Manifest,
) error {
	label := spec.Name + "==" + spec.VersionOrLatest()
	ctx, v := i.telemetry.Record(ctx, "install "+label, ports.WithGroup(project))

	if installed.Satisfies(spec) {
		i.setStatus(project, spec.Name, domain.VertexStatusCached)
		v.Cached()
		v.Complete(nil)
		return nil
	}

	i.setStatus(project, spec.Name, domain.VertexStatusRunning)
	i.logger.Info("Installing " + label)

	err := i.provisioner.Install(ctx, env, spec)
	v.Complete(err)
	if err != nil {
		i.setStatus(project, spec.Name, domain.VertexStatusFailed)
		return err
	}
	i.setStatus(project, spec.Name, domain.VertexStatusCompleted)
	return nil
}

func (i *Installer) record(store ports.InstallStateStore, project *domain.Project, envID string, plan []domain.PackageSpec) error {
	hash, err := i.hasher.HashFile(project.RequirementsPath())
	if err != nil {
		return err
	}

	rec := domain.InstallRecord{
		Project:          project.Name,
		EnvID:            envID,
		RequirementsHash: hash,
		Packages:         make(map[string]domain.VertexStatus, len(plan)),
		Timestamp:        time.Now(),
	}
	for _, spec := range plan {
		rec.Packages[spec.Name] = i.Status(project.Name, spec.Name)
	}
	return store.Put(rec)
}

func (i *Installer) skipRemaining(project string, plan []domain.PackageSpec) {
	for _, spec := range plan {
		if !i.Status(project, spec.Name).IsTerminal() {
			i.setStatus(project, spec.Name, domain.VertexStatusSkipped)
		}
	}
}

func (i *Installer) packageResults(project string, plan []domain.PackageSpec) []PackageResult {
	res := make([]PackageResult, 0, len(plan))
	for _, spec := range plan {
		res = append(res, PackageResult{Spec: spec, Status: i.Status(project, spec.Name)})
	}
	return res
}

// Freeze snapshots the packages installed in a project's existing environment and writes
// them to the project's requirements file.
func (i *Installer) Freeze(ctx context.Context, project *domain.Project) (*domain.Manifest, error) {
	env := domain.NewEnvironment(project.EnvPath())
	ok, err := i.verifier.VerifyOutputs(env.Path, []string{env.Python()})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrSnapshotFailed, "environment does not exist"), "project", project.Name),
			"path", env.Path,
		)
	}

	ctx, v := i.telemetry.Record(ctx, "freeze", ports.WithGroup(project.Name))
	manifest, err := i.provisioner.Snapshot(ctx, env)
	if err == nil {
		err = i.writer.Write(project.RequirementsPath(), manifest)
	}
	v.Complete(err)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
