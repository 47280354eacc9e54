package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageNotFound is returned when resolution references a package absent from the registry.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrCyclicDependency is returned when resolution revisits a package that is still being resolved.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrRegistryLoadFailed is returned when a registry source cannot be read or parsed.
	ErrRegistryLoadFailed = zerr.New("failed to load package registry")

	// ErrRegistrySaveFailed is returned when a registry cannot be written to its destination.
	ErrRegistrySaveFailed = zerr.New("failed to save package registry")

	// ErrInvalidPackageSpec is returned when a package specification cannot be parsed.
	ErrInvalidPackageSpec = zerr.New("invalid package specification, expected format: name or name==version")

	// ErrInvalidProjectName is returned when a project name is invalid.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, hyphens and underscores")

	// ErrProjectNotFound is returned when a requested project is not declared in the config.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrNoPackagesSpecified is returned when an install is requested without any package.
	ErrNoPackagesSpecified = zerr.New("no packages specified")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEnvironmentCreateFailed is returned when the virtual environment cannot be created.
	ErrEnvironmentCreateFailed = zerr.New("failed to create virtual environment")

	// ErrInstallFailed is returned when the installer fails to install a package.
	ErrInstallFailed = zerr.New("failed to install package")

	// ErrInstallerUpgradeFailed is returned when the installer cannot upgrade itself.
	ErrInstallerUpgradeFailed = zerr.New("failed to upgrade installer")

	// ErrSnapshotFailed is returned when the installed packages cannot be listed.
	ErrSnapshotFailed = zerr.New("failed to snapshot installed packages")

	// ErrSetupFailed is returned when provisioning one or more projects fails.
	ErrSetupFailed = zerr.New("project setup failed")

	// ErrStoreReadFailed is returned when the install state cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read install state")

	// ErrStoreWriteFailed is returned when the install state cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write install state")

	// ErrManifestWriteFailed is returned when the requirements file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write requirements file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)
