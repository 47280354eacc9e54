package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// LatestVersion is the label used when a package is requested without a pinned version.
const LatestVersion = "latest"

// Package is a registry entry: a named unit with a version label and its direct dependencies.
type Package struct {
	// Name is the unique key of the package inside a Registry.
	Name string `json:"name" yaml:"name"`

	// Version is an opaque label. It is never compared or interpreted.
	Version string `json:"version" yaml:"version"`

	// Dependencies lists the direct dependency names in declaration order.
	// Entries may reference packages the registry does not know about yet.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// Spec returns the package pinned to its registry version.
func (p *Package) Spec() PackageSpec {
	return PackageSpec{Name: p.Name, Version: p.Version}
}

// PackageSpec is a request to install a package, optionally pinned to an exact version.
type PackageSpec struct {
	Name    string
	Version string
}

// ParsePackageSpec parses "name" or "name==version".
func ParsePackageSpec(s string) (PackageSpec, error) {
	raw := strings.TrimSpace(s)
	name, version, pinned := strings.Cut(raw, "==")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)

	if name == "" || (pinned && version == "") || strings.ContainsAny(name, " \t=<>@") {
		return PackageSpec{}, zerr.With(zerr.Wrap(ErrInvalidPackageSpec, "failed to parse package spec"), "spec", s)
	}
	return PackageSpec{Name: name, Version: version}, nil
}

// ParsePackageSpecs parses every entry, stopping at the first invalid one.
func ParsePackageSpecs(specs []string) ([]PackageSpec, error) {
	res := make([]PackageSpec, 0, len(specs))
	for _, s := range specs {
		spec, err := ParsePackageSpec(s)
		if err != nil {
			return nil, err
		}
		res = append(res, spec)
	}
	return res, nil
}

// Pinned reports whether the spec names an exact version.
func (s PackageSpec) Pinned() bool {
	return s.Version != "" && s.Version != LatestVersion
}

// VersionOrLatest returns the pinned version, or "latest" when none is set.
func (s PackageSpec) VersionOrLatest() string {
	if !s.Pinned() {
		return LatestVersion
	}
	return s.Version
}

// String renders the spec in installer syntax.
func (s PackageSpec) String() string {
	if !s.Pinned() {
		return s.Name
	}
	return s.Name + "==" + s.Version
}
