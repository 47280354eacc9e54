// Package domain contains the core domain models and business logic for package resolution.
package domain

import (
	"slices"
	"strings"
)

// Registry is an in-memory catalog of packages keyed by name.
//
// A Registry has no internal locking. Callers that mutate it concurrently with
// resolutions must serialize access themselves.
type Registry struct {
	packages map[InternedString]Package
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		packages: make(map[InternedString]Package),
	}
}

// Insert stores the package under its name, replacing any previous entry.
func (r *Registry) Insert(pkg Package) {
	pkg.Dependencies = slices.Clone(pkg.Dependencies)
	r.packages[NewInternedString(pkg.Name)] = pkg
}

// Lookup returns the package registered under name.
func (r *Registry) Lookup(name string) (Package, bool) {
	pkg, ok := r.packages[NewInternedString(name)]
	if !ok {
		return Package{}, false
	}
	pkg.Dependencies = slices.Clone(pkg.Dependencies)
	return pkg, true
}

// Len returns the number of registered packages.
func (r *Registry) Len() int {
	return len(r.packages)
}

// Packages returns a copy of every entry sorted by name.
func (r *Registry) Packages() []Package {
	res := make([]Package, 0, len(r.packages))
	for _, pkg := range r.packages {
		pkg.Dependencies = slices.Clone(pkg.Dependencies)
		res = append(res, pkg)
	}
	slices.SortFunc(res, func(a, b Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res
}

// dependencies returns the stored dependency list without copying.
// It is used by the resolver, which never mutates it.
func (r *Registry) dependencies(name string) ([]string, bool) {
	pkg, ok := r.packages[NewInternedString(name)]
	return pkg.Dependencies, ok
}
