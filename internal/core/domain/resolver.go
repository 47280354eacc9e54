package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// visitState tracks a package during one resolution.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	resolved
)

// Resolver computes transitive dependency sets and install orders from a Registry.
// It only reads the registry.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver reading from reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{registry: reg}
}

// Resolve returns every package reachable from root, each exactly once, ordered so that
// every package appears after all of its dependencies. The root is always last.
//
// It fails with ErrPackageNotFound when root or any reachable dependency is missing from
// the registry, and with ErrCyclicDependency when the dependency edges form a cycle.
func (r *Resolver) Resolve(root string) ([]string, error) {
	return r.ResolveAll([]string{root})
}

// ResolveAll resolves several roots in one pass and returns the union of their closures
// in install order. Roots shared between closures are emitted once.
func (r *Resolver) ResolveAll(roots []string) ([]string, error) {
	res := &resolution{
		registry: r.registry,
		state:    make(map[string]visitState),
	}

	for _, root := range roots {
		if root == "" {
			return nil, zerr.With(zerr.Wrap(ErrPackageNotFound, "failed to resolve dependencies"), "package", root)
		}
		if res.state[root] == resolved {
			continue
		}
		if err := res.visit(root, ""); err != nil {
			return nil, err
		}
	}

	return res.order, nil
}

// resolution holds the per-call traversal state.
type resolution struct {
	registry *Registry
	state    map[string]visitState
	path     []string
	order    []string
}

func (res *resolution) visit(name, requiredBy string) error {
	deps, ok := res.registry.dependencies(name)
	if !ok {
		err := zerr.With(zerr.Wrap(ErrPackageNotFound, "failed to resolve dependencies"), "package", name)
		if requiredBy != "" {
			err = zerr.With(err, "required_by", requiredBy)
		}
		return err
	}

	res.state[name] = inProgress
	res.path = append(res.path, name)

	for _, dep := range deps {
		switch res.state[dep] {
		case inProgress:
			return res.cycleError(dep)
		case unvisited:
			if err := res.visit(dep, name); err != nil {
				return err
			}
		case resolved:
		}
	}

	res.state[name] = resolved
	res.path = res.path[:len(res.path)-1]
	res.order = append(res.order, name)
	return nil
}

// cycleError builds the error for an edge leading back to dep, which is on the current path.
func (res *resolution) cycleError(dep string) error {
	start := slices.Index(res.path, dep)
	cycle := append(slices.Clone(res.path[start:]), dep)

	err := zerr.Wrap(ErrCyclicDependency, "failed to resolve dependencies")
	err = zerr.With(err, "cycle", strings.Join(cycle, " -> "))
	return zerr.With(err, "path", cycle)
}
