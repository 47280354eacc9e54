package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/zerr"
)

func newRegistry(t *testing.T, edges map[string][]string) *domain.Registry {
	t.Helper()
	reg := domain.NewRegistry()
	for name, deps := range edges {
		reg.Insert(domain.Package{Name: name, Version: "1.0", Dependencies: deps})
	}
	return reg
}

// assertInstallOrder checks that every dependency of every resolved package comes first.
func assertInstallOrder(t *testing.T, reg *domain.Registry, order []string) {
	t.Helper()
	index := make(map[string]int, len(order))
	for i, name := range order {
		_, dup := index[name]
		require.False(t, dup, "package %q appears more than once in %v", name, order)
		index[name] = i
	}
	for i, name := range order {
		pkg, ok := reg.Lookup(name)
		require.True(t, ok)
		for _, dep := range pkg.Dependencies {
			j, ok := index[dep]
			require.True(t, ok, "dependency %q of %q missing from %v", dep, name, order)
			assert.Less(t, j, i, "dependency %q must precede %q in %v", dep, name, order)
		}
	}
}

func TestResolver_Resolve_Flask(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"flask":      {"werkzeug", "jinja2"},
		"werkzeug":   {},
		"jinja2":     {"markupsafe"},
		"markupsafe": {},
	})

	order, err := domain.NewResolver(reg).Resolve("flask")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"werkzeug", "markupsafe", "jinja2", "flask"}, order)
	assert.Equal(t, "flask", order[len(order)-1])
	assertInstallOrder(t, reg, order)
	assert.Less(t, slices.Index(order, "markupsafe"), slices.Index(order, "jinja2"))
}

func TestResolver_Resolve_Chain(t *testing.T) {
	// A -> B -> C resolves to C, B, A.
	reg := newRegistry(t, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": nil,
	})

	order, err := domain.NewResolver(reg).Resolve("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, order)
}

func TestResolver_Resolve_Diamond(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"app":    {"left", "right"},
		"left":   {"base"},
		"right":  {"base"},
		"base":   {},
		"unused": {"base"},
	})

	order, err := domain.NewResolver(reg).Resolve("app")
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "left", "right", "app"}, order)
	assert.NotContains(t, order, "unused")
	assertInstallOrder(t, reg, order)
}

func TestResolver_Resolve_DuplicateDependencyEdges(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"a": {"b", "b"},
		"b": {},
	})

	order, err := domain.NewResolver(reg).Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestResolver_Resolve_Cycle(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	order, err := domain.NewResolver(reg).Resolve("A")
	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrCyclicDependency))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, "A -> B -> A", meta["cycle"])
	assert.Equal(t, []string{"A", "B", "A"}, meta["path"])
}

func TestResolver_Resolve_CycleBelowRoot(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"root": {"x"},
		"x":    {"y"},
		"y":    {"z"},
		"z":    {"x"},
	})

	_, err := domain.NewResolver(reg).Resolve("root")
	require.ErrorIs(t, err, domain.ErrCyclicDependency)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "x -> y -> z -> x", zErr.Metadata()["cycle"])
}

func TestResolver_Resolve_SelfDependency(t *testing.T) {
	reg := newRegistry(t, map[string][]string{"loop": {"loop"}})

	_, err := domain.NewResolver(reg).Resolve("loop")
	require.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestResolver_Resolve_MissingRoot(t *testing.T) {
	_, err := domain.NewResolver(domain.NewRegistry()).Resolve("ghost")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "ghost", zErr.Metadata()["package"])
	assert.NotContains(t, zErr.Metadata(), "required_by")
}

func TestResolver_Resolve_MissingDependency(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"requests": {"urllib3", "idna"},
		"urllib3":  {},
	})

	order, err := domain.NewResolver(reg).Resolve("requests")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Nil(t, order)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "idna", zErr.Metadata()["package"])
	assert.Equal(t, "requests", zErr.Metadata()["required_by"])
}

func TestResolver_Resolve_EmptyRoot(t *testing.T) {
	reg := newRegistry(t, map[string][]string{"": {}})

	_, err := domain.NewResolver(reg).Resolve("")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestResolver_Resolve_DoesNotMutateRegistry(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"a": {"b"},
		"b": {},
	})
	before := reg.Packages()

	_, err := domain.NewResolver(reg).Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, before, reg.Packages())
}

func TestResolver_Resolve_Repeatable(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {},
	})
	resolver := domain.NewResolver(reg)

	first, err := resolver.Resolve("a")
	require.NoError(t, err)
	second, err := resolver.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolver_ResolveAll(t *testing.T) {
	reg := newRegistry(t, map[string][]string{
		"flask":      {"werkzeug", "jinja2"},
		"werkzeug":   {},
		"jinja2":     {"markupsafe"},
		"markupsafe": {},
		"requests":   {"urllib3"},
		"urllib3":    {},
	})

	order, err := domain.NewResolver(reg).ResolveAll([]string{"requests", "flask", "jinja2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"urllib3", "requests", "werkzeug", "markupsafe", "jinja2", "flask"}, order)
	assertInstallOrder(t, reg, order)
}

func TestResolver_ResolveAll_FailsOnAnyRoot(t *testing.T) {
	reg := newRegistry(t, map[string][]string{"a": {}})

	order, err := domain.NewResolver(reg).ResolveAll([]string{"a", "missing"})
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Nil(t, order)
}

func TestResolver_Resolve_ClosureProperty(t *testing.T) {
	edges := map[string][]string{
		"p0": {"p1", "p2", "p3"},
		"p1": {"p4"},
		"p2": {"p4", "p5"},
		"p3": {"p5", "p6"},
		"p4": {"p7"},
		"p5": {"p7"},
		"p6": {},
		"p7": {},
		"p8": {"p0"},
	}
	reg := newRegistry(t, edges)

	for root := range edges {
		t.Run(root, func(t *testing.T) {
			order, err := domain.NewResolver(reg).Resolve(root)
			require.NoError(t, err)
			assertInstallOrder(t, reg, order)
			assert.ElementsMatch(t, closure(edges, root), order)
		})
	}
}

// closure computes the reachable set with a plain breadth-first walk.
func closure(edges map[string][]string, root string) []string {
	seen := map[string]bool{root: true}
	queue := []string{root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, dep := range edges[name] {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	res := make([]string, 0, len(seen))
	for name := range seen {
		res = append(res, name)
	}
	return res
}
