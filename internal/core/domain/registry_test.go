package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/core/domain"
)

func TestRegistry_InsertLookup(t *testing.T) {
	reg := domain.NewRegistry()
	assert.Equal(t, 0, reg.Len())

	reg.Insert(domain.Package{Name: "jinja2", Version: "3.1.2", Dependencies: []string{"markupsafe"}})

	pkg, ok := reg.Lookup("jinja2")
	require.True(t, ok)
	assert.Equal(t, "3.1.2", pkg.Version)
	assert.Equal(t, []string{"markupsafe"}, pkg.Dependencies)
	assert.Equal(t, 1, reg.Len())

	_, ok = reg.Lookup("markupsafe")
	assert.False(t, ok, "dependencies are not registered implicitly")
}

func TestRegistry_InsertOverwrites(t *testing.T) {
	reg := domain.NewRegistry()
	reg.Insert(domain.Package{Name: "flask", Version: "2.0.0", Dependencies: []string{"werkzeug"}})
	reg.Insert(domain.Package{Name: "flask", Version: "3.0.0"})

	pkg, ok := reg.Lookup("flask")
	require.True(t, ok)
	assert.Equal(t, "3.0.0", pkg.Version)
	assert.Empty(t, pkg.Dependencies)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_IsolatesCallerSlices(t *testing.T) {
	deps := []string{"urllib3"}
	reg := domain.NewRegistry()
	reg.Insert(domain.Package{Name: "requests", Version: "2.31.0", Dependencies: deps})

	deps[0] = "mutated"
	pkg, _ := reg.Lookup("requests")
	assert.Equal(t, []string{"urllib3"}, pkg.Dependencies)

	pkg.Dependencies[0] = "mutated"
	again, _ := reg.Lookup("requests")
	assert.Equal(t, []string{"urllib3"}, again.Dependencies)
}

func TestRegistry_Packages(t *testing.T) {
	reg := domain.NewRegistry()
	reg.Insert(domain.Package{Name: "werkzeug", Version: "3.0.1"})
	reg.Insert(domain.Package{Name: "flask", Version: "3.0.0", Dependencies: []string{"werkzeug"}})
	reg.Insert(domain.Package{Name: "click", Version: "8.1.7"})

	pkgs := reg.Packages()
	require.Len(t, pkgs, 3)
	assert.Equal(t, "click", pkgs[0].Name)
	assert.Equal(t, "flask", pkgs[1].Name)
	assert.Equal(t, "werkzeug", pkgs[2].Name)
}

func TestPackage_Spec(t *testing.T) {
	pkg := domain.Package{Name: "idna", Version: "3.6"}
	assert.Equal(t, domain.PackageSpec{Name: "idna", Version: "3.6"}, pkg.Spec())
}
