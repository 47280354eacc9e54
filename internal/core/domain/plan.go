package domain

import "go.trai.ch/zerr"

// BuildInstallPlan expands requested specs into an ordered install plan.
//
// Specs the registry knows are expanded to their transitive dependencies, which are
// pinned to registry versions and placed before their dependents. An explicit pin on a
// requested spec wins over the registry version. Specs the registry does not know are
// appended in request order and left to the installer, unless strict is set, in which
// case they fail with ErrPackageNotFound. A package requested more than once keeps its
// first position and takes the pin of whichever request carries one; two different pins
// fail with ErrInvalidPackageSpec.
func BuildInstallPlan(reg *Registry, specs []PackageSpec, strict bool) ([]PackageSpec, error) {
	specs, err := mergeDuplicateSpecs(specs)
	if err != nil {
		return nil, err
	}

	pins := make(map[string]string, len(specs))
	roots := make([]string, 0, len(specs))
	var unknown []PackageSpec

	for _, spec := range specs {
		if _, ok := reg.Lookup(spec.Name); !ok {
			if strict {
				return nil, zerr.With(zerr.Wrap(ErrPackageNotFound, "package is not in the registry"), "package", spec.Name)
			}
			unknown = append(unknown, spec)
			continue
		}
		roots = append(roots, spec.Name)
		if spec.Pinned() {
			pins[spec.Name] = spec.Version
		}
	}

	order, err := NewResolver(reg).ResolveAll(roots)
	if err != nil {
		return nil, err
	}

	plan := make([]PackageSpec, 0, len(order)+len(unknown))
	for _, name := range order {
		pkg, _ := reg.Lookup(name)
		spec := pkg.Spec()
		if v, ok := pins[name]; ok {
			spec.Version = v
		}
		plan = append(plan, spec)
	}
	return append(plan, unknown...), nil
}

// mergeDuplicateSpecs collapses repeated names into one spec at the first position.
func mergeDuplicateSpecs(specs []PackageSpec) ([]PackageSpec, error) {
	merged := make([]PackageSpec, 0, len(specs))
	index := make(map[string]int, len(specs))

	for _, spec := range specs {
		i, ok := index[spec.Name]
		if !ok {
			index[spec.Name] = len(merged)
			merged = append(merged, spec)
			continue
		}

		prev := &merged[i]
		switch {
		case !spec.Pinned() || spec.Version == prev.Version:
		case !prev.Pinned():
			prev.Version = spec.Version
		default:
			err := zerr.With(zerr.Wrap(ErrInvalidPackageSpec, "conflicting pins for package"), "package", spec.Name)
			return nil, zerr.With(err, "versions", prev.Version+", "+spec.Version)
		}
	}
	return merged, nil
}
