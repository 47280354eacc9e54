package domain

import (
	"regexp"
	"strings"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizePackageName folds a package name the way Python installers compare them:
// case-insensitive, with runs of "-", "_" and "." treated as a single "-".
func NormalizePackageName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
}

// Manifest is a snapshot of the packages installed in an environment.
type Manifest struct {
	// Packages holds every pinned "name==version" entry.
	Packages []PackageSpec
	// Lines holds the snapshot as reported by the installer, comments and blanks removed.
	Lines []string
}

// ParseManifest parses installer freeze output. Lines that are not "name==version"
// pins (editable installs, direct references) are kept in Lines only.
func ParseManifest(data []byte) *Manifest {
	m := &Manifest{}
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.Lines = append(m.Lines, line)

		if spec, err := ParsePackageSpec(line); err == nil && spec.Pinned() {
			m.Packages = append(m.Packages, spec)
		}
	}
	return m
}

// Version returns the installed version of name.
func (m *Manifest) Version(name string) (string, bool) {
	want := NormalizePackageName(name)
	for _, spec := range m.Packages {
		if NormalizePackageName(spec.Name) == want {
			return spec.Version, true
		}
	}
	return "", false
}

// Satisfies reports whether the snapshot already fulfils spec. An unpinned spec is
// satisfied by any installed version.
func (m *Manifest) Satisfies(spec PackageSpec) bool {
	version, ok := m.Version(spec.Name)
	if !ok {
		return false
	}
	return !spec.Pinned() || version == spec.Version
}

// Requirements renders the snapshot in requirements file format.
func (m *Manifest) Requirements() []byte {
	if len(m.Lines) == 0 {
		return nil
	}
	return []byte(strings.Join(m.Lines, "\n") + "\n")
}
