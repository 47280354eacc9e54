// Package catalog reads and writes package registries as YAML or JSON documents.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a registry document.
type Format string

const (
	// FormatYAML is the default registry encoding.
	FormatYAML Format = "yaml"
	// FormatJSON encodes the registry as JSON.
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension. Anything but ".json" is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// registryFile is the on-disk shape of a registry document.
type registryFile struct {
	Packages []domain.Package `json:"packages" yaml:"packages"`
}

// Decode parses a registry document from r and inserts every record into reg.
//
// The whole document is parsed before anything is inserted, so malformed input leaves reg
// untouched. Records are then inserted in document order; a record without a name stops the
// load and the records before it stay inserted.
func Decode(r io.Reader, format Format, reg *domain.Registry) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrRegistryLoadFailed, err), "format", string(format))
	}

	pkgs, err := parse(data, format)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrRegistryLoadFailed, err), "format", string(format))
	}

	for i, pkg := range pkgs {
		if strings.TrimSpace(pkg.Name) == "" {
			loadErr := zerr.Wrap(domain.ErrRegistryLoadFailed, "package record has no name")
			return zerr.With(loadErr, "index", i)
		}
		reg.Insert(pkg)
	}
	return nil
}

func parse(data []byte, format Format) ([]domain.Package, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if format == FormatJSON {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]domain.Package, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var pkgs []domain.Package
		if err := root.Decode(&pkgs); err != nil {
			return nil, err
		}
		return pkgs, nil
	case yaml.MappingNode:
		var file registryFile
		if err := root.Decode(&file); err != nil {
			return nil, err
		}
		return file.Packages, nil
	default:
		return nil, zerr.With(zerr.New("registry document must be a list or a mapping"), "line", root.Line)
	}
}

func parseJSON(data []byte) ([]domain.Package, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var pkgs []domain.Package
		if err := json.Unmarshal(trimmed, &pkgs); err != nil {
			return nil, err
		}
		return pkgs, nil
	}

	var file registryFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, err
	}
	return file.Packages, nil
}

// Encode writes every entry of reg to w, sorted by name.
func Encode(w io.Writer, format Format, reg *domain.Registry) error {
	file := registryFile{Packages: reg.Packages()}
	for i := range file.Packages {
		if file.Packages[i].Dependencies == nil {
			file.Packages[i].Dependencies = []string{}
		}
	}

	var err error
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(file)
	} else {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(file)
		if err == nil {
			err = enc.Close()
		}
	}

	if err != nil {
		return zerr.With(errors.Join(domain.ErrRegistrySaveFailed, err), "format", string(format))
	}
	return nil
}
