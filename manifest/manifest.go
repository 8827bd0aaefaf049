// Package manifest reads the Cargo-style dependency manifest that pins
// each grammar's version.
package manifest

import (
	"github.com/BurntSushi/toml"

	"github.com/grammarkit/nodetypes/errors"
)

// Dependency is one entry of the manifest's [dependencies] table. Cargo
// allows two forms:
//
//	tree-sitter-rust = "0.21.0"
//	tree-sitter-rust = { version = "0.21.0", optional = true }
//
// Both decode into Dependency; fields other than the version are ignored.
type Dependency struct {
	Version string
}

// UnmarshalTOML accepts either a bare version string or a dependency table.
func (d *Dependency) UnmarshalTOML(v interface{}) error {
	switch value := v.(type) {
	case string:
		d.Version = value
		return nil
	case map[string]interface{}:
		if ver, ok := value["version"].(string); ok {
			d.Version = ver
		}
		return nil
	default:
		return errors.Newf("unsupported dependency value of type %T", v)
	}
}

// Manifest is the decoded dependency manifest.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.WrapManifestParse(err, "failed to parse manifest "+path)
	}
	return &m, nil
}

// Version returns the pinned version for a dependency. A missing entry or
// an entry without a version is a lookup error, not a silent default.
func (m *Manifest) Version(dep string) (string, error) {
	entry, ok := m.Dependencies[dep]
	if !ok {
		return "", errors.NewLookupError("no dependency %q in manifest", dep)
	}
	if entry.Version == "" {
		return "", errors.NewLookupError("dependency %q has no version", dep)
	}
	return entry.Version, nil
}
