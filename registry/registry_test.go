package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/manifest"
)

func loadManifest(t *testing.T, content string) *manifest.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	m, err := manifest.Load(path)
	require.NoError(t, err)
	return m
}

func TestRegistryEntriesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, lang := range Languages() {
		assert.NotEmpty(t, lang.Name)
		assert.NotEmpty(t, lang.Dependency)
		assert.Equal(t, 1, strings.Count(lang.Template, TagPlaceholder),
			"template for %s must contain exactly one tag placeholder", lang.Name)
		assert.False(t, seen[lang.Name], "duplicate language %s", lang.Name)
		seen[lang.Name] = true
	}
}

func TestLookup(t *testing.T) {
	lang, ok := Lookup("rust")
	require.True(t, ok)
	assert.Equal(t, "tree-sitter-rust", lang.Dependency)

	lang, ok = Lookup("  TSX ")
	require.True(t, ok)
	assert.Equal(t, "tree-sitter-typescript", lang.Dependency)

	_, ok = Lookup("cobol")
	assert.False(t, ok)
}

func TestResolveDefaultsToVPrefix(t *testing.T) {
	m := loadManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
`)
	lang, ok := Lookup("rust")
	require.True(t, ok)

	tag, err := Resolve(lang, m)
	require.NoError(t, err)
	assert.Equal(t, "v0.21.0", tag)
}

func TestResolveOverrideWins(t *testing.T) {
	m := loadManifest(t, `
[dependencies]
tree-sitter-python = "0.20.4"
`)
	lang := Language{
		Name:       "python",
		Dependency: "tree-sitter-python",
		Template:   "https://example.com/{{TAG}}/node-types.json",
		Override:   "custom-tag",
	}

	tag, err := Resolve(lang, m)
	require.NoError(t, err)
	assert.Equal(t, "custom-tag", tag)
}

func TestResolveOverrideIgnoresVersionString(t *testing.T) {
	// The entry must exist, but its version is not interpreted when an
	// override supplies the tag
	m := loadManifest(t, `
[dependencies]
tree-sitter-python = "latest"
`)
	lang := Language{
		Name:       "python",
		Dependency: "tree-sitter-python",
		Template:   "https://example.com/{{TAG}}/node-types.json",
		Override:   "custom-tag",
	}

	tag, err := Resolve(lang, m)
	require.NoError(t, err)
	assert.Equal(t, "custom-tag", tag)
}

func TestResolveMissingDependency(t *testing.T) {
	m := loadManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
`)
	lang, ok := Lookup("go")
	require.True(t, ok)

	_, err := Resolve(lang, m)
	require.Error(t, err)
	assert.True(t, errors.IsLookupError(err))
	assert.Contains(t, err.Error(), "go")
}

func TestResolveRejectsNonSemver(t *testing.T) {
	m := loadManifest(t, `
[dependencies]
tree-sitter-rust = "latest"
`)
	lang, ok := Lookup("rust")
	require.True(t, ok)

	_, err := Resolve(lang, m)
	require.Error(t, err)
	assert.True(t, errors.IsLookupError(err))
}
