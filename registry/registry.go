// Package registry holds the static table of supported grammars and
// resolves their source-repository tags.
package registry

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/manifest"
)

// TagPlaceholder is the token in a URL template that the resolved tag
// replaces.
const TagPlaceholder = "{{TAG}}"

// Language describes one grammar target.
type Language struct {
	// Name is the language identifier; it also names the output file.
	Name string

	// Dependency is the manifest key whose pinned version drives the tag.
	Dependency string

	// Template is the node-types.json URL with a TagPlaceholder occurrence.
	Template string

	// Override, when non-empty, is used as the tag verbatim instead of
	// the v<version> derived from the manifest.
	Override string
}

// languages is the registry. Slice order is generation order.
//
// To add a language:
// 1. Pin its grammar crate in the manifest's [dependencies] table
// 2. Add an entry here with the raw node-types.json URL of its repo
// 3. Set Override only when the repo tag differs from v<crate version>
var languages = []Language{
	{
		Name:       "rust",
		Dependency: "tree-sitter-rust",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-rust/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "go",
		Dependency: "tree-sitter-go",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-go/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "python",
		Dependency: "tree-sitter-python",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-python/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "javascript",
		Dependency: "tree-sitter-javascript",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-javascript/{{TAG}}/src/node-types.json",
	},
	{
		// The typescript repo hosts two grammars; typescript and tsx
		// share one crate pin but fetch from different subdirectories.
		Name:       "typescript",
		Dependency: "tree-sitter-typescript",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-typescript/{{TAG}}/typescript/src/node-types.json",
	},
	{
		Name:       "tsx",
		Dependency: "tree-sitter-typescript",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-typescript/{{TAG}}/tsx/src/node-types.json",
	},
	{
		Name:       "java",
		Dependency: "tree-sitter-java",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-java/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "c",
		Dependency: "tree-sitter-c",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-c/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "cpp",
		Dependency: "tree-sitter-cpp",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-cpp/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "csharp",
		Dependency: "tree-sitter-c-sharp",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-c-sharp/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "css",
		Dependency: "tree-sitter-css",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-css/{{TAG}}/src/node-types.json",
	},
	{
		// crate 0.20.4 shipped without a matching repo tag
		Name:       "html",
		Dependency: "tree-sitter-html",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-html/{{TAG}}/src/node-types.json",
		Override:   "v0.20.3",
	},
	{
		Name:       "json",
		Dependency: "tree-sitter-json",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-json/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "ruby",
		Dependency: "tree-sitter-ruby",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-ruby/{{TAG}}/src/node-types.json",
	},
	{
		Name:       "bash",
		Dependency: "tree-sitter-bash",
		Template:   "https://raw.githubusercontent.com/tree-sitter/tree-sitter-bash/{{TAG}}/src/node-types.json",
	},
}

// Languages returns the registry in generation order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup returns the registry entry for a language name.
func Lookup(name string) (Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, lang := range languages {
		if lang.Name == name {
			return lang, true
		}
	}
	return Language{}, false
}

// Resolve computes the source tag for a language from the manifest:
// the override when present, else v<version>. The manifest entry must
// exist even when an override is set, but its version string is only
// validated when it derives the tag — an override wins verbatim.
func Resolve(lang Language, m *manifest.Manifest) (string, error) {
	version, err := m.Version(lang.Dependency)
	if err != nil {
		return "", errors.Wrapf(err, "resolving tag for %s", lang.Name)
	}
	if lang.Override != "" {
		return lang.Override, nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return "", errors.NewLookupError("dependency %q version %q is not a semantic version", lang.Dependency, version)
	}
	return "v" + version, nil
}
