package generate

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/logger"
	"github.com/grammarkit/nodetypes/registry"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunGeneratesAllLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"type": "source_file", "named": true}]`))
	}))
	defer server.Close()

	manifestPath := writeManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
tree-sitter-go = "0.20.0"
`)

	fs := afero.NewMemMapFs()
	var generated []string
	runner := New(Options{
		ManifestPath: manifestPath,
		OutputDir:    "types",
		Timeout:      5 * time.Second,
		Fs:           fs,
		Languages: []registry.Language{
			{Name: "rust", Dependency: "tree-sitter-rust", Template: server.URL + "/{{TAG}}/node-types.json"},
			{Name: "go", Dependency: "tree-sitter-go", Template: server.URL + "/{{TAG}}/node-types.json"},
		},
		OnGenerated: func(lang, path string) { generated = append(generated, lang) },
	})

	require.NoError(t, runner.Run())
	assert.Equal(t, []string{"rust", "go"}, generated)

	for _, lang := range []string{"rust", "go"} {
		exists, err := afero.Exists(fs, "types/"+lang+".d.ts")
		require.NoError(t, err)
		assert.True(t, exists, "expected declaration file for %s", lang)
	}
}

func TestRunFailFastKeepsEarlierFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken/node-types.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"type": "source_file", "named": true}]`))
	}))
	defer server.Close()

	manifestPath := writeManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
tree-sitter-go = "0.20.0"
tree-sitter-python = "0.20.4"
`)

	fs := afero.NewMemMapFs()
	runner := New(Options{
		ManifestPath: manifestPath,
		OutputDir:    "types",
		Timeout:      5 * time.Second,
		Fs:           fs,
		Languages: []registry.Language{
			{Name: "rust", Dependency: "tree-sitter-rust", Template: server.URL + "/{{TAG}}/node-types.json"},
			{Name: "go", Dependency: "tree-sitter-go", Template: server.URL + "/{{TAG}}/node-types.json", Override: "broken"},
			{Name: "python", Dependency: "tree-sitter-python", Template: server.URL + "/{{TAG}}/node-types.json"},
		},
	})

	err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.IsFetchError(err))
	assert.Contains(t, err.Error(), "go")

	// rust succeeded before the failure and its file stays on disk
	exists, _ := afero.Exists(fs, "types/rust.d.ts")
	assert.True(t, exists)
	// go failed, python was never reached
	exists, _ = afero.Exists(fs, "types/go.d.ts")
	assert.False(t, exists)
	exists, _ = afero.Exists(fs, "types/python.d.ts")
	assert.False(t, exists)
}

func TestRunMissingManifestEntry(t *testing.T) {
	manifestPath := writeManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
`)

	runner := New(Options{
		ManifestPath: manifestPath,
		OutputDir:    "types",
		Fs:           afero.NewMemMapFs(),
		Languages: []registry.Language{
			{Name: "go", Dependency: "tree-sitter-go", Template: "https://example.com/{{TAG}}/node-types.json"},
		},
	})

	err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.IsLookupError(err))
}

func TestRunnerLogsThroughLoggerConfiguredAfterNew(t *testing.T) {
	manifestPath := writeManifest(t, `
[dependencies]
tree-sitter-rust = "0.21.0"
`)

	// Runner built first, logger swapped afterwards
	runner := New(Options{
		ManifestPath: manifestPath,
		OutputDir:    "types",
		Fs:           afero.NewMemMapFs(),
		Languages: []registry.Language{
			{Name: "go", Dependency: "tree-sitter-go", Template: "https://example.com/{{TAG}}/node-types.json"},
		},
	})

	core, logs := observer.New(zap.ErrorLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = prev })

	err := runner.Run()
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("Error while generating node types for go").Len())
}

func TestRunUnreadableManifestAbortsBeforeAnyLanguage(t *testing.T) {
	runner := New(Options{
		ManifestPath: filepath.Join(t.TempDir(), "missing.toml"),
		OutputDir:    "types",
		Fs:           afero.NewMemMapFs(),
	})

	err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.IsManifestParseError(err))
}
