// Package generate drives the node-type regeneration pipeline.
package generate

import (
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/grammarkit/nodetypes/dts"
	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/fetch"
	"github.com/grammarkit/nodetypes/logger"
	"github.com/grammarkit/nodetypes/manifest"
	"github.com/grammarkit/nodetypes/registry"
)

// Options configures a generation run.
type Options struct {
	// ManifestPath is the dependency manifest to read versions from.
	ManifestPath string

	// OutputDir receives one <language>.d.ts file per language.
	OutputDir string

	// Timeout bounds each schema download. Zero means no deadline.
	Timeout time.Duration

	// Languages to process, in order. Defaults to the full registry.
	Languages []registry.Language

	// Fs is the target filesystem. Defaults to the host filesystem.
	Fs afero.Fs

	// OnGenerated, when set, is called after each file is written.
	OnGenerated func(lang, path string)
}

// Runner executes the pipeline for a set of languages.
type Runner struct {
	opts Options
}

// New creates a Runner. Option defaults are filled in here.
func New(opts Options) *Runner {
	if opts.Languages == nil {
		opts.Languages = registry.Languages()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &Runner{opts: opts}
}

// log reads the global logger at call time, so a Runner built before
// logger.Initialize still logs through the configured logger.
func (r *Runner) log() *zap.SugaredLogger {
	return logger.Logger
}

// Run regenerates declaration files for every configured language, one
// at a time, in order. The first failure aborts the run; files already
// written stay on disk.
func (r *Runner) Run() error {
	m, err := manifest.Load(r.opts.ManifestPath)
	if err != nil {
		return err
	}

	fetcher := fetch.New(r.opts.Timeout)
	emitter := dts.NewWithFs(r.opts.Fs, r.opts.OutputDir)

	for _, lang := range r.opts.Languages {
		if err := r.generateLanguage(lang, m, fetcher, emitter); err != nil {
			r.log().Errorf("Error while generating node types for %s: %v", lang.Name, err)
			return errors.Wrapf(err, "generating node types for %s", lang.Name)
		}
	}
	return nil
}

func (r *Runner) generateLanguage(lang registry.Language, m *manifest.Manifest, fetcher *fetch.Fetcher, emitter *dts.Emitter) error {
	tag, err := registry.Resolve(lang, m)
	if err != nil {
		return err
	}

	url, err := fetch.BuildURL(lang.Template, tag)
	if err != nil {
		return err
	}

	r.log().Debugw("Fetching node types",
		"language", lang.Name,
		"tag", tag,
		"url", url,
	)

	nodeTypes, err := fetcher.Fetch(lang.Name, url)
	if err != nil {
		return err
	}

	path, err := emitter.Emit(lang.Name, nodeTypes)
	if err != nil {
		return err
	}

	r.log().Debugw("Wrote declaration file",
		"language", lang.Name,
		"path", path,
		"nodeTypes", len(nodeTypes),
	)

	if r.opts.OnGenerated != nil {
		r.opts.OnGenerated(lang.Name, path)
	}
	return nil
}
