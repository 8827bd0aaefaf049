// Package cmd implements the nodetypes CLI.
package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/grammarkit/nodetypes/config"
	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/generate"
	"github.com/grammarkit/nodetypes/logger"
	"github.com/grammarkit/nodetypes/registry"
)

var (
	flagManifest string
	flagOutput   string
	flagLangs    []string
	flagJSON     bool
)

// RootCmd is the nodetypes command. Running it with no subcommand
// regenerates every declaration file.
var RootCmd = &cobra.Command{
	Use:   "nodetypes",
	Short: "Regenerate grammar node-type declaration files",
	Long: `nodetypes regenerates the per-language TypeScript declaration files
that describe each grammar's node types.

For every language in the registry it reads the grammar's pinned version
from the dependency manifest, resolves the source repository tag, fetches
that tag's node-types.json, and rewrites types/<language>.d.ts. Languages
are processed one at a time; the first failure aborts the run.

Examples:
  nodetypes                      # Regenerate all declaration files
  nodetypes --lang rust,go       # Regenerate a subset
  nodetypes --manifest crates/language/Cargo.toml
  nodetypes check                # Verify committed files are current
  nodetypes list                 # Show resolved tags without fetching`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Initialize(flagJSON || cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagManifest, "manifest", "m", "", "Path to the dependency manifest (default: Cargo.toml)")
	RootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit logs as JSON")
	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory for declaration files (default: types)")
	RootCmd.Flags().StringSliceVarP(&flagLangs, "lang", "l", nil, "Languages to regenerate (default: all)")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(ListCmd)
	RootCmd.AddCommand(VersionCmd)
}

// resolveOptions merges config with command-line overrides.
func resolveOptions() (generate.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return generate.Options{}, err
	}

	opts := generate.Options{
		ManifestPath: cfg.Manifest,
		OutputDir:    cfg.Output,
		Timeout:      cfg.Timeout(),
	}
	if flagManifest != "" {
		opts.ManifestPath = flagManifest
	}
	if flagOutput != "" {
		opts.OutputDir = flagOutput
	}

	if len(flagLangs) > 0 {
		langs, err := selectLanguages(flagLangs)
		if err != nil {
			return generate.Options{}, err
		}
		opts.Languages = langs
	}

	return opts, nil
}

// selectLanguages maps --lang values to registry entries, preserving
// registry order.
func selectLanguages(names []string) ([]registry.Language, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		lang, ok := registry.Lookup(name)
		if !ok {
			return nil, errors.Newf("unknown language %q", name)
		}
		wanted[lang.Name] = true
	}

	var langs []registry.Language
	for _, lang := range registry.Languages() {
		if wanted[lang.Name] {
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}
	opts.OnGenerated = func(lang, path string) {
		pterm.Printf("✓ Generated %s\n", pterm.Green(path))
	}

	if err := generate.New(opts).Run(); err != nil {
		return err
	}

	pterm.Printf("✓ Node types are up to date in %s\n", opts.OutputDir)
	return nil
}
