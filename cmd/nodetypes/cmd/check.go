package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/grammarkit/nodetypes/dts"
	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/generate"
	"github.com/grammarkit/nodetypes/registry"
)

// CheckCmd verifies that committed declaration files are current.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if declaration files are up to date",
	Long: `Check if the committed declaration files match what a fresh run
would generate.

Files are regenerated into a temporary directory and byte-compared with
the committed output directory.

Exit codes:
  0 - Declaration files are up to date
  1 - Declaration files are out of date (stale files listed)
  2 - Error while regenerating or comparing`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	stale, err := checkDeclarations()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if len(stale) == 0 {
		pterm.Println("✓ Declaration files are up to date")
		return nil
	}

	pterm.Println("✗ Declaration files are out of date.")
	for _, file := range stale {
		pterm.Printf("  - %s\n", file)
	}
	return errors.New("declaration files are out of date - run 'nodetypes' to update")
}

// checkDeclarations regenerates into a temp directory and returns the
// names of files that differ from (or are missing in) the committed
// output directory.
func checkDeclarations() ([]string, error) {
	opts, err := resolveOptions()
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "nodetypes-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	committedDir := opts.OutputDir
	opts.OutputDir = tempDir
	if err := generate.New(opts).Run(); err != nil {
		return nil, err
	}

	languages := opts.Languages
	if languages == nil {
		languages = registry.Languages()
	}

	var stale []string
	for _, lang := range languages {
		name := dts.FileName(lang.Name)

		fresh, err := os.ReadFile(filepath.Join(tempDir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "reading regenerated %s", name)
		}

		committed, err := os.ReadFile(filepath.Join(committedDir, name))
		if err != nil {
			if os.IsNotExist(err) {
				stale = append(stale, name)
				continue
			}
			return nil, errors.Wrapf(err, "reading committed %s", name)
		}

		if !bytes.Equal(fresh, committed) {
			stale = append(stale, name)
		}
	}

	return stale, nil
}
