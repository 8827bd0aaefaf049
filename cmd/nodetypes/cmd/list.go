package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/grammarkit/nodetypes/manifest"
	"github.com/grammarkit/nodetypes/registry"
)

// ListCmd prints the registry with resolved tags, without fetching.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry languages and their resolved tags",
	Long: `List every language in the registry with its manifest dependency,
pinned version, and the tag a generation run would fetch.

Languages whose dependency is missing from the manifest are reported
inline; listing never aborts.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"Language", "Dependency", "Version", "Tag"}}
	for _, lang := range registry.Languages() {
		version, err := m.Version(lang.Dependency)
		if err != nil {
			rows = append(rows, []string{lang.Name, lang.Dependency, pterm.Red("missing"), ""})
			continue
		}

		tag, err := registry.Resolve(lang, m)
		if err != nil {
			rows = append(rows, []string{lang.Name, lang.Dependency, version, pterm.Red(err.Error())})
			continue
		}

		rows = append(rows, []string{lang.Name, lang.Dependency, version, tag})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
