package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grammarkit/nodetypes/internal/version"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Println(info.String())
		fmt.Printf("  go version: %s\n", info.GoVersion)
		fmt.Printf("  platform:   %s\n", info.Platform)
	},
}
