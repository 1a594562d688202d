package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"tsguard.dev/pkg/tsguard/internal/domain/rules"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the tsguard build version, the Go version it was built with and the bundled rules.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := "unknown", "unknown"
			if info, ok := debug.ReadBuildInfo(); ok {
				goVersion = info.GoVersion
				if info.Main.Version != "" {
					version = info.Main.Version
				}
			}

			cmd.Println("tsguard version\t", version)
			cmd.Println("go version\t", goVersion)
			cmd.Println("rules\t\t", strings.Join(rules.IDs(), ", "))
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
