package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tsguard.dev/pkg/tsguard/internal/domain/rules"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default tsguard.yaml configuration file",
		Long: `Create a tsguard.yaml in the current working directory populated with the
current defaults, including the enable switch and options of every rule.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s with rules: %s\n", targetPath, strings.Join(rules.IDs(), ", "))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
