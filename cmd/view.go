package cmd

import (
	"github.com/spf13/cobra"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view REPORT",
		Short: "View a previously saved lint report",
		Long:  "Display the results stored in a YAML report written by 'tsguard lint --report'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := workflowFor(cmd).View(cmd.Context(), m.Path(args[0]))
			return err
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
