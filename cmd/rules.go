package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tsguard.dev/pkg/tsguard/internal/domain/rules"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Long:  "List every registered rule with its type, fixability and whether the current configuration enables it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Rule", "Type", "Fixable", "Enabled", "Description"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			for _, rule := range rules.All() {
				meta := rule.Meta()
				table.Append([]string{
					rule.ID(),
					meta.Type,
					strconv.FormatBool(meta.Fixable),
					strconv.FormatBool(viper.GetBool(ruleEnabledKey(rule.ID()))),
					meta.Description,
				})
			}

			table.Render()
		},
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
