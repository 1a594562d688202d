package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tsguard.dev/pkg/tsguard/internal/domain"
	"tsguard.dev/pkg/tsguard/internal/domain/rules"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// errNoRulesEnabled is returned when configuration disables every rule.
var errNoRulesEnabled = errors.New("no rules enabled")

// lintCmd represents the lint command.
var lintCmd = newLintCmd()

type lintFlags struct {
	fix      bool
	diff     bool
	watch    bool
	parallel int
	rules    []string
	report   string
}

func newLintCmd() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:          "lint [paths...]",
		Short:        "Lint TypeScript and JavaScript sources",
		Long:         lintLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleSet, err := buildRules(flags.rules)
			if err != nil {
				return err
			}

			lintArgs := domain.LintArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Ignore:  viper.GetStringSlice(ignoreConfigKey),
				Rules:   ruleSet,
				Fix:     flags.fix,
				Diff:    flags.diff,
				Threads: viper.GetInt(lintParallelConfigKey),
				Report:  m.Path(viper.GetString(lintReportConfigKey)),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			wf := workflowFor(cmd)

			if flags.watch {
				return wf.Watch(ctx, lintArgs)
			}

			_, err = wf.Lint(ctx, lintArgs)
			if errors.Is(err, domain.ErrViolationsFound) {
				// The summary already told the user; only the exit status is left.
				cmd.SilenceErrors = true
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&flags.fix, lintFixFlagName, false, "apply fixes and write files in place")
	cmd.Flags().BoolVar(&flags.diff, lintDiffFlagName, false, "print a unified diff of the fixes (without --fix nothing is written)")
	cmd.Flags().BoolVar(&flags.watch, lintWatchFlagName, false, "re-lint files as they change")
	cmd.Flags().StringArrayVar(&flags.rules, lintRuleFlagName, nil, "run only the named rule (can be repeated)")

	cmd.Flags().IntVarP(&flags.parallel, lintParallelFlagName, "p", defaultLintParallel, "number of files linted in parallel (0 = one per CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(lintParallelFlagName), lintParallelConfigKey)

	cmd.Flags().StringVar(&flags.report, lintReportFlagName, "", "save results as a YAML report at this path")
	bindFlagToConfig(cmd.Flags().Lookup(lintReportFlagName), lintReportConfigKey)

	return cmd
}

// buildRules instantiates the selected rules, or every enabled rule when
// none are selected.
func buildRules(selected []string) ([]rules.Rule, error) {
	ids := selected
	if len(ids) == 0 {
		for _, id := range rules.IDs() {
			if viper.GetBool(ruleEnabledKey(id)) {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return nil, errNoRulesEnabled
	}

	opts := rules.Options{
		Extension:     viper.GetString(importExtensionConfigKey),
		BannedModules: viper.GetStringSlice(bannedModulesConfigKey),
	}

	ruleSet, err := rules.Build(ids, opts)
	if err != nil {
		return nil, fmt.Errorf("building rules: %w", err)
	}

	slog.Debug("Rules selected", "rules", ids)

	return ruleSet, nil
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
