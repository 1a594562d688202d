// Package cmd provides the root command and CLI setup for tsguard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tsguard.dev/pkg/tsguard/internal/adapter"
	"tsguard.dev/pkg/tsguard/internal/controller"
	"tsguard.dev/pkg/tsguard/internal/domain"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var syntaxAdapter adapter.SyntaxAdapter
var reportStore adapter.ReportStore
var watcher adapter.Watcher
var linter domain.Linter
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters files by regex.
var excludePatterns []string

// ignorePatterns is a root-level flag that filters files by glob.
var ignorePatterns []string

var tuiFlag bool
var verboseFlag bool
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, false)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	syntaxAdapter = adapter.NewTreeSitterAdapter()
	reportStore = adapter.NewReportStore()
	watcher = adapter.NewFSNotifyWatcher(0)
	linter = domain.NewLinter(syntaxAdapter, fsAdapter)
	workflow = newWorkflow(ui)
}

func newWorkflow(out controller.UI) domain.Workflow {
	return domain.NewWorkflow(fsAdapter, reportStore, watcher, out, linter)
}

// workflowFor returns the shared workflow, or one rendering through the TUI
// when it was requested and stdout is a terminal.
func workflowFor(cmd *cobra.Command) domain.Workflow {
	if viper.GetBool(tuiConfigKey) && controller.IsTTY(os.Stdout) {
		return newWorkflow(controller.NewUI(cmd, true))
	}

	return workflow
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./test   scan multiple directories (non-recursive)
  - ./a.test.ts    lint a single file`

const rootLongDescription = `tsguard is a linter for TypeScript and JavaScript projects. It forbids test
doubles (mocks, spies, stubs, fakes) in test files and requires relative imports
to spell out the .ts extension. Both rules are auto-fixable.

` + pathPatternsHelp

const lintLongDescription = `Lint the given paths (default: ./...).

Exits with status 1 when problems remain.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tsguard",
		Short: "TypeScript test-double and import-extension linter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringArrayVar(&ignorePatterns, ignoreFlagName, nil, "ignore files matching glob, e.g. '**/*.d.ts' (can be repeated)")
	bindFlagToConfig(flags.Lookup(ignoreFlagName), ignoreConfigKey)

	flags.BoolVar(&tuiFlag, tuiFlagName, defaultTUI, "browse results in an interactive terminal UI")
	bindFlagToConfig(flags.Lookup(tuiFlagName), tuiConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
