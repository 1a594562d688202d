package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = resolveStartConfig(options).mode

	if s.mode == ModeWatch {
		s.printf("Watching for changes (Ctrl+C to stop)\n")
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayFileResult prints one line per diagnostic of a file.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if result.Err != nil {
		s.printf("%s: error: %v\n", result.Path, result.Err)
		return
	}

	for _, d := range result.Diagnostics {
		s.printf("%s\n", formatDiagnostic(result.Path, d))
	}

	if result.Fixed > 0 {
		s.printf("%s: fixed %s\n", result.Path, plural(result.Fixed, "problem"))
	}
}

// DisplayDiff prints a unified diff as is.
func (s *SimpleUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		return
	}

	if !strings.HasSuffix(diff, "\n") {
		diff += "\n"
	}

	s.printf("%s", diff)
}

// DisplaySummary prints a per-rule table followed by the verdict line.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if summary.Diagnostics > 0 {
		s.printf("\n%s", renderSummaryTable(summary))
	}

	s.printf("%s\n", summaryLine(summary))

	if summary.Fixed > 0 {
		s.printf("Fixed %s\n", plural(summary.Fixed, "problem"))
	}

	if summary.Errors > 0 {
		s.printf("%s could not be linted\n", plural(summary.Errors, "file"))
	}

	return nil
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Problems"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, rc := range sortedRuleCounts(summary) {
		table.Append([]string{rc.rule, strconv.Itoa(rc.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", summary.Files),
		strconv.Itoa(summary.Diagnostics),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
