// Package controller provides output adapters for displaying lint results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeLint StartMode = iota
	ModeFix
	ModeWatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithLintMode sets the UI to report-only mode.
func WithLintMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeLint
	}
}

// WithFixMode sets the UI to fix mode.
func WithFixMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFix
	}
}

// WithWatchMode sets the UI to watch mode; output is never held back for
// interactive browsing.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

func resolveStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeLint}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying lint results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplayDiff(ctx context.Context, path m.Path, diff string)
	DisplaySummary(ctx context.Context, summary m.Summary) error
}

// NewUI returns the interactive TUI when useTUI is set, the plain UI otherwise.
func NewUI(cmd *cobra.Command, useTUI bool) UI {
	if useTUI {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of w when it is a terminal.
func terminalSize(w io.Writer) (int, int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}

	return width, height, true
}
