// Package controller provides output adapters for displaying trim results.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/mouse-blink/rtrim/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	verbose bool
}

// WithVerbose makes the UI list skipped and unchanged files too.
func WithVerbose(verbose bool) StartOption {
	return func(c *StartConfig) {
		c.verbose = verbose
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how a run and its results are presented.
// Implementations can use different output methods (simple text, styled TTY, etc).
// DisplayOutcome may be called from several goroutines, callers serialize it.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayRunInfo(files int, threads int, dryRun bool)
	DisplayOutcome(outcome m.Outcome)
	DisplaySummary(summary m.Summary)
	DisplayReport(report m.Report) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (lipgloss, Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is an interactive terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int on supported platforms
}
