// Package controller provides the output adapters that show translation
// progress and reports.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeTranslate StartMode = iota
	ModeList
	ModeView
)

func (s StartMode) title() string {
	switch s {
	case ModeList:
		return "Sources"
	case ModeView:
		return "Saved reports"
	default:
		return "Translation"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithTranslateMode sets the UI to show translation progress.
func WithTranslateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTranslate
	}
}

// WithListMode sets the UI to list sources.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to browse saved reports.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func startConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeTranslate}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// SourceInfo describes one discovered source for the list command.
type SourceInfo struct {
	Path         m.Path
	Bytes        int
	Declarations int
	Diagnostics  int
	Changed      bool
}

// UI defines the interface for showing progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplaySources(ctx context.Context, sources []SourceInfo) error
	DisplayTranslationStarted(ctx context.Context, total int, parallel int)
	DisplayUnitCompleted(ctx context.Context, report m.Report)
	DisplayDiff(ctx context.Context, path m.Path, diff string)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayText(ctx context.Context, text string)
}

// NewUI returns the interactive UI on a terminal and the plain one
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
