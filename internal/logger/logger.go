// Package logger provides the structured log sink injected into the
// resolution pipeline. Diagnostics go through here so the pipeline itself
// stays a pure function of its inputs.
package logger

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

func prefix() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#2563EB")).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	return style.Render("klon")
}

// New creates a logger writing to stderr. Debug mode enables debug-level
// output with caller and timestamp reporting.
func New(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
		Prefix:          prefix(),
	})

	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}

	// Plain output when stderr is not a terminal.
	if term.IsTerminal(int(os.Stderr.Fd())) {
		l.SetColorProfile(termenv.TrueColor)
	} else {
		l.SetColorProfile(termenv.Ascii)
	}

	return l
}

// Discard returns a logger that drops everything; used in tests.
func Discard() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel + 1)
	return l
}
