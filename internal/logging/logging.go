// Package logging builds the leveled console logger shared by the CLI and TUI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const DefaultLevel = "warn"

// Prefix tags every line written by the board.
const Prefix = "board"

// ValidLevel reports whether level is one charmbracelet/log understands.
func ValidLevel(level string) bool {
	level = strings.TrimSpace(level)
	if level == "" {
		return true
	}
	_, err := log.ParseLevel(level)
	return err == nil
}

// New returns a text logger writing to w. Unknown levels fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil || strings.TrimSpace(level) == "" {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: lvl <= log.DebugLevel,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// OpenFile appends to <dir>/board.log. The TUI logs there so output never
// lands on the alternate screen.
func OpenFile(dir, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "board.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := New(f, level)
	l.SetReportTimestamp(true)
	return l, f, nil
}
