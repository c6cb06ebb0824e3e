package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/tui"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ConsoleLogger writes severity-prefixed lines to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	color   bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to stdout.
// Color is enabled only when stdout is a terminal and NO_COLOR is unset.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stdout, verbose, tui.ColorEnabled(os.Stdout))
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to out.
func NewConsoleLoggerWithWriter(out io.Writer, verbose, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		verbose: verbose,
		color:   color,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(tui.MutedStyle, "[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(tui.InfoStyle, "", format, args)
}

// Success logs a completed step.
func (l *ConsoleLogger) Success(format string, args ...interface{}) {
	l.write(tui.SuccessStyle, tui.SymbolCheck+" ", format, args)
}

// Warn logs a recoverable problem.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write(tui.WarningStyle, tui.SymbolWarning+" ", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(tui.ErrorStyle, tui.SymbolCross+" ", format, args)
}

func (l *ConsoleLogger) write(style lipgloss.Style, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	line := prefix + msg
	if l.color {
		line = style.Render(line)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

var _ shopkit.Logger = (*ConsoleLogger)(nil)
