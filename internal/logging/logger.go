// Package logging provides the leveled logger handed to every service.
// Verbosity is decided once at startup from the command-line flags; errors
// and warnings always print, informational output only when verbose.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

// Logger writes styled, leveled output to a pair of writers.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// New creates a logger writing to stdout/stderr.
func New(verbose bool) *Logger {
	return NewWithWriters(os.Stdout, os.Stderr, verbose)
}

// NewWithWriters creates a logger with explicit sinks. Tests use this to
// capture output.
func NewWithWriters(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{out: out, errOut: errOut, verbose: verbose}
}

// Verbose reports whether informational output is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) write(w io.Writer, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, line)
}

// Info logs progress detail; printed only in verbose mode.
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.out, ui.FormatInfo(fmt.Sprintf(format, args...)))
}

// Success logs a completed step; printed only in verbose mode.
func (l *Logger) Success(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.out, ui.FormatSuccess(fmt.Sprintf(format, args...)))
}

// Warn logs a non-fatal problem; always printed.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(l.out, ui.FormatWarning(fmt.Sprintf(format, args...)))
}

// Error logs a failure; always printed, to the error sink.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(l.errOut, ui.FormatError(fmt.Sprintf(format, args...)))
}

// Debug logs low-level detail; printed only in verbose mode, muted.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.out, ui.FormatMuted(fmt.Sprintf(format, args...)))
}
