// Package logger provides levelled logging for the mqc CLI.
// Debug and info messages are printed to stderr only when verbose mode is
// enabled via the --verbose flag, to trace adapter selection. Warnings and
// errors are always printed unless quiet mode is on.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses warnings. Errors are still printed.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(enabled func() bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if enabled() {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

func whenVerbose() bool  { return verbose }
func whenNotQuiet() bool { return !quiet }
func always() bool       { return true }

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(whenVerbose, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(whenVerbose, "[INFO] ", format, args...)
}

// Warn prints a warning unless quiet mode is enabled.
func Warn(format string, args ...any) {
	logf(whenNotQuiet, "[WARN] ", format, args...)
}

// Error always prints an error message.
func Error(format string, args ...any) {
	logf(always, "[ERROR] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
