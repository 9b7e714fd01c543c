// Package output renders user-facing results for the certops CLI.
//
// The primary structured result (certificate records as JSON) goes to
// stdout; colored status messages and the renewal summary go to
// stderr so they never corrupt piped JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// stdout and stderr are swappable for tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetWriters redirects the output streams. Useful for testing.
func SetWriters(out, err io.Writer) {
	stdout = out
	stderr = err
}

// ResetWriters restores the default output streams.
func ResetWriters() {
	stdout = os.Stdout
	stderr = os.Stderr
}

// JSON writes data as JSON to stdout. A width of zero or less emits
// compact single-line JSON; otherwise values are indented by width
// spaces per level.
func JSON(data interface{}, width int) error {
	encoder := json.NewEncoder(stdout)
	if width > 0 {
		encoder.SetIndent("", strings.Repeat(" ", width))
	}
	return encoder.Encode(data)
}

// Diag writes a line to the diagnostic channel (stderr). The renewal
// summary goes through here so structured consumers of stdout never
// see it.
func Diag(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, format+"\n", args...)
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(stderr, "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(stderr, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(stderr, "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(stderr, "→ "+format+"\n", args...)
}
