package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing status output, separate from the structured debug logging.
// Informational and success lines go to stdout so they can be piped;
// warnings and errors go to stderr.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output, primarily for tests.
func SetUserOutput(out, err io.Writer) {
	userOut = out
	userErr = err
}

// ResetUserOutput restores user-facing output to stdout/stderr.
func ResetUserOutput() {
	userOut = os.Stdout
	userErr = os.Stderr
}

func userPrintf(w io.Writer, prefix, format string, args ...any) {
	fmt.Fprintf(w, prefix+" "+format+"\n", args...)
}

// UserInfo prints an info line to stdout.
func UserInfo(format string, args ...any) {
	userPrintf(userOut, "ℹ", format, args...)
}

// UserSuccess prints a success line to stdout.
func UserSuccess(format string, args ...any) {
	userPrintf(userOut, "✓", format, args...)
}

// UserWarning prints a warning line to stderr.
func UserWarning(format string, args ...any) {
	userPrintf(userErr, "⚠", format, args...)
}

// UserError prints an error line to stderr.
func UserError(format string, args ...any) {
	userPrintf(userErr, "✗", format, args...)
}
