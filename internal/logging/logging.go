package logging

import (
	"io"
	"log/slog"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Setup configures the debug logger. When verbose is false all debug
// output is discarded. When jsonOutput is true logs are emitted as JSON,
// otherwise as logfmt-style text.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if !verbose {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if jsonOutput {
		logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Debug logs a debug message with structured key/value attributes.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an informational message with structured attributes.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning with structured attributes.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error with structured attributes.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
