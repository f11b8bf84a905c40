// Package logging provides logging utilities for snowkit.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("acquiring connection", "account", account, "auth", mode)
//	logging.Warn("query retry", "attempt", attempt, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Rendering service specification for %s...", name)
//	logging.UserSuccess("Service %s is ready", name)
//	logging.UserWarning("Compute pool %s is suspended", pool)
//	logging.UserError("Failed to push image: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
