// Package logging provides structured logging utilities for kataci.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record, and
// LOG_LEVEL environment based verbosity. Debug level adds source
// location tracking.
//
// Typical usage, early in main():
//
//	logging.SetDefaultStructuredLogger("kataci", version)
//	slog.Info("starting", "namespace", ns)
//
// An explicit level (e.g. from a --log-level flag) takes precedence
// over LOG_LEVEL:
//
//	logging.SetDefaultStructuredLoggerWithLevel("kataci", version, "debug")
package logging
