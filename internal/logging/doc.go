// Package logging assembles structured slog loggers used across nasutil.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small helpers so components tag their lines with a
// component name, queued URL, or run ID. Logs go to stderr (and optionally a
// file) so stdout stays reserved for command output such as `list`.
//
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
