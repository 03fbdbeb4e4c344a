// Package logging assembles structured slog loggers and formatting helpers used
// across skelreview.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so review code can tag log lines
// with the session identifier and action class. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Operator-facing diagnostics during review (skipped clips, overlay
// discrepancies, ledger saves) are ordinary log records; use WarnWithContext
// so each carries an event_type, error_hint and impact.
package logging
