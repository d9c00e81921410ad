// Package logging assembles structured slog loggers and formatting helpers
// used across autosort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a component-tagging helper so every subsystem emits
// log lines with the same shape. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the system.
package logging
