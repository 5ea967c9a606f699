// Package logging constructs the slog loggers used across plexnote.
//
// Two output formats are supported: a human-oriented console format used when
// the CLI runs interactively, and a JSON format for log collection. Component
// loggers attach a stable "component" attribute so a single run's lines can be
// grouped per pipeline stage.
package logging
