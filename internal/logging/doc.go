// Package logging builds the slog loggers used across dvdstream.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Components receive child loggers via
// NewComponentLogger so every record carries a component attribute, and tests
// use NewNop to silence output.
package logging
