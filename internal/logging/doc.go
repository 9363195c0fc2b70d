// Package logging builds slog loggers for avsync.
//
// Two output formats are supported: a console handler that writes one
// key=value line per record (color-free, TTY-aware timestamp precision), and
// a JSON handler for machine consumption. Loggers write to stdout and,
// when a log directory is configured, to avsync.log inside it.
package logging
