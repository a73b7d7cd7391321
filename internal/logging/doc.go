// Package logging wires log/slog with the console and JSON handlers used by
// every inlay command. Console output is the default for interactive runs;
// JSON is available for piping into other tools.
package logging
