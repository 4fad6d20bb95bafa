// Package consolesink writes messages to a terminal or any io.Writer
// (default: os.Stdout).
//
// Color is decided once, when the sink is created: ColorAuto enables it
// only when the writer is a terminal and NO_COLOR is not set. A colored
// sink renders records with its own colored TextFormatter unless an
// explicit Formatter is configured; an uncolored sink without a Formatter
// uses whatever the logger formats.
//
// In-place records (a leading carriage return and no newline) overwrite
// the current line. Without color the sink pads a shorter line over the
// longer one, and a regular line following progress output starts on a
// new line.
//
// Writes are serialized with a mutex, so lines from concurrent goroutines
// never interleave. On Windows, *os.File writers are wrapped with
// go-colorable so ANSI sequences render.
package consolesink
