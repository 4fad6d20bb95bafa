// Package filesink writes messages to a size-rotated log file.
//
// Rotation, backup retention and compression are delegated to lumberjack;
// the sink adds a bufio layer in front of it so each message costs a
// memory copy until Flush or Close. Use RotateInterval for time-based
// rotation on top of the size limit.
package filesink
