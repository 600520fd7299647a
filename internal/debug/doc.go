// Package debug provides optional structured debug logging.
//
// When the BRICK_DEBUG environment variable is set to a file path, debug
// records are appended to that file as JSON lines, rotated by size.
// Otherwise logging is a no-op.
package debug
