// Package format maps user-facing format names to codecs and loads or writes
// whole transaction files with them.
//
// Recognized names are "text", "csv", "bin" and "binary" (case-insensitive).
// There is no auto-detection: callers always name the format.
package format
