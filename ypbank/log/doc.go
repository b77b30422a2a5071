// Package log defines the logging interface used by the YPBank packages and
// executables, plus typed logging fields.
//
// Adapters (such as the zap package) implement Logger so the codecs' callers
// can keep logging calls consistent across backends. GoLogger is a small
// standard-library backend and NopLogger discards everything.
package log
