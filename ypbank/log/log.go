package log

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Logger is the structured logging interface accepted by file helpers and
// executables.
type Logger interface {
	Log(ctx context.Context, level Level, msg string, fields ...Field)
	With(fields ...Field) Logger
	WithGroup(name string) Logger
	Enabled(level Level) bool
	Sync(ctx context.Context) error
}

// Level is a verbosity ceiling: a logger at LevelInfo writes Error, Warn and
// Info entries and drops Debug. Lower values are more severe.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ErrInvalidLevel is returned by ParseLevel for names it does not know.
var ErrInvalidLevel = errors.New("invalid log level")

var levelNames = map[Level]string{
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
}

func (level Level) String() string {
	if name, ok := levelNames[level]; ok {
		return name
	}

	return "unknown"
}

// ParseLevel resolves a level name, ignoring case and surrounding spaces.
// "warning" is accepted for LevelWarn.
func ParseLevel(name string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "warning" {
		return LevelWarn, nil
	}

	for level, levelName := range levelNames {
		if levelName == normalized {
			return level, nil
		}
	}

	return LevelError, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// Field is a key/value attribute attached to a log entry. Transaction
// descriptions are free text and are never logged as fields.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Uint64 creates an unsigned integer field, used for transaction and user ids.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates the conventional `error` field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
