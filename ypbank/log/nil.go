package log

import "context"

// NopLogger drops every entry. It is the logger used when callers pass nil.
type NopLogger struct{}

var _ Logger = NopLogger{}

// NewNop returns a NopLogger.
//
//nolint:ireturn
func NewNop() Logger {
	return NopLogger{}
}

func (NopLogger) Log(context.Context, Level, string, ...Field) {}

//nolint:ireturn
func (n NopLogger) With(...Field) Logger { return n }

//nolint:ireturn
func (n NopLogger) WithGroup(string) Logger { return n }

func (NopLogger) Enabled(Level) bool { return false }

func (NopLogger) Sync(context.Context) error { return nil }
