package log

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"
)

// GoLogger is a Logger backed by the standard library log package.
//
// Messages and string field values are sanitized to prevent log injection (CWE-117).
type GoLogger struct {
	Level Level

	mu     *sync.Mutex
	out    *stdlog.Logger
	fields []Field
	group  string
}

// Compile-time assertion: *GoLogger implements Logger.
var _ Logger = (*GoLogger)(nil)

// NewGoLogger returns a logger writing "[level] message key=value" lines to w.
func NewGoLogger(w io.Writer, level Level) *GoLogger {
	return &GoLogger{
		Level: level,
		mu:    &sync.Mutex{},
		out:   stdlog.New(w, "", stdlog.LstdFlags),
	}
}

// Log writes msg when level is enabled.
func (l *GoLogger) Log(_ context.Context, level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	line := l.hydrate(level, msg, fields)

	if l.out == nil {
		stdlog.Print(line)
		return
	}

	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}

	l.out.Print(line)
}

// With returns a child logger that adds fields to every entry.
//
//nolint:ireturn
func (l *GoLogger) With(fields ...Field) Logger {
	if l == nil {
		return &GoLogger{}
	}

	child := l.clone()
	child.fields = append(child.fields, l.qualify(fields)...)

	return child
}

// WithGroup returns a child logger that prefixes subsequent field keys with name.
//
//nolint:ireturn
func (l *GoLogger) WithGroup(name string) Logger {
	if l == nil {
		return &GoLogger{}
	}

	child := l.clone()
	if child.group == "" {
		child.group = name
	} else {
		child.group = child.group + "." + name
	}

	return child
}

// Enabled reports whether entries at level are written.
func (l *GoLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}

	return l.Level >= level
}

// Sync is a no-op: every entry is written synchronously.
func (l *GoLogger) Sync(_ context.Context) error { return nil }

func (l *GoLogger) clone() *GoLogger {
	return &GoLogger{
		Level:  l.Level,
		mu:     l.mu,
		out:    l.out,
		fields: append([]Field(nil), l.fields...),
		group:  l.group,
	}
}

func (l *GoLogger) qualify(fields []Field) []Field {
	if l.group == "" {
		return fields
	}

	qualified := make([]Field, len(fields))
	for i, f := range fields {
		qualified[i] = Field{Key: l.group + "." + f.Key, Value: f.Value}
	}

	return qualified
}

func (l *GoLogger) hydrate(level Level, msg string, fields []Field) string {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(sanitizeLogString(msg))

	all := append(append([]Field(nil), l.fields...), l.qualify(fields)...)
	for _, f := range all {
		b.WriteString(" ")
		b.WriteString(sanitizeLogString(f.Key))
		b.WriteString("=")
		b.WriteString(sanitizeLogString(fmt.Sprint(f.Value)))
	}

	return b.String()
}
