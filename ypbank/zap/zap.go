package zap

import (
	"context"

	logpkg "github.com/LerianStudio/lib-ypbank/ypbank/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements log.Logger on top of a zap core. The zero value and a nil
// *Logger drop every entry.
type Logger struct {
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
}

var _ logpkg.Logger = (*Logger)(nil)

var zapLevels = map[logpkg.Level]zapcore.Level{
	logpkg.LevelDebug: zapcore.DebugLevel,
	logpkg.LevelInfo:  zapcore.InfoLevel,
	logpkg.LevelWarn:  zapcore.WarnLevel,
	logpkg.LevelError: zapcore.ErrorLevel,
}

func (l *Logger) must() *zap.Logger {
	if l == nil || l.logger == nil {
		return zap.NewNop()
	}

	return l.logger
}

func (l *Logger) derive(z *zap.Logger) *Logger {
	return &Logger{logger: z, atomicLevel: l.Level()}
}

// Log writes msg at level. Fields are only converted when the level is
// enabled. An active span in ctx adds trace_id and span_id.
func (l *Logger) Log(ctx context.Context, level logpkg.Level, msg string, fields ...logpkg.Field) {
	entry := l.must().Check(logLevelToZap(level), msg)
	if entry == nil {
		return
	}

	zapFields := logFieldsToZap(fields)

	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			zapFields = append(zapFields,
				zap.Stringer("trace_id", sc.TraceID()),
				zap.Stringer("span_id", sc.SpanID()),
			)
		}
	}

	entry.Write(zapFields...)
}

//nolint:ireturn
func (l *Logger) With(fields ...logpkg.Field) logpkg.Logger {
	return l.derive(l.must().With(logFieldsToZap(fields)...))
}

// WithGroup nests the fields of later entries under name.
//
//nolint:ireturn
func (l *Logger) WithGroup(name string) logpkg.Logger {
	return l.derive(l.must().With(zap.Namespace(name)))
}

func (l *Logger) Enabled(level logpkg.Level) bool {
	return l.must().Core().Enabled(logLevelToZap(level))
}

// Sync flushes the core. It gives up when ctx is done first.
func (l *Logger) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- l.must().Sync() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Raw exposes the zap logger for callers that need zap directly.
func (l *Logger) Raw() *zap.Logger {
	return l.must()
}

// Level returns the level handle shared by the logger and its children.
func (l *Logger) Level() zap.AtomicLevel {
	if l == nil {
		return zap.AtomicLevel{}
	}

	return l.atomicLevel
}

// logLevelToZap maps unknown levels to info.
func logLevelToZap(level logpkg.Level) zapcore.Level {
	if zl, ok := zapLevels[level]; ok {
		return zl
	}

	return zapcore.InfoLevel
}

func logFieldsToZap(fields []logpkg.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))

	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		case string:
			out = append(out, zap.String(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case uint64:
			out = append(out, zap.Uint64(f.Key, v))
		case bool:
			out = append(out, zap.Bool(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}

	return out
}
