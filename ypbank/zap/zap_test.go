//go:build unit

package zap

import (
	"context"
	"testing"

	"github.com/LerianStudio/lib-ypbank/ypbank"
	logpkg "github.com/LerianStudio/lib-ypbank/ypbank/log"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return &Logger{logger: zap.New(core), atomicLevel: zap.NewAtomicLevelAt(level)}, logs
}

func TestZeroLoggersDoNotPanic(t *testing.T) {
	var nilLogger *Logger

	for _, logger := range []*Logger{nilLogger, {}} {
		assert.NotPanics(t, func() {
			logger.Log(context.Background(), logpkg.LevelError, "dropped")
		})
		assert.False(t, logger.Enabled(logpkg.LevelError))
	}

	assert.NotNil(t, (&Logger{}).Raw())
}

func TestLogLevelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    logpkg.Level
		expected zapcore.Level
	}{
		{logpkg.LevelDebug, zapcore.DebugLevel},
		{logpkg.LevelInfo, zapcore.InfoLevel},
		{logpkg.LevelWarn, zapcore.WarnLevel},
		{logpkg.LevelError, zapcore.ErrorLevel},
		{logpkg.Level(42), zapcore.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()

			logger, logs := observed(zapcore.DebugLevel)
			logger.Log(context.Background(), tt.level, "entry")

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.expected, logs.All()[0].Level)
			assert.Equal(t, tt.expected, logLevelToZap(tt.level))
		})
	}
}

func TestDecodeFailureEntry(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.WarnLevel)

	cause := transaction.NewFormatError("magic", `invalid MAGIC header "YPBX" at record 0`)

	logger.Log(context.Background(), logpkg.LevelInfo, "decoded transactions", logpkg.Int("count", 2))
	logpkg.SafeError(logger, context.Background(), "decode failed", cause, false)

	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "decode failed", entry.Message)
	assert.Equal(t, cause.Error(), entry.ContextMap()["error"])
}

func TestTypedFields(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelWarn, "transactions differ",
		logpkg.Uint64("tx_id", 1001),
		logpkg.Int("index", 0),
		logpkg.Bool("identical", false),
		logpkg.String("format", "csv"),
	)

	cm := logs.All()[0].ContextMap()
	assert.Equal(t, uint64(1001), cm["tx_id"])
	assert.EqualValues(t, 0, cm["index"])
	assert.Equal(t, false, cm["identical"])
	assert.Equal(t, "csv", cm["format"])
}

func TestTraceCorrelation(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	tests := []struct {
		name   string
		ctx    context.Context
		traced bool
	}{
		{name: "span in context", ctx: ctx, traced: true},
		{name: "no span", ctx: context.Background()},
		{name: "nil context"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, logs := observed(zapcore.DebugLevel)

			//nolint:staticcheck // nil context is tolerated
			logger.Log(tt.ctx, logpkg.LevelInfo, "converted")

			cm := logs.All()[0].ContextMap()
			if !tt.traced {
				assert.NotContains(t, cm, "trace_id")
				return
			}

			assert.Equal(t, traceID.String(), cm["trace_id"])
			assert.Equal(t, spanID.String(), cm["span_id"])
		})
	}
}

func TestRunIDFromContextTagsChildOnly(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.DebugLevel)

	ctx := ypbank.ContextWithRunID(ypbank.ContextWithLogger(context.Background(), logger), "run-42")

	ypbank.NewLoggerFromContext(ctx).Log(ctx, logpkg.LevelInfo, "run started")
	logger.Log(ctx, logpkg.LevelInfo, "parent")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-42", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}

func TestWithGroupNestsFields(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.DebugLevel)

	logger.WithGroup("compare").Log(context.Background(), logpkg.LevelInfo, "mismatch", logpkg.Int("index", 3))

	group, ok := logs.All()[0].ContextMap()["compare"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, group["index"])
}

func TestEnabledFollowsCoreLevel(t *testing.T) {
	t.Parallel()

	logger, _ := observed(zapcore.WarnLevel)

	assert.True(t, logger.Enabled(logpkg.LevelError))
	assert.True(t, logger.Enabled(logpkg.LevelWarn))
	assert.False(t, logger.Enabled(logpkg.LevelInfo))
	assert.Equal(t, zapcore.WarnLevel, logger.Level().Level())
}

func TestSyncHonoursCancellation(t *testing.T) {
	t.Parallel()

	logger, _ := observed(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, logger.Sync(ctx), context.Canceled)
	assert.NoError(t, logger.Sync(context.Background()))
}
