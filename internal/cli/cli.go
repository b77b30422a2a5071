// Package cli holds the bootstrap shared by the ypbank executables.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LerianStudio/lib-ypbank/ypbank"
	"github.com/LerianStudio/lib-ypbank/ypbank/format"
	"github.com/LerianStudio/lib-ypbank/ypbank/log"
	yzap "github.com/LerianStudio/lib-ypbank/ypbank/zap"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelEnv overrides the default of the --log-level flag.
	LogLevelEnv = "LOG_LEVEL"
	// EnvironmentEnv selects the zap encoder profile.
	EnvironmentEnv = "ENV_NAME"

	defaultLogLevel = "error"
)

// AddLogLevelFlag registers --log-level on cmd, bound to target.
func AddLogLevelFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "log-level", ypbank.GetenvOrDefault(LogLevelEnv, defaultLogLevel),
		"log verbosity written to stderr (debug, info, warn, error)")
}

// AddFormatFlag registers a format name flag on cmd, bound to target.
func AddFormatFlag(cmd *cobra.Command, target *string, name, usage string) {
	cmd.Flags().StringVar(target, name, format.DefaultName, fmt.Sprintf("%s (%s)", usage, strings.Join(format.Names(), "|")))
}

// ParseFormat resolves the value of the named format flag.
func ParseFormat(flag, value string) (format.Format, error) {
	f, err := format.Parse(value)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", flag, err)
	}

	return f, nil
}

var newTracerProvider = func() *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider()
}

// Run is one execution of an executable: its logger, tracer provider and
// root span.
type Run struct {
	provider *sdktrace.TracerProvider
	span     trace.Span
}

// Start validates level, builds the run logger and opens the root span. The
// returned context carries the logger, a fresh run id and the span. The zap
// logger writes JSON to stderr; if it cannot be built a plain logger is used
// instead.
func Start(ctx context.Context, name, level string, stderr io.Writer, attrs ...attribute.KeyValue) (context.Context, *Run, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return ctx, nil, fmt.Errorf("--log-level: %w", err)
	}

	var logger log.Logger

	zl, err := yzap.New(yzap.Config{
		Environment:     yzap.Environment(ypbank.GetenvOrDefault(EnvironmentEnv, string(yzap.EnvironmentProduction))),
		Level:           lvl.String(),
		OTelLibraryName: name,
		Output:          zapcore.AddSync(stderr),
	})
	if err != nil {
		fallback := log.NewGoLogger(stderr, lvl)
		fallback.Log(ctx, log.LevelWarn, "falling back to plain logger", log.Err(err))

		logger = fallback
	} else {
		logger = zl
	}

	runID := ypbank.NewRunID()

	provider := newTracerProvider()
	ctx, span := provider.Tracer(name).Start(ctx, name,
		trace.WithAttributes(append(attrs, attribute.String("ypbank.run_id", runID))...))

	ctx = ypbank.ContextWithLogger(ctx, logger)
	ctx = ypbank.ContextWithRunID(ctx, runID)

	ypbank.NewLoggerFromContext(ctx).Log(ctx, log.LevelDebug, "run started", log.String("command", name))

	return ctx, &Run{provider: provider, span: span}, nil
}

// Finish records the outcome of the run on its span, ends it and flushes
// the logger. Sync failures on terminals are ignored.
func (r *Run) Finish(ctx context.Context, err error) {
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	} else {
		r.span.SetStatus(codes.Ok, "")
	}

	r.span.End()

	logger := ypbank.NewLoggerFromContext(ctx)

	if shutdownErr := r.provider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		logger.Log(ctx, log.LevelWarn, "tracer shutdown failed", log.Err(shutdownErr))
	}

	_ = logger.Sync(ctx)
}
