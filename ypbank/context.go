package ypbank

import (
	"context"

	"github.com/LerianStudio/lib-ypbank/ypbank/log"
	"github.com/google/uuid"
)

type customContextKey string

// CustomContextKey is the context key used to store CustomContextKeyValue.
var CustomContextKey = customContextKey("ypbank_context")

// CustomContextKeyValue holds the per-run facilities attached to a context.
type CustomContextKeyValue struct {
	RunID  string
	Logger log.Logger
}

// NewRunID returns a fresh identifier for one execution of a tool.
func NewRunID() string {
	return uuid.NewString()
}

// NewLoggerFromContext returns the logger stored in ctx, or a no-op logger.
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if values, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && values.Logger != nil {
		return values.Logger
	}

	return log.NewNop()
}

// ContextWithLogger returns a context carrying logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	values := cloneValues(ctx)
	values.Logger = logger

	return context.WithValue(ctx, CustomContextKey, values)
}

// NewRunIDFromContext returns the run id stored in ctx, or "".
func NewRunIDFromContext(ctx context.Context) string {
	if values, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok {
		return values.RunID
	}

	return ""
}

// ContextWithRunID returns a context carrying runID. If ctx already holds a
// logger, the logger is tagged with a run_id field.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	values := cloneValues(ctx)
	values.RunID = runID

	if values.Logger != nil {
		values.Logger = values.Logger.With(log.String("run_id", runID))
	}

	return context.WithValue(ctx, CustomContextKey, values)
}

// cloneValues copies the stored values so parent contexts are never mutated.
func cloneValues(ctx context.Context) *CustomContextKeyValue {
	values := &CustomContextKeyValue{}
	if existing, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && existing != nil {
		*values = *existing
	}

	return values
}
