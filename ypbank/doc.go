// Package ypbank provides the helpers shared by the YPBank executables.
//
// The package includes environment lookups and context helpers that carry a
// logger and a run id through a conversion or comparison.
//
// Typical usage at process start:
//
//	ctx = ypbank.ContextWithLogger(ctx, logger)
//	ctx = ypbank.ContextWithRunID(ctx, ypbank.NewRunID())
//
// Codecs live in the binformat, csvformat and textformat subpackages and do
// not depend on this package.
package ypbank
