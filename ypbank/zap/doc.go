// Package zap adapts go.uber.org/zap to the ypbank log.Logger interface.
//
// The executables log JSON to stderr through this adapter so that stdout
// only ever carries converted transaction data or comparison reports.
package zap
