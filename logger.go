// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gldevice

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false, so callers skip
// building attributes while no logger is configured.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine,
// including the owner thread.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gldevice and all its sub-packages.
// By default, gldevice produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Example:
//
//	// Trace owner thread activity and disposal drains on stderr.
//	gldevice.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
//
//	// Reuse the application logger, tagged by subsystem.
//	gldevice.SetLogger(slog.Default().With("subsystem", "gldevice"))
//
// Log levels used by gldevice:
//   - [slog.LevelDebug]: owner thread lifecycle, drains, disposal counts
//   - [slog.LevelInfo]: backend selection, device creation and teardown
//   - [slog.LevelWarn]: backend teardown errors
//   - [slog.LevelError]: panics recovered on the owner thread
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by gldevice.
// Sub-packages call this to share the same logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
