// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

// Package xlog centralizes the structured-logging conventions shared by
// every oidreg package: a component-scoped *slog.Logger and a below-debug
// trace level for the registry's hottest paths (load/split/splice), which
// are too chatty to enable outside of focused debugging.
package xlog

import (
	"context"
	"log/slog"
)

// LevelTrace is one notch below slog.LevelDebug, for per-node detail that
// would otherwise drown out ordinary debug logging. Enable it with
// &slog.HandlerOptions{Level: LevelTrace}.
const LevelTrace = slog.Level(-8)

// Component returns logger scoped with a "component" attribute; if
// logger is nil, slog.Default() is scoped the same way instead.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("component", name))
}

// Enabled reports whether logger would actually emit at level, so callers
// can skip building expensive attribute slices on the hot path.
func Enabled(logger *slog.Logger, level slog.Level) bool {
	if logger == nil {
		return false
	}
	return logger.Enabled(context.Background(), level)
}
