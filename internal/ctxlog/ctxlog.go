// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ctxlog carries a *slog.Logger through context.Context.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx that carries logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default() when ctx
// is nil or carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, _ := ctx.Value(ctxKey{}).(*slog.Logger); logger != nil {
		return logger
	}
	return slog.Default()
}

// With derives a logger with extra attributes from the one in ctx and
// returns both the derived logger and a context carrying it.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}
