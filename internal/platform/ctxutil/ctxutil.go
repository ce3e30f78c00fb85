// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/novol/internal/platform/ctxkey"
)

// # Run Tracing

// WithRunID returns a new context with the import run ID attached.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRunID, id)
}

// GetRunID retrieves the run ID from the context.
// Returns an empty string if not found.
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRunID).(string)
	return id
}

// WithFile returns a new context tagged with the file being imported.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyFile, path)
}

// GetFile retrieves the file path from the context.
func GetFile(ctx context.Context) string {
	path, _ := ctx.Value(ctxkey.KeyFile).(string)
	return path
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
