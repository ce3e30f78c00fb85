// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used across the import pipeline.
//
// # Safety
//
// Using a private, unexported type for keys prevents collisions with third-party
// packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRunID is the context key for the identifier of the current import run.
	KeyRunID key = "run_id"

	// KeyFile is the context key for the source file currently being imported.
	KeyFile key = "file"

	// KeyLogger is the context key for the per-run [*log/slog.Logger].
	KeyLogger key = "logger"
)
