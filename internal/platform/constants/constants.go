// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the importer.

Categories:

  - Metadata: binary name and version.
  - Timing: database statement and connect deadlines.
  - Import: content thresholds and catalogue defaults.
  - Redis: key taxonomy for the batch lock.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "novol-import"
	AppVersion = "0.1.0-dev"
)

// # Timing

const (
	// StatementTimeout caps any single SQL statement issued by the importer.
	// Chapter batches for very long novels are the slowest statements we send.
	StatementTimeout = 60 * time.Second

	// StartupTimeout bounds connecting to PostgreSQL and Redis.
	StartupTimeout = 30 * time.Second

	// ConnectAttempts is how many times the initial database connection is tried.
	ConnectAttempts = 5

	// ConnectRetryDelay is the base delay between connection attempts.
	ConnectRetryDelay = 1 * time.Second
)

// # Import

const (
	// MinContentRunes is the minimum trimmed length of a decoded file.
	MinContentRunes = 50

	// SampleBytes is how much of a file the charset guesser inspects.
	SampleBytes = 10 * 1024

	// MaxChapterTitleRunes is the storage limit of a chapter title.
	MaxChapterTitleRunes = 200

	// MaxNovelTitleRunes is the storage limit of a novel title.
	MaxNovelTitleRunes = 200

	// TextFileExt is the extension picked up by directory imports.
	TextFileExt = ".txt"

	// DescriptionFormat renders the novel description from file name and encoding.
	DescriptionFormat = "从txt文件导入：%s（编码：%s）"
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixImportLock = "novol:import:lock:"
)
