// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command importer loads plain-text novel files into the catalogue.
//
// # Startup Sequence
//
//  1. Parse flags and arguments.
//  2. Load configuration from environment variables.
//  3. Initialize the structured logger.
//  4. Connect to PostgreSQL (pgxpool), optionally migrate.
//  5. Connect to Redis when a lock is configured.
//  6. Run the import or retry and print the summary.
//
// A batch with failed files still exits 0. Only failed pre-conditions and
// connection errors exit 1.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
