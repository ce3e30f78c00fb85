// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/taibuivan/novol/internal/ingest/importer"
	"github.com/taibuivan/novol/internal/platform/constants"
)

// printSummary prints the totals of run, saves its failure report and
// suggests the retry commands for it. batchErr is returned unchanged after
// printing, so an interrupted batch still exits non-zero.
func printSummary(w io.Writer, run *importer.Run, dir string, batchErr error) error {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Run %s finished in %s\n", run.ID, time.Since(run.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(w, "  Succeeded: %d\n", run.Succeeded)
	fmt.Fprintf(w, "  Failed:    %d\n", run.Failed())

	for _, outcome := range run.Imported {
		fmt.Fprintf(w, "  + %s (%d chapters, %s)\n", outcome.Title, outcome.Chapters, outcome.Encoding)
	}

	if !run.HasFailures() {
		return batchErr
	}

	counts := run.Counts()
	for _, kind := range importer.Kinds {
		if counts[kind] > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", kind+":", counts[kind])
		}
	}

	path, err := importer.SaveReport(dir, run, time.Now().UTC())
	if err != nil {
		slog.Error("report_save_failed", slog.Any("error", err))
		return err
	}

	fmt.Fprintf(w, "\nFailure report: %s\n", path)
	fmt.Fprintln(w, "Retry with:")
	fmt.Fprintf(w, "  %s --retry %s %d\n", constants.AppName, path, run.CategoryID)
	for _, kind := range importer.Kinds {
		if counts[kind] > 0 && kind != importer.KindDuplicate {
			fmt.Fprintf(w, "  %s --retry %s %d --retry-type %s\n", constants.AppName, path, run.CategoryID, kind)
		}
	}

	return batchErr
}
