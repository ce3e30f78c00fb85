// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/novol/internal/core/category"
	"github.com/taibuivan/novol/internal/platform/apperr"
	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/pkg/slice"
)

// lockName scopes the batch lock to the catalogue.
const lockName = "catalog"

// ErrNoTextFiles is returned for a directory without any .txt files.
var ErrNoTextFiles = apperr.ValidationError("directory contains no " + constants.TextFileExt + " files")

// # Batch Lock

// Locker provides mutual exclusion between importer processes.
type Locker interface {
	Acquire(ctx context.Context, name string) (func(context.Context) error, error)
}

// NopLocker always succeeds. It is used when no lock backend is configured.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// # Pre-conditions

// CategoryMissingError is returned when the target category does not exist.
// Available lists the categories that do.
type CategoryMissingError struct {
	ID        int
	Available []category.Category
}

func (e *CategoryMissingError) Error() string {
	names := slice.Map(e.Available, func(c category.Category) string {
		return fmt.Sprintf("%d=%s", c.ID, c.Name)
	})
	return fmt.Sprintf("category %d does not exist (available: %s)", e.ID, strings.Join(names, ", "))
}

func (e *CategoryMissingError) Unwrap() error { return category.ErrCategoryNotFound }

// checkCategory fails with [*CategoryMissingError] when id is unknown.
func (importer *Importer) checkCategory(ctx context.Context, id int) error {
	exists, err := importer.store.CategoryExists(ctx, id)
	if err != nil {
		return fmt.Errorf("importer: check category: %w", err)
	}
	if exists {
		return nil
	}

	available, err := importer.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("importer: list categories: %w", err)
	}
	return &CategoryMissingError{ID: id, Available: available}
}

// ListTextFiles returns the regular *.txt files directly inside dir, sorted
// by name. The extension match ignores case.
func ListTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("importer: read directory: %w", err)
	}

	entries = slice.Filter(entries, func(entry os.DirEntry) bool {
		return entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), constants.TextFileExt)
	})
	files := slice.Map(entries, func(entry os.DirEntry) string {
		return filepath.Join(dir, entry.Name())
	})

	return files, nil
}

// # Batch

// BatchOptions limits a batch.
type BatchOptions struct {
	// MaxFiles truncates a directory listing when positive.
	MaxFiles int
}

/*
ImportPath imports a single file or every text file in a directory.

Description: Pre-conditions are checked before any file is touched: the
path must exist, the category must exist, a directory must contain at least
one text file and the batch lock must be free. Their failure is returned as
an error and no run is produced. Files are then imported one by one in
listing order; their failures are recorded on the run.

Parameters:
  - ctx: context.Context (cancellation stops the batch between files)
  - path: string (file or directory)
  - categoryID: int
  - opts: BatchOptions

Returns:
  - *Run: the run, also on cancellation
  - error: a pre-condition failure, or ctx.Err() when interrupted
*/
func (importer *Importer) ImportPath(ctx context.Context, path string, categoryID int, opts BatchOptions) (*Run, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.NotFound("Path").Wrap(err)
	}

	if err := importer.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		if files, err = ListTextFiles(path); err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, ErrNoTextFiles
		}
		if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
			files = files[:opts.MaxFiles]
		}
	}

	return importer.runBatch(ctx, importer.newRun(categoryID), files)
}

/*
Retry replays the files of a previous report as a new run.

Parameters:
  - ctx: context.Context
  - report: *Report (left unchanged)
  - categoryID: int
  - filter: Kind (one bucket only; empty means every bucket except duplicates)

Returns:
  - *Run: the new run; empty when the selection has no files
  - error: an unknown filter or a pre-condition failure
*/
func (importer *Importer) Retry(ctx context.Context, report *Report, categoryID int, filter Kind) (*Run, error) {
	entries, err := report.Entries(filter)
	if err != nil {
		return nil, err
	}

	if err := importer.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	files := slice.Map(entries, func(record FailureRecord) string { return record.FilePath })

	importer.logger.Info("import_retry_selected",
		slog.String("source_run_id", report.RunID),
		slog.String("filter", string(filter)),
		slog.Int("files", len(files)),
	)

	return importer.runBatch(ctx, importer.newRun(categoryID), files)
}

// newRun starts a run stamped by the importer's clock.
func (importer *Importer) newRun(categoryID int) *Run {
	run := NewRun(categoryID)
	run.StartedAt = importer.now()
	return run
}

// runBatch imports files in order under the batch lock.
func (importer *Importer) runBatch(ctx context.Context, run *Run, files []string) (*Run, error) {
	release, err := importer.locker.Acquire(ctx, lockName)
	if err != nil {
		return nil, fmt.Errorf("importer: acquire batch lock: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			importer.logger.Error("import_lock_release_failed", slog.Any("error", err))
		}
	}()

	logger := importer.logger.With(slog.String("run_id", run.ID))
	logger.Info("import_batch_started", slog.Int("category_id", run.CategoryID), slog.Int("files", len(files)))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			logger.Warn("import_batch_interrupted", slog.Int("processed", i), slog.Int("files", len(files)))
			return run, err
		}

		logger.Info("import_file_queued",
			slog.Int("index", i+1),
			slog.Int("total", len(files)),
			slog.String("file", filepath.Base(file)),
		)
		importer.ImportFile(ctx, run, file)
	}

	logger.Info("import_batch_finished",
		slog.Int("succeeded", run.Succeeded),
		slog.Int("failed", run.Failed()),
		slog.Duration("elapsed", importer.now().Sub(run.StartedAt)),
	)

	return run, nil
}
