// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer turns plain-text novel files into catalogue records.

Each file runs through a fixed sequence of stages:

	read → detect encoding → check length → check duplicate → segment → persist

The first stage that fails decides the [Kind] of the file's [FailureRecord];
no later stage runs. A failing file never stops the batch. Every batch,
single-file import and retry works on its own [Run], and a run with failures
can be written out as a [Report] and replayed with [Importer.Retry].
*/
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/novol/internal/core/novel"
	"github.com/taibuivan/novol/internal/ingest/charset"
	"github.com/taibuivan/novol/internal/ingest/segment"
	"github.com/taibuivan/novol/internal/ingest/title"
	"github.com/taibuivan/novol/internal/platform/apperr"
	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/internal/platform/ctxutil"
	"github.com/taibuivan/novol/pkg/pointer"
	"github.com/taibuivan/novol/pkg/slice"
)

// Options controls how each file is turned into a novel.
type Options struct {
	// Author is stored on every novel unless GuessAuthor finds one.
	Author string
	// GuessAuthor splits "author-title" file names, taking the shorter half
	// as the author.
	GuessAuthor bool
	// Mode selects the chapter segmentation strategy.
	Mode segment.Mode
	// Rules derive the title from the file name.
	Rules title.Rules
}

// DefaultOptions returns the settings of a plain import.
func DefaultOptions() Options {
	return Options{
		Author: "未知作者",
		Mode:   segment.ModeLines,
		Rules:  title.Basic,
	}
}

// Importer runs the per-file pipeline against a [Store].
type Importer struct {
	store    Store
	detector *charset.Detector
	locker   Locker
	logger   *slog.Logger
	options  Options
	now      func() time.Time
}

// Option configures an [Importer].
type Option func(*Importer)

// WithLocker guards batches with locker.
func WithLocker(locker Locker) Option {
	return func(importer *Importer) { importer.locker = locker }
}

// WithClock overrides the source of failure timestamps.
func WithClock(now func() time.Time) Option {
	return func(importer *Importer) { importer.now = now }
}

// New builds an importer. Zero fields of options fall back to [DefaultOptions].
func New(store Store, detector *charset.Detector, logger *slog.Logger, options Options, opts ...Option) *Importer {
	defaults := DefaultOptions()
	if options.Author == "" {
		options.Author = defaults.Author
	}
	if options.Mode == "" {
		options.Mode = defaults.Mode
	}
	if options.Rules == nil {
		options.Rules = defaults.Rules
	}

	importer := &Importer{
		store:    store,
		detector: detector,
		locker:   NopLocker{},
		logger:   logger,
		options:  options,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(importer)
	}
	return importer
}

/*
ImportFile runs the pipeline for a single file and records the outcome on run.

Parameters:
  - ctx: context.Context
  - run: *Run (supplies the category and receives the outcome)
  - path: string

Returns:
  - Outcome: the stored novel, or the failure record
*/
func (importer *Importer) ImportFile(ctx context.Context, run *Run, path string) Outcome {
	fileName := filepath.Base(path)
	name := title.Derive(fileName, importer.options.Rules)
	author := importer.options.Author

	if importer.options.GuessAuthor {
		if guessed, by, ok := title.SplitAuthor(name); ok {
			name, author = guessed, by
		}
	}

	ctx = ctxutil.WithFile(ctxutil.WithRunID(ctx, run.ID), path)
	logger := importer.fileLogger(ctx)
	ctx = ctxutil.WithLogger(ctx, logger)

	record := &FailureRecord{FilePath: path, FileName: fileName, Title: name}
	outcome := importer.importFile(ctx, run, record, author)
	outcome.Path, outcome.Title = path, name

	if outcome.Failure != nil {
		logger.Warn("import_file_failed",
			slog.String("title", name),
			slog.String("kind", string(outcome.Failure.Kind)),
			slog.String("error", outcome.Failure.Error),
			slog.Int64("size_bytes", pointer.Val(outcome.Failure.FileSize)),
		)
	}

	run.Record(outcome)
	return outcome
}

// fileLogger tags the importer logger with the run and file carried by ctx.
func (importer *Importer) fileLogger(ctx context.Context) *slog.Logger {
	return importer.logger.With(
		slog.String("run_id", ctxutil.GetRunID(ctx)),
		slog.String("file", filepath.Base(ctxutil.GetFile(ctx))),
	)
}

// importFile walks the stages. record is filled in as facts become known
// and returned as the failure of the first stage that fails.
func (importer *Importer) importFile(ctx context.Context, run *Run, record *FailureRecord, author string) Outcome {
	logger := ctxutil.GetLogger(ctx)

	fail := func(err error) Outcome {
		record.Kind = kindOf(err)
		record.Error = err.Error()
		record.Timestamp = importer.now()
		return Outcome{Encoding: record.Encoding, Failure: record}
	}

	// 1. Read
	info, err := os.Stat(record.FilePath)
	if err != nil {
		return fail(fmt.Errorf("stat file: %w", err))
	}
	if !info.Mode().IsRegular() {
		return fail(fmt.Errorf("not a regular file: %s", record.FilePath))
	}
	record.FileSize = pointer.To(info.Size())

	data, err := os.ReadFile(record.FilePath)
	if err != nil {
		return fail(fmt.Errorf("read file: %w", err))
	}

	logger.Info("import_file_started", slog.String("title", record.Title), slog.Int64("size_bytes", info.Size()))

	// 2. Encoding
	decoded, err := importer.detector.Detect(ctx, data)
	if err != nil {
		return fail(err)
	}
	record.Encoding = decoded.Encoding

	// 3. Length
	length := utf8.RuneCountInString(strings.TrimSpace(decoded.Text))
	if length < constants.MinContentRunes {
		record.ContentLength = pointer.To(length)
		return fail(apperr.Content(fmt.Sprintf("content too short: %d characters, need %d", length, constants.MinContentRunes)))
	}

	// 4. Duplicate
	exists, err := importer.store.NovelTitleExists(ctx, record.Title)
	if err != nil {
		return fail(err)
	}
	if exists {
		return fail(apperr.Duplicate("Novel", record.Title))
	}

	// 5. Segment
	drafts := segment.Segment(decoded.Text, importer.options.Mode)
	if len(drafts) == 0 {
		record.ContentLength = pointer.To(utf8.RuneCountInString(decoded.Text))
		return fail(apperr.Content("no chapters could be extracted"))
	}

	// 6. Persist
	entry := &novel.Novel{
		Title:         record.Title,
		Author:        author,
		Description:   fmt.Sprintf(constants.DescriptionFormat, record.FileName, decoded.Encoding),
		CategoryID:    run.CategoryID,
		Status:        novel.StatusCompleted,
		TotalChapters: len(drafts),
		WordCount:     int64(utf8.RuneCountInString(decoded.Text)),
		SourceFile:    record.FileName,
		Encoding:      decoded.Encoding,
	}
	chapters := slice.Map(drafts, func(draft segment.Draft) novel.Chapter {
		return novel.Chapter{
			Number:    draft.Ordinal,
			Title:     draft.Title,
			Content:   draft.Body,
			WordCount: draft.WordCount,
		}
	})

	if err := novel.Validate(entry, chapters); err != nil {
		return fail(err)
	}

	if err := importer.store.CreateNovel(ctx, entry, chapters); err != nil {
		return fail(err)
	}

	logger.Info("import_file_succeeded",
		slog.String("novel_id", entry.ID),
		slog.String("title", entry.Title),
		slog.Int("chapters", entry.TotalChapters),
		slog.Int64("word_count", entry.WordCount),
		slog.String("encoding", decoded.Encoding),
		slog.Float64("confidence", decoded.Confidence),
	)

	return Outcome{NovelID: entry.ID, Chapters: entry.TotalChapters, Encoding: decoded.Encoding}
}
