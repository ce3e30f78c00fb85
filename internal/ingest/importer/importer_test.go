// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/novol/internal/core/category"
	"github.com/taibuivan/novol/internal/core/novel"
	"github.com/taibuivan/novol/internal/ingest/charset"
	"github.com/taibuivan/novol/internal/ingest/importer"
	"github.com/taibuivan/novol/internal/platform/apperr"
	"github.com/taibuivan/novol/pkg/uuidv7"
)

// # Fakes

// memoryStore is an in-memory importer.Store.
type memoryStore struct {
	categories []category.Category
	novels     map[string]*novel.Novel
	chapters   map[string][]novel.Chapter

	// createErr, when set, is returned by CreateNovel instead of storing.
	createErr error
	// lookupErr, when set, is returned by NovelTitleExists.
	lookupErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: []category.Category{{ID: 1, Name: "玄幻"}, {ID: 7, Name: "其他"}},
		novels:     map[string]*novel.Novel{},
		chapters:   map[string][]novel.Chapter{},
	}
}

func (m *memoryStore) CategoryExists(_ context.Context, id int) (bool, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) ListCategories(context.Context) ([]category.Category, error) {
	return m.categories, nil
}

func (m *memoryStore) NovelTitleExists(_ context.Context, title string) (bool, error) {
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	_, ok := m.novels[title]
	return ok, nil
}

func (m *memoryStore) CreateNovel(_ context.Context, n *novel.Novel, chapters []novel.Chapter) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.novels[n.Title]; ok {
		return apperr.Duplicate("Record", "novel_title_key")
	}
	n.ID = uuidv7.New()
	m.novels[n.Title] = n
	m.chapters[n.ID] = chapters
	return nil
}

// countingLocker records acquisitions and can refuse them.
type countingLocker struct {
	acquired int
	released int
	err      error
}

func (l *countingLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func(context.Context) error { l.released++; return nil }, nil
}

// # Helpers

var noGuess = charset.WithGuesser(charset.GuesserFunc(func([]byte) (string, float64, bool) {
	return "", 0, false
}))

const novelText = "第一章 开始\n\n少年站在山巅，望着远方的云海，心中涌起万丈豪情。\n\n" +
	"第二章 继续\n\n他知道，属于自己的时代终于来了，便转身走下了山。"

var fixedNow = time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)

func newImporter(store importer.Store, opts ...importer.Option) *importer.Importer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]importer.Option{importer.WithClock(func() time.Time { return fixedNow })}, opts...)
	return importer.New(store, charset.NewDetector(noGuess), logger, importer.Options{}, opts...)
}

func newNovel(title string) *novel.Novel {
	return &novel.Novel{Title: title, Author: "未知作者", CategoryID: 1, Status: novel.StatusCompleted}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// # Single File

func TestImportFile_Success(t *testing.T) {
	store := newMemoryStore()
	path := writeFile(t, t.TempDir(), "[搜书吧]斗破苍穹.txt", []byte(novelText))

	run := importer.NewRun(1)
	outcome := newImporter(store).ImportFile(context.Background(), run, path)

	require.True(t, outcome.Succeeded(), "%+v", outcome.Failure)
	assert.Equal(t, "斗破苍穹", outcome.Title)
	assert.Equal(t, 2, outcome.Chapters)
	assert.Equal(t, charset.UTF8, outcome.Encoding)
	assert.Equal(t, 1, run.Succeeded)
	assert.False(t, run.HasFailures())

	stored := store.novels["斗破苍穹"]
	require.NotNil(t, stored)
	assert.Equal(t, "未知作者", stored.Author)
	assert.Equal(t, novel.StatusCompleted, stored.Status)
	assert.Equal(t, 1, stored.CategoryID)
	assert.Equal(t, "从txt文件导入：[搜书吧]斗破苍穹.txt（编码：utf-8）", stored.Description)
	assert.Equal(t, int64(len([]rune(novelText))), stored.WordCount)

	chapters := store.chapters[stored.ID]
	require.Len(t, chapters, 2)
	assert.Equal(t, "第一章 开始", chapters[0].Title)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, "第二章 继续", chapters[1].Title)
	assert.Equal(t, 2, chapters[1].Number)
}

/*
TestImportFile_Failures drives each stage into failure and checks the
category and the facts captured on the record.
*/
func TestImportFile_Failures(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		missing  bool
		setup    func(store *memoryStore)
		kind     importer.Kind
		encoding string
		check    func(t *testing.T, record *importer.FailureRecord)
	}{
		{
			name:    "missing_file",
			missing: true,
			kind:    importer.KindOther,
			check: func(t *testing.T, record *importer.FailureRecord) {
				assert.Nil(t, record.FileSize)
			},
		},
		{
			name: "undetectable",
			data: make([]byte, 64),
			kind: importer.KindEncoding,
			check: func(t *testing.T, record *importer.FailureRecord) {
				require.NotNil(t, record.FileSize)
				assert.Equal(t, int64(64), *record.FileSize)
				assert.Empty(t, record.Encoding)
			},
		},
		{
			name:     "too_short",
			data:     []byte(strings.Repeat("字", 40)),
			kind:     importer.KindContent,
			encoding: charset.UTF8,
			check: func(t *testing.T, record *importer.FailureRecord) {
				require.NotNil(t, record.ContentLength)
				assert.Equal(t, 40, *record.ContentLength)
			},
		},
		{
			name:     "lookup_error",
			data:     []byte(novelText),
			setup:    func(store *memoryStore) { store.lookupErr = apperr.Database("novel_title_exists", errors.New("conn reset")) },
			kind:     importer.KindDatabase,
			encoding: charset.UTF8,
		},
		{
			name:     "write_error",
			data:     []byte(novelText),
			setup:    func(store *memoryStore) { store.createErr = apperr.Database("insert_chapters", errors.New("disk full")) },
			kind:     importer.KindDatabase,
			encoding: charset.UTF8,
		},
		{
			name:     "title_race",
			data:     []byte(novelText),
			setup:    func(store *memoryStore) { store.createErr = apperr.Duplicate("Record", "novel_title_key") },
			kind:     importer.KindDuplicate,
			encoding: charset.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			if tt.setup != nil {
				tt.setup(store)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "凡人修仙传.txt")
			if !tt.missing {
				writeFile(t, dir, "凡人修仙传.txt", tt.data)
			}

			run := importer.NewRun(1)
			outcome := newImporter(store).ImportFile(context.Background(), run, path)

			require.False(t, outcome.Succeeded())
			record := outcome.Failure
			assert.Equal(t, tt.kind, record.Kind)
			assert.Equal(t, path, record.FilePath)
			assert.Equal(t, "凡人修仙传.txt", record.FileName)
			assert.Equal(t, "凡人修仙传", record.Title)
			assert.Equal(t, tt.encoding, record.Encoding)
			assert.NotEmpty(t, record.Error)
			assert.Equal(t, fixedNow, record.Timestamp)
			if tt.check != nil {
				tt.check(t, record)
			}

			assert.Empty(t, store.novels)
			assert.Len(t, run.Failures(tt.kind), 1)
			assert.Equal(t, 1, run.Failed())
			assert.Zero(t, run.Succeeded)
		})
	}
}

func TestImportFile_SameFileTwice(t *testing.T) {
	store := newMemoryStore()
	path := writeFile(t, t.TempDir(), "仙逆.txt", []byte(novelText))
	imp := newImporter(store)

	first := importer.NewRun(1)
	require.True(t, imp.ImportFile(context.Background(), first, path).Succeeded())

	second := importer.NewRun(1)
	outcome := imp.ImportFile(context.Background(), second, path)

	require.False(t, outcome.Succeeded())
	assert.Equal(t, importer.KindDuplicate, outcome.Failure.Kind)
	assert.Len(t, store.novels, 1)
	assert.Len(t, second.Failures(importer.KindDuplicate), 1)
}

func TestImportFile_GuessAuthor(t *testing.T) {
	store := newMemoryStore()
	path := writeFile(t, t.TempDir(), "我欲封天-耳根.txt", []byte(novelText))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	imp := importer.New(store, charset.NewDetector(noGuess), logger, importer.Options{GuessAuthor: true})

	outcome := imp.ImportFile(context.Background(), importer.NewRun(1), path)
	require.True(t, outcome.Succeeded(), "%+v", outcome.Failure)

	assert.Equal(t, "我欲封天", outcome.Title)
	stored := store.novels["我欲封天"]
	require.NotNil(t, stored)
	assert.Equal(t, "耳根", stored.Author)
}

// # Batches

/*
TestImportPath_MixedBatch imports a directory of valid, undetectable, short
and non-text files. Every text file ends up either stored or in exactly one
bucket; the rest are never looked at.
*/
func TestImportPath_MixedBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_斗罗大陆.txt", []byte(novelText))
	writeFile(t, dir, "b_坏文件.TXT", make([]byte, 64))
	writeFile(t, dir, "c_遮天.txt", []byte(novelText))
	writeFile(t, dir, "d_短篇.txt", []byte("太短了。"+strings.Repeat("短", 20)))
	writeFile(t, dir, "e_说明.md", []byte(novelText))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "f_子目录.txt"), 0o755))

	store := newMemoryStore()
	locker := &countingLocker{}
	run, err := newImporter(store, importer.WithLocker(locker)).
		ImportPath(context.Background(), dir, 1, importer.BatchOptions{})
	require.NoError(t, err)

	const k = 4
	assert.Equal(t, k, run.Total())
	assert.Equal(t, 2, run.Succeeded)
	assert.Equal(t, k-run.Succeeded, run.Failed())
	assert.Len(t, run.Failures(importer.KindEncoding), 1)
	assert.Len(t, run.Failures(importer.KindContent), 1)
	assert.Equal(t, "b_坏文件.TXT", run.Failures(importer.KindEncoding)[0].FileName)

	assert.Len(t, store.novels, 2)
	assert.Contains(t, store.novels, "a_斗罗大陆")
	assert.Contains(t, store.novels, "c_遮天")

	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestImportPath_MaxFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3.txt", "1.txt", "2.txt"} {
		writeFile(t, dir, "小说"+name, []byte(novelText+name))
	}

	store := newMemoryStore()
	run, err := newImporter(store).ImportPath(context.Background(), dir, 1, importer.BatchOptions{MaxFiles: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, run.Total())
	assert.Equal(t, fixedNow, run.StartedAt)
	require.Len(t, run.Imported, 2)
	assert.Equal(t, "小说1", run.Imported[0].Title)
	assert.Equal(t, "小说2", run.Imported[1].Title)
}

func TestImportPath_Preconditions(t *testing.T) {
	empty := t.TempDir()
	writeFile(t, empty, "readme.md", []byte("nothing"))

	withFile := t.TempDir()
	writeFile(t, withFile, "书.txt", []byte(novelText))

	tests := []struct {
		name       string
		path       string
		categoryID int
		locker     importer.Locker
		check      func(t *testing.T, err error)
	}{
		{
			name:       "missing_path",
			path:       filepath.Join(empty, "nope"),
			categoryID: 1,
			check: func(t *testing.T, err error) {
				assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
			},
		},
		{
			name:       "unknown_category",
			path:       withFile,
			categoryID: 42,
			check: func(t *testing.T, err error) {
				var missing *importer.CategoryMissingError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, 42, missing.ID)
				assert.Len(t, missing.Available, 2)
				assert.ErrorIs(t, err, category.ErrCategoryNotFound)
				assert.Contains(t, err.Error(), "1=玄幻")
			},
		},
		{
			name:       "no_text_files",
			path:       empty,
			categoryID: 1,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, importer.ErrNoTextFiles)
			},
		},
		{
			name:       "lock_held",
			path:       withFile,
			categoryID: 1,
			locker:     &countingLocker{err: errors.New("held")},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "acquire batch lock")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			var opts []importer.Option
			if tt.locker != nil {
				opts = append(opts, importer.WithLocker(tt.locker))
			}

			run, err := newImporter(store, opts...).ImportPath(context.Background(), tt.path, tt.categoryID, importer.BatchOptions{})
			require.Error(t, err)
			assert.Nil(t, run)
			tt.check(t, err)
			assert.Empty(t, store.novels)
		})
	}
}

func TestImportPath_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "甲.txt", []byte(novelText))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newMemoryStore()
	run, err := newImporter(store).ImportPath(ctx, dir, 1, importer.BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, run)
	assert.Zero(t, run.Total())
	assert.Empty(t, store.novels)
}
