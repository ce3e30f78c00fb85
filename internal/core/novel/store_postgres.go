// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/novol/internal/platform/database/schema"
	"github.com/taibuivan/novol/internal/platform/dberr"
	"github.com/taibuivan/novol/pkg/uuidv7"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) TitleExists(context context.Context, title string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogNovel.Table, schema.CatalogNovel.Title)

	var exists bool
	if err := repository.pool.QueryRow(context, query, title).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "novel_title_exists")
	}

	return exists, nil
}

/*
Create persists a novel row and all of its chapter rows.

Description: Everything runs in one transaction. The chapters are sent as a
single pgx batch; if the novel insert, any chapter insert or the commit
fails, the deferred rollback discards the whole file so that a novel is
never visible without its chapters.

Parameters:
  - context: context.Context
  - novel: *Novel (ID is generated when empty)
  - chapters: []Chapter (NovelID and empty IDs are filled in)

Returns:
  - error: DUPLICATE when the title is taken, DATABASE for any other failure
*/
func (repository *PostgresRepository) Create(context context.Context, novel *Novel, chapters []Chapter) error {
	if novel.ID == "" {
		novel.ID = uuidv7.New()
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_novel_tx")
	}
	defer transaction.Rollback(context)

	columns := []string{
		schema.CatalogNovel.ID, schema.CatalogNovel.Title, schema.CatalogNovel.Author,
		schema.CatalogNovel.Description, schema.CatalogNovel.CategoryID, schema.CatalogNovel.Status,
		schema.CatalogNovel.TotalChapters, schema.CatalogNovel.WordCount,
		schema.CatalogNovel.SourceFile, schema.CatalogNovel.Encoding,
	}
	novelQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`, schema.CatalogNovel.Table, strings.Join(columns, ", "),
		schema.CatalogNovel.CreatedAt, schema.CatalogNovel.UpdatedAt)

	err = transaction.QueryRow(context, novelQuery,
		novel.ID,
		novel.Title,
		novel.Author,
		novel.Description,
		novel.CategoryID,
		novel.Status,
		novel.TotalChapters,
		novel.WordCount,
		novel.SourceFile,
		novel.Encoding,
	).Scan(&novel.CreatedAt, &novel.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_novel")
	}

	if err := repository.insertChapters(context, transaction, novel.ID, chapters); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_novel_tx")
	}

	return nil
}

// insertChapters queues one INSERT per chapter and sends them as a batch.
func (repository *PostgresRepository) insertChapters(context context.Context, transaction pgx.Tx, novelID string, chapters []Chapter) error {
	chapterQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schema.CatalogChapter.Table,
		schema.CatalogChapter.ID, schema.CatalogChapter.NovelID, schema.CatalogChapter.ChapterNumber,
		schema.CatalogChapter.Title, schema.CatalogChapter.Content, schema.CatalogChapter.WordCount)

	batch := &pgx.Batch{}
	for i := range chapters {
		chapter := &chapters[i]
		if chapter.ID == "" {
			chapter.ID = uuidv7.New()
		}
		chapter.NovelID = novelID

		batch.Queue(chapterQuery, chapter.ID, chapter.NovelID, chapter.Number, chapter.Title, chapter.Content, chapter.WordCount)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "insert_chapters")
	}

	return nil
}
