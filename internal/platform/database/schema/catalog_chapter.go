// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table         string
	ID            string
	NovelID       string
	ChapterNumber string
	Title         string
	Content       string
	WordCount     string
	CreatedAt     string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:         "catalog.chapter",
	ID:            "id",
	NovelID:       "novelid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	Content:       "content",
	WordCount:     "wordcount",
	CreatedAt:     "createdat",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.ID, t.NovelID, t.ChapterNumber, t.Title, t.Content, t.WordCount, t.CreatedAt}
}
