// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogNovelTable represents the 'catalog.novel' table
type CatalogNovelTable struct {
	Table         string
	ID            string
	Title         string
	Author        string
	Description   string
	CategoryID    string
	Status        string
	TotalChapters string
	WordCount     string
	SourceFile    string
	Encoding      string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogNovel is the schema definition for catalog.novel
var CatalogNovel = CatalogNovelTable{
	Table:         "catalog.novel",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	CategoryID:    "categoryid",
	Status:        "status",
	TotalChapters: "totalchapters",
	WordCount:     "wordcount",
	SourceFile:    "sourcefile",
	Encoding:      "encoding",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CatalogNovelTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.CategoryID, t.Status,
		t.TotalChapters, t.WordCount, t.SourceFile, t.Encoding, t.CreatedAt, t.UpdatedAt,
	}
}
