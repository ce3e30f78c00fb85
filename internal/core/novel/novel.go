// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package novel holds the catalogue records produced by an import: one
// novel row and its ordered chapter rows.
package novel

import (
	"time"

	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/internal/platform/validate"
)

// Status is the publication state of a novel.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

// MaxAuthorLen matches the catalog.novel author column.
const MaxAuthorLen = 100

// Novel is one imported work.
type Novel struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	CategoryID    int       `json:"category_id"`
	Status        Status    `json:"status"`
	TotalChapters int       `json:"total_chapters"`
	WordCount     int64     `json:"word_count"`
	SourceFile    string    `json:"source_file"`
	Encoding      string    `json:"encoding"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Chapter is one persisted chapter. Number is the 1-based position within
// the novel and is unique per novel.
type Chapter struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novel_id"`
	Number    int       `json:"chapter_number"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks a novel and its chapters before they are written.
// Chapter numbers must run 1..N in slice order.
func Validate(n *Novel, chapters []Chapter) error {
	v := &validate.Validator{}

	v.Required("title", n.Title).
		MaxLen("title", n.Title, constants.MaxNovelTitleRunes).
		Required("author", n.Author).
		MaxLen("author", n.Author, MaxAuthorLen).
		Range("category_id", n.CategoryID, 1, 1<<31-1).
		OneOf("status", string(n.Status), string(StatusOngoing), string(StatusCompleted), string(StatusPaused)).
		Custom("chapters", len(chapters) == 0, "At least one chapter is required").
		Custom("total_chapters", n.TotalChapters != len(chapters), "Must equal the number of chapters")

	for i, chapter := range chapters {
		if chapter.Number != i+1 {
			v.Custom("chapters", true, "Chapter numbers must be contiguous from 1")
			break
		}
	}

	return v.Err()
}
