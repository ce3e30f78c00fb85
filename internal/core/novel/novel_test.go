// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/novol/internal/core/novel"
	"github.com/taibuivan/novol/internal/platform/apperr"
)

func validNovel() (*novel.Novel, []novel.Chapter) {
	n := &novel.Novel{
		Title:         "斗破苍穹",
		Author:        "未知作者",
		CategoryID:    1,
		Status:        novel.StatusCompleted,
		TotalChapters: 2,
	}
	chapters := []novel.Chapter{
		{Number: 1, Title: "第一章", Content: "内容一。"},
		{Number: 2, Title: "第二章", Content: "内容二。"},
	}
	return n, chapters
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *novel.Novel, chapters []novel.Chapter) []novel.Chapter
		field  string
	}{
		{"valid", func(_ *novel.Novel, c []novel.Chapter) []novel.Chapter { return c }, ""},
		{"blank_title", func(n *novel.Novel, c []novel.Chapter) []novel.Chapter { n.Title = " "; return c }, "title"},
		{"long_title", func(n *novel.Novel, c []novel.Chapter) []novel.Chapter {
			n.Title = strings.Repeat("书", 201)
			return c
		}, "title"},
		{"unknown_status", func(n *novel.Novel, c []novel.Chapter) []novel.Chapter { n.Status = "draft"; return c }, "status"},
		{"missing_category", func(n *novel.Novel, c []novel.Chapter) []novel.Chapter { n.CategoryID = 0; return c }, "category_id"},
		{"gap_in_numbers", func(_ *novel.Novel, c []novel.Chapter) []novel.Chapter { c[1].Number = 3; return c }, "chapters"},
		{"count_mismatch", func(n *novel.Novel, c []novel.Chapter) []novel.Chapter { n.TotalChapters = 5; return c }, "total_chapters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, chapters := validNovel()
			chapters = tt.mutate(n, chapters)

			err := novel.Validate(n, chapters)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestValidate_NoChapters(t *testing.T) {
	n, _ := validNovel()
	n.TotalChapters = 0

	err := novel.Validate(n, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "At least one chapter is required")
}
