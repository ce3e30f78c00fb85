// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxParagraphHeadingRunes is tighter than the line cap: a whole
	// paragraph is the heading candidate.
	maxParagraphHeadingRunes = 100

	// minSplitRunes is the size below which text is never split.
	minSplitRunes = 3000

	// DefaultMaxChapterRunes caps chapters produced by [ByLength].
	DefaultMaxChapterRunes = 5000

	// sentenceEnd is the full-width period.
	sentenceEnd = "。"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Paragraphs segments text by blank-line separated paragraphs.
//
// Short text stays in one chapter. When headings produce at most one
// chapter the text is cut by length instead, see [ByLength].
func Paragraphs(text string) []Draft {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return single(text)
	}

	if utf8.RuneCountInString(text) < minSplitRunes {
		return single(strings.TrimSpace(text))
	}

	acc := newAccumulator("\n\n")
	for _, paragraph := range paragraphs {
		if isParagraphHeading(paragraph) {
			acc.heading(paragraph)
			continue
		}
		acc.text(paragraph)
	}

	drafts := acc.finish()
	if len(drafts) <= 1 {
		return ByLength(text, DefaultMaxChapterRunes)
	}

	return number(drafts)
}

// ByLength cuts text into chapters of at most max runes, ending each on a
// full-width period. A single sentence longer than max becomes a chapter of
// its own rather than being cut. Titles are generated as 第1章, 第2章, ….
func ByLength(text string, max int) []Draft {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= max {
		return single(trimmed)
	}

	var (
		drafts  []Draft
		current strings.Builder
		length  int
	)

	flush := func() {
		if body := strings.TrimSpace(current.String()); body != "" {
			drafts = append(drafts, Draft{
				Title:     generatedTitle(len(drafts) + 1),
				Body:      body,
				Generated: true,
			})
		}
		current.Reset()
		length = 0
	}

	for _, sentence := range strings.SplitAfter(trimmed, sentenceEnd) {
		n := utf8.RuneCountInString(sentence)
		if length > 0 && length+n > max {
			flush()
		}
		current.WriteString(sentence)
		length += n
	}
	flush()

	return number(drafts)
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, raw := range paragraphBreak.Split(text, -1) {
		if paragraph := strings.TrimSpace(raw); paragraph != "" {
			paragraphs = append(paragraphs, paragraph)
		}
	}
	return paragraphs
}

func isParagraphHeading(paragraph string) bool {
	if utf8.RuneCountInString(paragraph) >= maxParagraphHeadingRunes {
		return false
	}
	_, ok := MatchHeading(paragraph)
	return ok
}
