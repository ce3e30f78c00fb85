// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package segment splits decoded novel text into ordered chapter drafts.

Two modes exist:

  - Lines: every non-blank line is tested against [HeadingRules]; headings
    open a new chapter, other lines become body text.
  - Paragraphs: blank-line separated paragraphs are tested instead, and text
    with no usable headings is cut by length on sentence boundaries.

Both modes return at least one draft, number drafts 1..N by position, and
never drop character content: a heading with no body of its own is kept
at the start of the next chapter's body.
*/
package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/novol/internal/platform/constants"
)

// Generated titles.
const (
	DefaultTitle = "第一章"
	BodyTitle    = "正文"
)

// Mode selects the segmentation strategy.
type Mode string

const (
	ModeLines      Mode = "lines"
	ModeParagraphs Mode = "paragraphs"
)

// Draft is one not-yet-persisted chapter.
type Draft struct {
	Ordinal   int
	Title     string
	Body      string
	WordCount int
	// Generated is true when Title was synthesized rather than read from the text.
	Generated bool
}

// Segment dispatches on mode. Unknown modes fall back to [ModeLines].
func Segment(text string, mode Mode) []Draft {
	if mode == ModeParagraphs {
		return Paragraphs(text)
	}
	return Lines(text)
}

// accumulator collects headings and body units into drafts.
type accumulator struct {
	drafts  []Draft
	current Draft
	body    []string
	// pending holds text headings that never collected a body. They prefix
	// the body of the next chapter that does.
	pending []string
	sep     string
}

func newAccumulator(sep string) *accumulator {
	return &accumulator{
		current: Draft{Title: DefaultTitle, Generated: true},
		sep:     sep,
	}
}

// heading opens a new chapter titled by the heading. A text heading whose
// chapter is still empty moves to pending.
func (a *accumulator) heading(title string) {
	if len(a.body) == 0 && !a.current.Generated {
		a.pending = append(a.pending, a.current.Title)
	} else {
		a.flush()
	}
	a.current = Draft{Title: title}
}

func (a *accumulator) text(unit string) {
	a.body = append(a.body, unit)
}

// flush emits the current chapter when its own body is non-empty. Pending
// headings do not count as body.
func (a *accumulator) flush() {
	body := strings.TrimSpace(strings.Join(a.body, a.sep))
	a.body = nil
	if body == "" {
		return
	}
	if len(a.pending) > 0 {
		body = strings.Join(append(a.pending, body), a.sep)
		a.pending = nil
	}
	a.current.Body = body
	a.drafts = append(a.drafts, a.current)
}

// finish flushes the last chapter. Trailing text headings with no body are
// appended to the previous chapter so their text survives.
func (a *accumulator) finish() []Draft {
	if len(a.body) == 0 && !a.current.Generated && len(a.drafts) > 0 {
		last := &a.drafts[len(a.drafts)-1]
		for _, title := range append(a.pending, a.current.Title) {
			last.Body += a.sep + title
		}
		a.pending = nil
		return a.drafts
	}
	a.flush()
	return a.drafts
}

// single wraps the whole text in one generically titled chapter.
func single(text string) []Draft {
	return number([]Draft{{Title: BodyTitle, Body: text, Generated: true}})
}

// number assigns ordinals by position and finalizes titles and counts.
func number(drafts []Draft) []Draft {
	for i := range drafts {
		drafts[i].Ordinal = i + 1
		drafts[i].Title = truncate(drafts[i].Title, constants.MaxChapterTitleRunes)
		drafts[i].WordCount = utf8.RuneCountInString(drafts[i].Body)
	}
	return drafts
}

func generatedTitle(n int) string {
	return fmt.Sprintf("第%d章", n)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
