// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"strings"
	"unicode/utf8"
)

// maxLineHeadingRunes keeps prose lines that start like a heading from
// being taken for one.
const maxLineHeadingRunes = 200

// Lines segments text line by line.
//
// Blank lines are dropped and every other line is trimmed. Text that yields
// no chapter at all becomes a single [BodyTitle] chapter holding the
// original text verbatim.
func Lines(text string) []Draft {
	acc := newAccumulator("\n")

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isLineHeading(line) {
			acc.heading(line)
			continue
		}
		acc.text(line)
	}

	drafts := acc.finish()
	if len(drafts) == 0 {
		return single(text)
	}

	return number(drafts)
}

func isLineHeading(line string) bool {
	if utf8.RuneCountInString(line) >= maxLineHeadingRunes {
		return false
	}
	_, ok := MatchHeading(line)
	return ok
}
