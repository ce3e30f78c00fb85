// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package charset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/novol/internal/ingest/charset"
)

/*
TestAssess walks every rule in order with inputs that stop at that rule.
*/
func TestAssess(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		accepted bool
		reason   string
	}{
		{"empty", "", false, charset.ReasonTooShort},
		{"short_after_trim", "   第一章 开始    ", false, charset.ReasonTooShort},
		{"control_heavy", strings.Repeat("\x01\x02abc", 10), false, charset.ReasonLowPrintable},
		{"replacement_heavy", strings.Repeat("正文内容\ufffd", 10), false, charset.ReasonReplacement},
		{"chinese_prose", "天下大势，分久必合，合久必分。周末七国分争，并入于秦。", true, charset.ReasonCJKText},
		{"english_prose", "It was the best of times, it was the worst of times.", true, charset.ReasonPrintableText},
		{"ideographic_space_counts_as_space", "　　天下大势，分久必合，合久必分。", true, charset.ReasonCJKText},
		{"latin_with_some_controls", "plain words here" + strings.Repeat("\x07", 2) + " and more words", false, charset.ReasonInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := charset.Assess(tt.text)
			assert.Equal(t, tt.accepted, verdict.Accepted)
			assert.Equal(t, tt.reason, verdict.Reason)
			assert.Equal(t, tt.accepted, charset.Acceptable(tt.text))
		})
	}
}

func TestAssess_Ratios(t *testing.T) {
	verdict := charset.Assess("一二三四五abcde")

	assert.Equal(t, 10, verdict.Runes)
	assert.InDelta(t, 1.0, verdict.PrintableRatio, 1e-9)
	assert.InDelta(t, 0.5, verdict.CJKRatio, 1e-9)
	assert.Zero(t, verdict.ReplacementRatio)
}

/*
TestAssess_ReplacementBoundary checks that exactly 1% U+FFFD is tolerated.
*/
func TestAssess_ReplacementBoundary(t *testing.T) {
	atLimit := strings.Repeat("字", 99) + "\ufffd"
	overLimit := strings.Repeat("字", 98) + "\ufffd\ufffd"

	assert.True(t, charset.Acceptable(atLimit))
	assert.False(t, charset.Acceptable(overLimit))
}
