// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package charset

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quality thresholds. They are fixed: changing any of them changes which
// files import successfully.
const (
	minTrimmedRunes     = 10
	minPrintableRatio   = 0.80
	maxReplacementRatio = 0.01
	minCJKRatio         = 0.10
	cjkPrintableRatio   = 0.90
	plainPrintableRatio = 0.95
)

// Verdict reasons, in rule order.
const (
	ReasonTooShort      = "too_short"
	ReasonLowPrintable  = "low_printable_ratio"
	ReasonReplacement   = "replacement_chars"
	ReasonCJKText       = "cjk_text"
	ReasonPrintableText = "printable_text"
	ReasonInsufficient  = "insufficient_printable"
)

// Verdict is the outcome of [Assess] together with the measurements that
// produced it.
type Verdict struct {
	Accepted bool
	Reason   string

	Runes            int
	PrintableRatio   float64
	ReplacementRatio float64
	CJKRatio         float64
}

// Acceptable reports whether decoded text looks like real prose.
func Acceptable(text string) bool {
	return Assess(text).Accepted
}

// Assess scores decoded text. Ratios are taken over every rune of text,
// including surrounding whitespace; only the minimum-length rule trims.
//
// Rules, first match wins:
//  1. empty, or fewer than 10 runes after trimming: reject
//  2. printable-or-whitespace ratio below 0.80: reject
//  3. U+FFFD ratio above 0.01: reject
//  4. CJK ratio above 0.10 with printable ratio above 0.90: accept
//  5. printable ratio above 0.95: accept
//  6. otherwise reject
func Assess(text string) Verdict {
	if text == "" || utf8.RuneCountInString(strings.TrimSpace(text)) < minTrimmedRunes {
		return Verdict{Reason: ReasonTooShort, Runes: utf8.RuneCountInString(text)}
	}

	var total, printable, replacement, cjk int
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
		if r == utf8.RuneError {
			replacement++
		}
		if isCJK(r) {
			cjk++
		}
	}

	verdict := Verdict{
		Runes:            total,
		PrintableRatio:   float64(printable) / float64(total),
		ReplacementRatio: float64(replacement) / float64(total),
		CJKRatio:         float64(cjk) / float64(total),
	}

	switch {
	case verdict.PrintableRatio < minPrintableRatio:
		verdict.Reason = ReasonLowPrintable
	case verdict.ReplacementRatio > maxReplacementRatio:
		verdict.Reason = ReasonReplacement
	case verdict.CJKRatio > minCJKRatio && verdict.PrintableRatio > cjkPrintableRatio:
		verdict.Accepted, verdict.Reason = true, ReasonCJKText
	case verdict.PrintableRatio > plainPrintableRatio:
		verdict.Accepted, verdict.Reason = true, ReasonPrintableText
	default:
		verdict.Reason = ReasonInsufficient
	}

	return verdict
}

// isCJK reports whether r is in the CJK Unified Ideographs block.
func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}
