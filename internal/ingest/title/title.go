// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title derives a novel title from the name of its source file.

A rule set is an ordered list of regular expressions applied to the file
name stem. Downloads from novel sites carry site tags, bracketed notes and
chapter ranges in their names; the rules remove them.

Two rule sets exist:

  - [Basic] removes the tags of the 搜书吧 archive and bracketed notes.
  - [Extended] additionally removes parenthesised notes, chapter ranges,
    completion markers, author credits and surrounding book-title marks.
*/
package title

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule rewrites every match of Pattern with Replace.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Rules is an ordered rule set.
type Rules []Rule

func strip(name, pattern string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern)}
}

var collapseSpace = Rule{Name: "collapse-space", Pattern: regexp.MustCompile(`\s+`), Replace: " "}

// Basic is the rule set of the direct import path.
var Basic = Rules{
	strip("site-tag", `(?i)\[搜书吧\]`),
	strip("site-suffix", `(?i)-soushu.*`),
	strip("stray-extension", `(?i)\.txt$`),
	strip("site-url-tag", `(?i)-\[搜书吧网址\]`),
	strip("double-dash-trailer", `--.*`),
	strip("square-note", `\[[^\]]*\]`),
	strip("lenticular-note", `【[^】]*】`),
	collapseSpace,
}

// Extended is the rule set of the general import path.
var Extended = Rules{
	strip("square-note", `\[.*?\]`),
	strip("fullwidth-paren-note", `（.*?）`),
	strip("paren-note", `\(.*?\)`),
	strip("site-suffix", `-soushu.*`),
	strip("stray-extension", `\.txt$`),
	strip("chapter-range", `第.*?章.*`),
	strip("numeric-range", `\d+-\d+`),
	strip("completion-mark", `完结?本?`),
	strip("author-credit", `作者[:：].*`),
	collapseSpace,
	strip("title-marks", `^[《【'"]*|[》】'"]*$`),
}

// Derive returns the title for fileName under rules.
//
// The extension is removed, rules run in order and the result is trimmed.
// When nothing is left the file name is returned unchanged.
func Derive(fileName string, rules Rules) string {
	base := filepath.Base(fileName)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range rules {
		title = rule.Pattern.ReplaceAllString(title, rule.Replace)
	}

	if title = strings.TrimSpace(title); title == "" {
		return base
	}
	return title
}

// SplitAuthor applies the legacy "author-title" heuristic: the name is split
// on its first hyphen and the shorter half is taken as the author. ok is
// false when there is no hyphen or either half is empty.
func SplitAuthor(name string) (title, author string, ok bool) {
	left, right, found := strings.Cut(name, "-")
	if !found {
		return name, "", false
	}

	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" {
		return name, "", false
	}

	if utf8.RuneCountInString(left) <= utf8.RuneCountInString(right) {
		return right, left, true
	}
	return left, right, true
}
