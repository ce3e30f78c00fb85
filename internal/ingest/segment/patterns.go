// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import "regexp"

// HeadingRule recognizes a chapter heading at the start of a line or paragraph.
type HeadingRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// HeadingRules is the ordered list of heading recognizers. The first match
// wins; every pattern is anchored at the start of the candidate.
var HeadingRules = []HeadingRule{
	{Name: "chapter-cn", Pattern: regexp.MustCompile(`^第[一二三四五六七八九十百千万0-9０-９]+章`)},
	{Name: "section-cn", Pattern: regexp.MustCompile(`^第[一二三四五六七八九十百千万0-9０-９]+节`)},
	{Name: "chapter-latin", Pattern: regexp.MustCompile(`^Chapter\s*[0-9０-９]+`)},
	{Name: "numeric", Pattern: regexp.MustCompile(`^[0-9０-９]+[.\-\s]*`)},
	{Name: "list-cn", Pattern: regexp.MustCompile(`^[一二三四五六七八九十]+[.\-、\s]*`)},
}

// MatchHeading returns the name of the first rule matching candidate.
func MatchHeading(candidate string) (string, bool) {
	for _, rule := range HeadingRules {
		if rule.Pattern.MatchString(candidate) {
			return rule.Name, true
		}
	}
	return "", false
}
