// Package slug derives URL anchors from heading text.
//
// The site has two producers of anchors: the table of contents rendered with
// each page and the search index built offline. Both go through Make so the
// rules that differ between them live side by side.
package slug

import (
	"regexp"
	"strings"
)

// Rules describes one normalization. Text is lowercased, every match of
// Separator becomes a single dash, every match of Strip is removed, and
// TrimDashes removes leading and trailing dashes.
type Rules struct {
	Separator  *regexp.Regexp
	Strip      *regexp.Regexp
	TrimDashes bool
}

var (
	// TOC are the rules for table of contents hrefs: whitespace runs become
	// dashes and anything outside [a-z0-9-] is dropped.
	TOC = Rules{
		Separator: regexp.MustCompile(`\s+`),
		Strip:     regexp.MustCompile(`[^a-z0-9-]`),
	}

	// Heading are the rules for search index heading ids: runs of non-word
	// characters become dashes, then outer dashes are trimmed.
	Heading = Rules{
		Separator:  regexp.MustCompile(`\W+`),
		TrimDashes: true,
	}
)

// Make applies rules to text.
func Make(text string, rules Rules) string {
	s := strings.ToLower(text)
	if rules.Separator != nil {
		s = rules.Separator.ReplaceAllString(s, "-")
	}
	if rules.Strip != nil {
		s = rules.Strip.ReplaceAllString(s, "")
	}
	if rules.TrimDashes {
		s = strings.Trim(s, "-")
	}
	return s
}

// ForTOC returns the table of contents slug for text.
// Example: "Fields of Tiered Rate Limit" -> "fields-of-tiered-rate-limit"
func ForTOC(text string) string {
	return Make(text, TOC)
}

// ForHeading returns the search index heading id for text.
func ForHeading(text string) string {
	return Make(text, Heading)
}
