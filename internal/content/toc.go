package content

import (
	"regexp"
	"strings"

	"github.com/krakend/docsite/internal/slug"
)

// tocPattern matches level 2 to 4 ATX headings, one per line
var tocPattern = regexp.MustCompile(`(?m)^(#{2,4})\s(.+)$`)

// TocEntry is one table of contents link
type TocEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Href  string `json:"href"`
}

// ExtractToc scans raw document text for headings and returns them in
// document order. It works on the text directly, without a markdown parser,
// so inline markup inside a heading stays in Text.
func ExtractToc(raw string) []TocEntry {
	matches := tocPattern.FindAllStringSubmatch(raw, -1)
	entries := make([]TocEntry, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[2])
		entries = append(entries, TocEntry{
			Level: len(m[1]),
			Text:  text,
			Href:  "#" + slug.ForTOC(text),
		})
	}
	return entries
}
