package indexing

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/krakend/docsite/internal/slug"
)

var newlineRuns = regexp.MustCompile(`\n+`)

// newParser builds the markdown parser shared by plain text and heading
// extraction. goldmark parsers are not documented as safe for concurrent use,
// so each call gets its own.
func newParser() parser.Parser {
	return goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
}

// PlainText renders a markdown body as plain text on a single line.
// Text, inline code, link labels and image alt text are kept. Code blocks,
// raw HTML, thematic breaks and tables are dropped.
func PlainText(body []byte) string {
	doc := newParser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML,
			*ast.ThematicBreak, *east.Table:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				buf.Write(textValue(node, body))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				buf.Write(node.Label(body))
			}
		}

		if !entering && n.Type() == ast.TypeBlock {
			buf.WriteString("\n\n")
		}
		return ast.WalkContinue, nil
	})

	return CollapseNewlines(buf.String())
}

// textValue returns the literal text of node: entity and numeric references
// resolved, backslash escapes removed. Raw text, such as code span content,
// is returned untouched.
func textValue(node *ast.Text, source []byte) []byte {
	value := node.Segment.Value(source)
	if node.IsRaw() {
		return value
	}
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return util.UnescapePunctuations(value)
}

// CollapseNewlines replaces every run of newlines with a single space and
// trims the result
func CollapseNewlines(s string) string {
	return strings.TrimSpace(newlineRuns.ReplaceAllString(s, " "))
}

// ExtractHeadings parses a markdown body and returns its headings in
// document order. Only direct text children make up a heading's text:
// emphasis, code spans and links nested inside the heading are left out.
// Headings without any direct text are skipped.
func ExtractHeadings(body []byte) []Heading {
	doc := newParser().Parse(text.NewReader(body))

	headings := []Heading{}
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				buf.Write(textValue(textNode, body))
			}
		}
		if buf.Len() > 0 {
			headingText := buf.String()
			headings = append(headings, Heading{
				Text: headingText,
				ID:   slug.ForHeading(headingText),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	return headings
}
