package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krakend/docsite/internal/content"
)

func TestExtractToc(t *testing.T) {
	raw := `---
title: Rate limiting
---

# Rate limiting

Intro paragraph.

## Endpoint rate limit

### Configuration **options**

#### Per client

##### Too deep

###### Far too deep

##NoSpace

  ## Indented heading

## Endpoint rate limit
`

	want := []content.TocEntry{
		{Level: 2, Text: "Endpoint rate limit", Href: "#endpoint-rate-limit"},
		{Level: 3, Text: "Configuration **options**", Href: "#configuration-options"},
		{Level: 4, Text: "Per client", Href: "#per-client"},
		{Level: 2, Text: "Endpoint rate limit", Href: "#endpoint-rate-limit"},
	}

	assert.Equal(t, want, content.ExtractToc(raw))
}

func TestExtractTocTrimsText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want content.TocEntry
	}{
		{
			name: "trailing spaces",
			raw:  "## Title   \n",
			want: content.TocEntry{Level: 2, Text: "Title", Href: "#title"},
		},
		{
			name: "extra leading space",
			raw:  "##  Two spaces",
			want: content.TocEntry{Level: 2, Text: "Two spaces", Href: "#two-spaces"},
		},
		{
			name: "windows line endings",
			raw:  "## First\r\n## Second\r\n",
			want: content.TocEntry{Level: 2, Text: "First", Href: "#first"},
		},
		{
			name: "tab separator",
			raw:  "###\tTabbed",
			want: content.TocEntry{Level: 3, Text: "Tabbed", Href: "#tabbed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := content.ExtractToc(tt.raw)
			if assert.NotEmpty(t, entries) {
				assert.Equal(t, tt.want, entries[0])
			}
		})
	}
}

func TestExtractTocPlainTextSlugs(t *testing.T) {
	entries := content.ExtractToc("## Step 1 Install the CLI\n### API Keys")

	assert.Equal(t, []content.TocEntry{
		{Level: 2, Text: "Step 1 Install the CLI", Href: "#step-1-install-the-cli"},
		{Level: 3, Text: "API Keys", Href: "#api-keys"},
	}, entries)
}

func TestExtractTocEmpty(t *testing.T) {
	entries := content.ExtractToc("no headings here\n# only h1")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExtractTocRestartable(t *testing.T) {
	raw := "## One\n## Two"
	first := content.ExtractToc(raw)
	first[0].Text = "changed"

	assert.Equal(t, "One", content.ExtractToc(raw)[0].Text)
}
