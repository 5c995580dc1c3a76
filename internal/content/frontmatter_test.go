package content_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakend/docsite/internal/content"
)

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: \"Foo\"\nsidebar: guides\n---\n# Foo\n\nSome **bold** text\n")

	meta, body, err := content.ParseFrontMatter("a/index.mdx", source)
	require.NoError(t, err)

	assert.Equal(t, "Foo", meta.Title)
	assert.Equal(t, "Foo", meta.Raw["title"])
	assert.Equal(t, "guides", meta.Raw["sidebar"])
	assert.Contains(t, string(body), "# Foo")
	assert.NotContains(t, string(body), "title:")
}

func TestParseFrontMatterMissingHeader(t *testing.T) {
	source := []byte("# Plain\n\nNo metadata here.\n")

	meta, body, err := content.ParseFrontMatter("plain.mdx", source)
	require.NoError(t, err)

	assert.Empty(t, meta.Title)
	assert.Equal(t, string(source), string(body))
}

func TestParseFrontMatterMalformed(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\nbody\n")

	_, _, err := content.ParseFrontMatter("broken.mdx", source)
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrParse))
	assert.Contains(t, err.Error(), "broken.mdx")
}

func TestParseFrontMatterNestedValues(t *testing.T) {
	source := []byte("---\ntitle: Guides\nsidebar:\n  order: 1\n  badge:\n    text: new\ntags:\n  - name: api\n---\nbody\n")

	meta, _, err := content.ParseFrontMatter("guides/index.mdx", source)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"order": 1,
		"badge": map[string]any{"text": "new"},
	}, meta.Raw["sidebar"])
	assert.Equal(t, []any{map[string]any{"name": "api"}}, meta.Raw["tags"])

	data, err := json.Marshal(meta.Raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Guides","sidebar":{"order":1,"badge":{"text":"new"}},"tags":[{"name":"api"}]}`, string(data))
}

func TestParseFrontMatterTitleKeptAsDeclared(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "quoted with outer spaces", source: "---\ntitle: \"  Spaced  \"\n---\n", want: "  Spaced  "},
		{name: "whitespace only", source: "---\ntitle: \" \"\n---\n", want: " "},
		{name: "empty", source: "---\ntitle: \"\"\n---\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, _, err := content.ParseFrontMatter("page.mdx", []byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.want, meta.Title)
		})
	}
}
