package content_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakend/docsite/internal/content"
)

func TestLoaderLoad(t *testing.T) {
	root := writeTree(t, map[string]string{
		"getting-started.mdx": "---\ntitle: Getting started\n---\n\n## Install\n\n## Run it\n",
		"guides/index.mdx":    "---\ntitle: Guides\n---\n\n## Overview\n",
	})
	loader := content.NewLoader(content.NewResolver(root), zerolog.Nop())

	page, err := loader.Load(context.Background(), "getting-started")
	require.NoError(t, err)

	assert.Equal(t, "getting-started", page.Slug)
	assert.Equal(t, filepath.Join(root, "getting-started.mdx"), page.Path)
	assert.Equal(t, "Getting started", page.Title)
	assert.Equal(t, []content.TocEntry{
		{Level: 2, Text: "Install", Href: "#install"},
		{Level: 2, Text: "Run it", Href: "#run-it"},
	}, page.Toc)
	assert.NotContains(t, string(page.Body), "title:")

	page, err = loader.Load(context.Background(), "guides")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "guides", "index.mdx"), page.Path)
	assert.Equal(t, "Guides", page.Title)
}

func TestLoaderNotFoundLogsSlug(t *testing.T) {
	var buf bytes.Buffer
	loader := content.NewLoader(content.NewResolver(t.TempDir()), zerolog.New(&buf))

	_, err := loader.Load(context.Background(), "missing/page")
	require.Error(t, err)

	assert.True(t, errors.Is(err, content.ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, buf.String(), `"slug":"missing/page"`)

	var contentErr *content.Error
	require.True(t, errors.As(err, &contentErr))
	assert.True(t, strings.HasSuffix(contentErr.Path, filepath.Join("missing", "page", "index.mdx")))
}

func TestLoaderParseFailure(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.mdx": "---\ntitle: [unclosed\n---\n## Heading\n"})
	loader := content.NewLoader(content.NewResolver(root), zerolog.Nop())

	_, err := loader.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrParse))
}

func TestLoaderRejectsPathsOutsideRoot(t *testing.T) {
	parent := writeTree(t, map[string]string{
		"secret.mdx":     "## Secret",
		"docs/index.mdx": "## Docs",
	})
	loader := content.NewLoader(content.NewResolver(filepath.Join(parent, "docs")), zerolog.Nop())

	_, err := loader.Load(context.Background(), "../secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrNotFound))
}

func TestLoaderCancelledContext(t *testing.T) {
	loader := content.NewLoader(content.NewResolver(t.TempDir()), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}
