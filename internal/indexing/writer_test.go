package indexing_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakend/docsite/internal/indexing"
)

var sampleDocs = []indexing.SearchDocument{
	{
		ID:         "a",
		Title:      "Foo",
		FolderName: "a",
		Content:    "Foo Some bold text",
		URL:        "/docs/a",
		Headings:   []indexing.Heading{{Text: "Foo", ID: "foo"}},
	},
	{
		ID:         "a/b",
		Title:      "a/b",
		FolderName: "b",
		Content:    "",
		URL:        "/docs/a/b",
	},
}

func TestMarshalDocuments(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		data, err := indexing.MarshalDocuments(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("nil headings become empty array", func(t *testing.T) {
		data, err := indexing.MarshalDocuments(sampleDocs)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, []any{}, decoded[1]["headings"])
		assert.Contains(t, decoded[0], "folderName")
	})

	t.Run("pretty printed", func(t *testing.T) {
		data, err := indexing.MarshalDocuments(sampleDocs[:1])
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  {\n    \"id\": \"a\",")
	})
}

func TestWriteDocuments(t *testing.T) {
	t.Run("writes and overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "public", "search-index.json")

		_, err := indexing.WriteDocuments(path, sampleDocs)
		require.NoError(t, err)
		sum, err := indexing.WriteDocuments(path, sampleDocs[:1])
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, indexing.Checksum(data), sum)

		var decoded []indexing.SearchDocument
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Len(t, decoded, 1)

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files must not be left behind")
	})

	t.Run("empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "search-index.json")
		_, err := indexing.WriteDocuments(path, []indexing.SearchDocument{})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("multi-line content rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "search-index.json")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

		bad := []indexing.SearchDocument{{ID: "x", Content: "line one\nline two"}}
		_, err := indexing.WriteDocuments(path, bad)
		require.Error(t, err)

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "previous", string(data))
	})
}

func TestValidateArtifact(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty array", input: `[]`},
		{
			name:  "complete document",
			input: `[{"id":"a","title":"A","folderName":"a","content":"x","url":"/docs/a","headings":[{"text":"A","id":"a"}]}]`,
		},
		{name: "not an array", input: `{}`, wantErr: true},
		{name: "missing field", input: `[{"id":"a"}]`, wantErr: true},
		{
			name:    "unknown field",
			input:   `[{"id":"a","title":"A","folderName":"a","content":"x","url":"/docs/a","headings":[],"score":1}]`,
			wantErr: true,
		},
		{name: "invalid json", input: `[`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := indexing.ValidateArtifact([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
