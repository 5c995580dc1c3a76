package indexing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krakend/docsite/internal/content"
)

// relativeDir returns the slash separated directory of file relative to
// root. The root's own index file has an empty relative directory.
func relativeDir(root, file string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", file, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", nil
	}
	return rel, nil
}

// folderName returns the last segment of a slash separated relative path
func folderName(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// ExtractDocument reads one index file and builds its search document.
// Failures carry content.ErrNotFound, content.ErrIO or content.ErrParse.
func ExtractDocument(root, file, urlPrefix string) (SearchDocument, error) {
	source, err := content.ReadFile(file)
	if err != nil {
		return SearchDocument{}, err
	}

	meta, body, err := content.ParseFrontMatter(file, source)
	if err != nil {
		return SearchDocument{}, err
	}

	rel, err := relativeDir(root, file)
	if err != nil {
		return SearchDocument{}, &content.Error{Kind: content.ErrIO, Path: file, Err: err}
	}

	title := meta.Title
	if title == "" {
		title = rel
	}

	return SearchDocument{
		ID:         rel,
		Title:      title,
		FolderName: folderName(rel),
		Content:    PlainText(body),
		URL:        urlPrefix + rel,
		Headings:   ExtractHeadings(body),
	}, nil
}
