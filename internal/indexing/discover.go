package indexing

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Discover walks root and returns every file named indexName, at any depth,
// in lexical walk order. Other files are ignored no matter where they live.
func Discover(ctx context.Context, root, indexName string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error walking the path %q: %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Name() != indexName {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
