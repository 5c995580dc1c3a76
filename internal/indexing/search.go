package indexing

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/rs/zerolog"
)

// VersionFileName sits next to the bleve index directory and records the
// IndexSchemaVersion it was built with
const VersionFileName = ".index_version"

// BuildSearchIndex writes docs into a fresh bleve index at dir. The index is
// built in a temp directory and swapped into place once complete, replacing
// any previous index.
func BuildSearchIndex(dir string, docs []SearchDocument, log zerolog.Logger) error {
	startTime := time.Now()
	tempDir := dir + ".tmp"

	// Clean up any leftover temp index from previous crash
	os.RemoveAll(tempDir)

	if err := os.MkdirAll(filepath.Dir(tempDir), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	mapping := bleve.NewIndexMapping()
	index, err := bleve.New(tempDir, mapping)
	if err != nil {
		return fmt.Errorf("failed to create temp index: %w", err)
	}

	batch := index.NewBatch()
	for i, doc := range docs {
		if err := batch.Index(documentKey(doc), doc); err != nil {
			index.Close()
			os.RemoveAll(tempDir)
			return fmt.Errorf("failed to add document %q to batch: %w", doc.ID, err)
		}

		// Submit batch every SearchBatchSize documents
		if (i+1)%SearchBatchSize == 0 {
			if err := index.Batch(batch); err != nil {
				index.Close()
				os.RemoveAll(tempDir)
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
			log.Debug().Msgf("Indexed %d/%d documents...", i+1, len(docs))
		}
	}

	// Submit remaining
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			os.RemoveAll(tempDir)
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}

	if err := index.Close(); err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("failed to close temp index: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		os.RemoveAll(tempDir)
		return fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.Rename(tempDir, dir); err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("failed to rename temp index: %w", err)
	}

	if err := WriteIndexVersion(dir); err != nil {
		log.Warn().Err(err).Msg("Failed to write index version")
	}

	log.Info().
		Str("location", dir).
		Int("documents", len(docs)).
		Dur("elapsed", time.Since(startTime).Round(time.Millisecond)).
		Msg("✓ Search index built")
	return nil
}

// documentKey is the bleve document id. The root index document has an empty
// ID, which bleve rejects, so it is stored under "/".
func documentKey(doc SearchDocument) string {
	if doc.ID == "" {
		return "/"
	}
	return doc.ID
}

// DocumentID maps a bleve document id back to a SearchDocument ID
func DocumentID(key string) string {
	if key == "/" {
		return ""
	}
	return key
}

// WriteIndexVersion records IndexSchemaVersion next to the index at dir
func WriteIndexVersion(dir string) error {
	versionPath := filepath.Join(filepath.Dir(dir), VersionFileName)
	content := strconv.Itoa(IndexSchemaVersion)
	return os.WriteFile(versionPath, []byte(content), 0644)
}

// ReadIndexVersion returns the schema version of the index at dir, 0 if unknown
func ReadIndexVersion(dir string) int {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(dir), VersionFileName))
	if err != nil {
		return 0
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return version
}
