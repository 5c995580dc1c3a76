package indexing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// MarshalDocuments serializes documents as indented JSON. Nil slices are
// written as empty arrays so the artifact shape never varies.
func MarshalDocuments(docs []SearchDocument) ([]byte, error) {
	out := make([]SearchDocument, len(docs))
	for i, doc := range docs {
		if doc.Headings == nil {
			doc.Headings = []Heading{}
		}
		out[i] = doc
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode search index: %w", err)
	}
	return append(data, '\n'), nil
}

// Checksum returns the xxhash of an artifact as hex
func Checksum(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// WriteDocuments validates and writes the search index artifact to path,
// replacing any previous artifact, and returns the checksum of what was
// written. The file is written to a temp file in the same directory and
// renamed into place, so readers never see a partial file.
func WriteDocuments(path string, docs []SearchDocument) (string, error) {
	data, err := MarshalDocuments(docs)
	if err != nil {
		return "", err
	}
	if err := ValidateArtifact(data); err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write search index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close search index: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set search index permissions: %w", err)
	}

	// Atomic filesystem swap: rename temp to final location
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to replace search index: %w", err)
	}
	return Checksum(data), nil
}
