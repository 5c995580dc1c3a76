package indexing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LockFileName is created next to the search index directory while a
// pipeline run is in progress
const LockFileName = ".index.lock"

// Pipeline rebuilds every indexing output from scratch: the JSON search
// artifact and, when SearchIndexDir is set, the bleve index.
type Pipeline struct {
	Indexer        *Indexer
	OutputFile     string
	SearchIndexDir string // optional
	Logger         zerolog.Logger
}

// Result summarises a successful pipeline run
type Result struct {
	Documents      int
	Headings       int
	Checksum       string // xxhash of the written artifact
	OutputFile     string
	SearchIndexDir string
	Duration       time.Duration
}

// lockPath places the lock beside the search index, or beside the artifact
// when no search index is built
func (p *Pipeline) lockPath() string {
	if p.SearchIndexDir != "" {
		return filepath.Join(filepath.Dir(p.SearchIndexDir), LockFileName)
	}
	return filepath.Join(filepath.Dir(p.OutputFile), LockFileName)
}

// Run builds all documents and writes the outputs. On failure nothing is
// written; a previously written artifact is left untouched.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.Indexer == nil {
		return nil, fmt.Errorf("pipeline has no indexer")
	}
	if p.OutputFile == "" {
		return nil, fmt.Errorf("pipeline has no output file")
	}
	start := time.Now()

	lock := NewLock(p.lockPath(), p.Logger)
	if err := lock.Acquire(); err != nil {
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			p.Logger.Warn().Err(err).Msg("Failed to release index lock")
		}
	}()

	docs, err := p.Indexer.Build(ctx)
	if err != nil {
		return nil, err
	}

	checksum, err := WriteDocuments(p.OutputFile, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to write search index: %w", err)
	}
	p.Logger.Info().
		Str("file", p.OutputFile).
		Str("checksum", checksum).
		Int("documents", len(docs)).
		Msg("✓ Search index written")

	if p.SearchIndexDir != "" {
		if err := BuildSearchIndex(p.SearchIndexDir, docs, p.Logger); err != nil {
			return nil, err
		}
	}

	headings := 0
	for _, doc := range docs {
		headings += len(doc.Headings)
	}

	return &Result{
		Documents:      len(docs),
		Headings:       headings,
		Checksum:       checksum,
		OutputFile:     p.OutputFile,
		SearchIndexDir: p.SearchIndexDir,
		Duration:       time.Since(start),
	}, nil
}
