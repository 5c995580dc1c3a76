package indexing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configures an Indexer
type Options struct {
	Root          string // content root
	IndexFileName string // defaults to DefaultIndexFileName
	URLPrefix     string // defaults to DefaultURLPrefix
	Concurrency   int    // defaults to DefaultConcurrency
}

// Indexer builds the search documents for a whole content tree
type Indexer struct {
	root        string
	indexName   string
	urlPrefix   string
	concurrency int
	log         zerolog.Logger
}

// NewIndexer creates an indexer, filling in defaults for empty options
func NewIndexer(opts Options, log zerolog.Logger) *Indexer {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		root = filepath.Clean(opts.Root)
	}

	idx := &Indexer{
		root:        root,
		indexName:   opts.IndexFileName,
		urlPrefix:   opts.URLPrefix,
		concurrency: opts.Concurrency,
		log:         log,
	}
	if idx.indexName == "" {
		idx.indexName = DefaultIndexFileName
	}
	if idx.urlPrefix == "" {
		idx.urlPrefix = DefaultURLPrefix
	}
	if idx.concurrency <= 0 {
		idx.concurrency = DefaultConcurrency
	}
	return idx
}

// Root returns the absolute content root
func (i *Indexer) Root() string {
	return i.root
}

// Build discovers every index file and extracts its search document.
// Documents come back in discovery order regardless of which extraction
// finishes first. Any single failure fails the whole build and no documents
// are returned.
func (i *Indexer) Build(ctx context.Context) ([]SearchDocument, error) {
	start := time.Now()

	files, err := Discover(ctx, i.root, i.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}
	i.log.Info().
		Str("root", i.root).
		Int("documents", len(files)).
		Msg("Discovered index documents")

	docs := make([]SearchDocument, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for pos, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := ExtractDocument(i.root, file, i.urlPrefix)
			if err != nil {
				return err
			}
			docs[pos] = doc
			i.log.Debug().
				Str("file", file).
				Int("headings", len(doc.Headings)).
				Msg("Extracted document")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	i.log.Info().
		Int("documents", len(docs)).
		Dur("elapsed", time.Since(start).Round(time.Millisecond)).
		Msg("✓ Extracted all documents")
	return docs, nil
}
