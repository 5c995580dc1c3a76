package tools

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/rs/zerolog"

	"github.com/krakend/docsite/internal/indexing"
)

// Index is the subset of bleve.Index the page tools rely on. Tests swap in
// a mock.
type Index interface {
	Search(req *bleve.SearchRequest) (*bleve.SearchResult, error)
	DocCount() (uint64, error)
	Close() error
}

// bleveIndexWrapper wraps a bleve.Index to implement Index
type bleveIndexWrapper struct {
	index bleve.Index
}

// NewBleveIndexWrapper wraps a bleve.Index
func NewBleveIndexWrapper(index bleve.Index) Index {
	return &bleveIndexWrapper{index: index}
}

func (w *bleveIndexWrapper) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	return w.index.Search(req)
}

func (w *bleveIndexWrapper) DocCount() (uint64, error) {
	return w.index.DocCount()
}

func (w *bleveIndexWrapper) Close() error {
	return w.index.Close()
}

// openIndex opens the bleve index at dir. Indexes written with another
// schema version are refused so stale documents are never served.
func openIndex(dir string) (Index, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("search index not found at %s: %w", dir, err)
	}
	if v := indexing.ReadIndexVersion(dir); v != indexing.IndexSchemaVersion {
		return nil, fmt.Errorf("search index schema mismatch (have: v%d, want: v%d)", v, indexing.IndexSchemaVersion)
	}
	// Read-only: the pipeline replaces the directory underneath open indexes
	index, err := bleve.OpenUsing(dir, map[string]interface{}{"read_only": true})
	if err != nil {
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}
	return NewBleveIndexWrapper(index), nil
}

// indexHolder manages concurrent access to the open search index
type indexHolder struct {
	// current holds the active index pointer (atomic access for lock-free reads)
	current atomic.Pointer[Index]

	// rebuildMu serializes rebuilds. Searches never take it.
	rebuildMu sync.Mutex

	// wg tracks in-flight searches so a replaced index is closed only once
	// nobody is reading it
	wg sync.WaitGroup
}

// acquire returns the current index and a release func. The index is nil
// when none is open; release must be called either way.
func (h *indexHolder) acquire() (Index, func()) {
	// Track in-flight searches for graceful cleanup (MUST be before Load)
	h.wg.Add(1)
	ptr := h.current.Load()
	if ptr == nil {
		return nil, h.wg.Done
	}
	return *ptr, h.wg.Done
}

// swap installs next as the current index and closes the previous one in
// the background once in-flight searches drain
func (h *indexHolder) swap(next Index, log zerolog.Logger) {
	old := h.current.Swap(&next)
	if old == nil {
		return
	}

	go func(oldPtr *Index) {
		h.wg.Wait()
		if err := (*oldPtr).Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing old search index")
			return
		}
		log.Debug().Msg("✓ Old search index closed")
	}(old)
}

// close detaches the current index and closes it after in-flight searches
// complete
func (h *indexHolder) close() error {
	ptr := h.current.Swap(nil)
	if ptr == nil {
		return nil
	}
	h.wg.Wait()
	return (*ptr).Close()
}
