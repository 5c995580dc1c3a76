package tools

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
)

// mockIndex is an in-memory Index returning canned hits
type mockIndex struct {
	docCount    uint64
	hits        search.DocumentMatchCollection
	searchError error
	closeError  error
	closed      atomic.Bool

	mu      sync.Mutex
	lastReq *bleve.SearchRequest
}

func newMockIndex(hits ...*search.DocumentMatch) *mockIndex {
	return &mockIndex{
		docCount: uint64(len(hits)),
		hits:     hits,
	}
}

func (m *mockIndex) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("index closed")
	}
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()

	if m.searchError != nil {
		return nil, m.searchError
	}
	return &bleve.SearchResult{
		Request: req,
		Hits:    m.hits,
		Total:   uint64(len(m.hits)),
	}, nil
}

func (m *mockIndex) DocCount() (uint64, error) {
	if m.closed.Load() {
		return 0, fmt.Errorf("index closed")
	}
	return m.docCount, nil
}

func (m *mockIndex) Close() error {
	if m.closed.Swap(true) {
		return fmt.Errorf("already closed")
	}
	return m.closeError
}

func (m *mockIndex) IsClosed() bool {
	return m.closed.Load()
}

func (m *mockIndex) LastRequest() *bleve.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}
