package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/krakend/docsite/internal/content"
	"github.com/krakend/docsite/internal/indexing"
	"github.com/krakend/docsite/internal/navigation"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 50
)

// GetPageInput defines input for get_page tool
type GetPageInput struct {
	Slug string `json:"slug" jsonschema:"Page slug relative to the content root, e.g. guides/install"`
}

// GetPageOutput defines output for get_page tool
type GetPageOutput struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Path        string             `json:"path"`
	URL         string             `json:"url"`
	FrontMatter map[string]any     `json:"front_matter"`
	Toc         []content.TocEntry `json:"toc"`
	Prev        *navigation.Route  `json:"prev,omitempty"`
	Next        *navigation.Route  `json:"next,omitempty"`
}

// GetPageNavigationInput defines input for get_page_navigation tool
type GetPageNavigationInput struct {
	Path string `json:"path" jsonschema:"Route path as listed in the route table, e.g. /docs/guides/install"`
}

// GetPageNavigationOutput defines output for get_page_navigation tool
type GetPageNavigationOutput struct {
	Path string            `json:"path"`
	Prev *navigation.Route `json:"prev,omitempty"`
	Next *navigation.Route `json:"next,omitempty"`
}

// FindPagesInput defines input for find_pages tool
type FindPagesInput struct {
	Query      string `json:"query" jsonschema:"Words to look for in page titles, headings and text"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of pages (optional, defaults to 10)"`
}

// PageMatch is one page returned by find_pages
type PageMatch struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FolderName string `json:"folder_name"`
	URL        string `json:"url"`
}

// FindPagesOutput defines output for find_pages tool. Matches are ordered by
// page id, not by relevance.
type FindPagesOutput struct {
	Query     string      `json:"query"`
	TotalHits int         `json:"total_hits"`
	Pages     []PageMatch `json:"pages"`
}

// RebuildSearchIndexInput defines input for rebuild_search_index tool
type RebuildSearchIndexInput struct{}

// RebuildSearchIndexOutput defines output for rebuild_search_index tool
type RebuildSearchIndexOutput struct {
	Documents      int    `json:"documents"`
	Headings       int    `json:"headings"`
	Checksum       string `json:"checksum"`
	OutputFile     string `json:"output_file"`
	SearchIndexDir string `json:"search_index_dir"`
	DurationMS     int64  `json:"duration_ms"`
	Message        string `json:"message"`
}

// Toolkit exposes the content pipeline as MCP tools
type Toolkit struct {
	loader    *content.Loader
	routes    *navigation.Routes
	pipeline  *indexing.Pipeline
	urlPrefix string
	index     *indexHolder
	log       zerolog.Logger
}

// NewToolkit wires the page tools. pipeline may be nil, in which case
// find_pages and rebuild_search_index report an error.
func NewToolkit(loader *content.Loader, routes *navigation.Routes, pipeline *indexing.Pipeline, urlPrefix string, log zerolog.Logger) *Toolkit {
	if routes == nil {
		routes = navigation.New(nil)
	}
	if urlPrefix == "" {
		urlPrefix = indexing.DefaultURLPrefix
	}
	return &Toolkit{
		loader:    loader,
		routes:    routes,
		pipeline:  pipeline,
		urlPrefix: urlPrefix,
		index:     &indexHolder{},
		log:       log,
	}
}

// OpenSearchIndex opens the search index written by a previous rebuild
func (t *Toolkit) OpenSearchIndex() error {
	if t.pipeline == nil || t.pipeline.SearchIndexDir == "" {
		return fmt.Errorf("no search index configured")
	}
	start := time.Now()
	index, err := openIndex(t.pipeline.SearchIndexDir)
	if err != nil {
		return err
	}
	t.index.swap(index, t.log)

	count, _ := index.DocCount()
	t.log.Info().
		Uint64("documents", count).
		Dur("elapsed", time.Since(start).Round(time.Millisecond)).
		Msg("✓ Search index opened")
	return nil
}

// ensureIndex lazily opens an index built by the batch indexer
func (t *Toolkit) ensureIndex() error {
	t.index.rebuildMu.Lock()
	defer t.index.rebuildMu.Unlock()

	// Re-check after acquiring lock, another call may have opened it
	if t.index.current.Load() != nil {
		return nil
	}
	return t.OpenSearchIndex()
}

// pageURL maps a slug to the route path it is published under
func (t *Toolkit) pageURL(slug string) string {
	return t.urlPrefix + strings.Trim(slug, "/")
}

// GetPage loads one page with its table of contents and neighbors
func (t *Toolkit) GetPage(ctx context.Context, req *mcp.CallToolRequest, input GetPageInput) (*mcp.CallToolResult, GetPageOutput, error) {
	page, err := t.loader.Load(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, GetPageOutput{}, fmt.Errorf("page %q not found", input.Slug)
		}
		return nil, GetPageOutput{}, fmt.Errorf("failed to load page %q: %w", input.Slug, err)
	}

	url := t.pageURL(page.Slug)
	neighbors := t.routes.PreviousNext(url)

	return nil, GetPageOutput{
		Slug:        page.Slug,
		Title:       page.Title,
		Path:        page.Path,
		URL:         url,
		FrontMatter: page.FrontMatter.Raw,
		Toc:         page.Toc,
		Prev:        neighbors.Prev,
		Next:        neighbors.Next,
	}, nil
}

// GetPageNavigation returns the previous and next routes around a path
func (t *Toolkit) GetPageNavigation(ctx context.Context, req *mcp.CallToolRequest, input GetPageNavigationInput) (*mcp.CallToolResult, GetPageNavigationOutput, error) {
	neighbors := t.routes.PreviousNext(input.Path)
	return nil, GetPageNavigationOutput{
		Path: input.Path,
		Prev: neighbors.Prev,
		Next: neighbors.Next,
	}, nil
}

// FindPages looks up pages in the search index. Results are sorted by page
// id and carry no score.
func (t *Toolkit) FindPages(ctx context.Context, req *mcp.CallToolRequest, input FindPagesInput) (*mcp.CallToolResult, FindPagesOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, FindPagesOutput{}, fmt.Errorf("query is required")
	}

	index, release := t.index.acquire()
	if index == nil {
		release()
		if err := t.ensureIndex(); err != nil {
			return nil, FindPagesOutput{}, fmt.Errorf("search index unavailable, run rebuild_search_index: %w", err)
		}
		index, release = t.index.acquire()
		if index == nil {
			release()
			return nil, FindPagesOutput{}, fmt.Errorf("search index unavailable")
		}
	}
	defer release()

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}

	search := bleve.NewSearchRequest(bleve.NewMatchQuery(input.Query))
	search.Size = maxResults
	search.Fields = []string{"*"}
	search.SortBy([]string{"_id"})

	results, err := index.Search(search)
	if err != nil {
		return nil, FindPagesOutput{}, fmt.Errorf("search failed: %w", err)
	}

	pages := make([]PageMatch, 0, len(results.Hits))
	for _, hit := range results.Hits {
		match := PageMatch{ID: indexing.DocumentID(hit.ID)}
		if title, ok := hit.Fields["title"].(string); ok {
			match.Title = title
		}
		if folder, ok := hit.Fields["folderName"].(string); ok {
			match.FolderName = folder
		}
		if url, ok := hit.Fields["url"].(string); ok {
			match.URL = url
		}
		pages = append(pages, match)
	}

	return nil, FindPagesOutput{
		Query:     input.Query,
		TotalHits: int(results.Total),
		Pages:     pages,
	}, nil
}

// RebuildSearchIndex reruns the indexing pipeline and swaps the open search
// index for the new one
func (t *Toolkit) RebuildSearchIndex(ctx context.Context, req *mcp.CallToolRequest, input RebuildSearchIndexInput) (*mcp.CallToolResult, RebuildSearchIndexOutput, error) {
	if t.pipeline == nil {
		return nil, RebuildSearchIndexOutput{}, fmt.Errorf("indexing pipeline not configured")
	}

	// Serialize rebuild operations
	t.index.rebuildMu.Lock()
	defer t.index.rebuildMu.Unlock()

	res, err := t.pipeline.Run(ctx)
	if err != nil {
		return nil, RebuildSearchIndexOutput{}, fmt.Errorf("rebuild failed: %w", err)
	}

	if res.SearchIndexDir != "" {
		if err := t.OpenSearchIndex(); err != nil {
			return nil, RebuildSearchIndexOutput{}, fmt.Errorf("failed to open rebuilt index: %w", err)
		}
	}

	return nil, RebuildSearchIndexOutput{
		Documents:      res.Documents,
		Headings:       res.Headings,
		Checksum:       res.Checksum,
		OutputFile:     res.OutputFile,
		SearchIndexDir: res.SearchIndexDir,
		DurationMS:     res.Duration.Milliseconds(),
		Message:        fmt.Sprintf("Search index rebuilt, %d documents indexed", res.Documents),
	}, nil
}

// Register adds the page tools to server
func (t *Toolkit) Register(server *mcp.Server) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_page",
			Description: "Load a documentation page by slug. Returns its title, source path, table of contents and previous/next pages.",
		},
		t.GetPage,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_page_navigation",
			Description: "Get the previous and next pages around a route path in reading order.",
		},
		t.GetPageNavigation,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "find_pages",
			Description: "Find documentation pages containing the given words. Results are listed by page id, not ranked.",
		},
		t.FindPages,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "rebuild_search_index",
			Description: "Rebuild the search index artifact and the full-text index from the content tree.",
		},
		t.RebuildSearchIndex,
	)

	t.log.Info().Int("tools", 4).Msg("✓ Page tools registered")
}

// Close closes the open search index
func (t *Toolkit) Close() error {
	return t.index.close()
}
