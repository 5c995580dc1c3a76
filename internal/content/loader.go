package content

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Page is a single document prepared for rendering
type Page struct {
	Slug        string
	Path        string
	Title       string
	FrontMatter FrontMatter
	Body        []byte
	Toc         []TocEntry
}

// Loader serves the on-demand render path: one slug, one file read.
type Loader struct {
	resolver *Resolver
	log      zerolog.Logger
}

// NewLoader creates a page loader on top of resolver
func NewLoader(resolver *Resolver, log zerolog.Logger) *Loader {
	return &Loader{resolver: resolver, log: log}
}

// Resolver returns the underlying resolver
func (l *Loader) Resolver() *Resolver {
	return l.resolver
}

// Load resolves slug, reads the file and prepares the page. Errors carry
// ErrNotFound, ErrParse or ErrIO; the slug is logged before returning.
func (l *Loader) Load(ctx context.Context, slug string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	path, strategy := l.resolver.resolve(slug)

	page, err := l.load(slug, path)
	if err != nil {
		l.log.Error().
			Err(err).
			Str("slug", slug).
			Str("path", path).
			Str("strategy", strategy).
			Msg("Failed to load page")
		return nil, err
	}

	l.log.Debug().
		Str("slug", slug).
		Str("path", path).
		Str("strategy", strategy).
		Int("toc_entries", len(page.Toc)).
		Dur("elapsed", time.Since(start)).
		Msg("Page loaded")
	return page, nil
}

func (l *Loader) load(slug, path string) (*Page, error) {
	if !l.resolver.Contains(path) {
		return nil, &Error{Kind: ErrNotFound, Path: path}
	}

	source, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	meta, body, err := ParseFrontMatter(path, source)
	if err != nil {
		return nil, err
	}

	return &Page{
		Slug:        slug,
		Path:        path,
		Title:       meta.Title,
		FrontMatter: meta,
		Body:        body,
		Toc:         ExtractToc(string(source)),
	}, nil
}
