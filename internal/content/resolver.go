package content

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultExtension is the content file extension
	DefaultExtension = ".mdx"

	// DefaultIndexName is the file that represents a folder's page
	DefaultIndexName = "index.mdx"
)

// strategy produces one candidate location for a slug. ok is false when the
// strategy does not apply to the slug. probe marks candidates that must exist
// on disk to be chosen.
type strategy struct {
	name      string
	candidate func(slug string) (path string, ok bool)
	probe     bool
}

// Resolver maps slugs to content file locations under a root directory.
//
// Candidates are tried in order and the first one that applies (and exists,
// when probed) wins:
//
//  1. explicit: the slug already carries the extension, used as is
//  2. sibling: slug + extension, only if the file exists
//  3. index: slug/index file, returned without checking existence
type Resolver struct {
	root       string
	ext        string
	indexName  string
	strategies []strategy
	exists     func(path string) bool
}

// ResolverOption customises a Resolver
type ResolverOption func(*Resolver)

// WithExtension sets the content file extension (default ".mdx")
func WithExtension(ext string) ResolverOption {
	return func(r *Resolver) {
		if ext != "" {
			r.ext = ext
		}
	}
}

// WithIndexName sets the directory index file name (default "index.mdx")
func WithIndexName(name string) ResolverOption {
	return func(r *Resolver) {
		if name != "" {
			r.indexName = name
		}
	}
}

// NewResolver creates a resolver rooted at root. The root is made absolute so
// every resolved path is absolute too.
func NewResolver(root string, opts ...ResolverOption) *Resolver {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}

	r := &Resolver{
		root:      abs,
		ext:       DefaultExtension,
		indexName: DefaultIndexName,
		exists:    fileExists,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.strategies = []strategy{
		{
			name: "explicit",
			candidate: func(slug string) (string, bool) {
				if !strings.HasSuffix(slug, r.ext) {
					return "", false
				}
				return r.join(slug), true
			},
		},
		{
			name: "sibling",
			candidate: func(slug string) (string, bool) {
				return r.join(slug + r.ext), true
			},
			probe: true,
		},
		{
			name: "index",
			candidate: func(slug string) (string, bool) {
				return r.join(slug, r.indexName), true
			},
		},
	}
	return r
}

// Root returns the absolute content root
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the content file location for slug. The returned path may
// not exist; callers find out when they read it.
func (r *Resolver) Resolve(slug string) string {
	path, _ := r.resolve(slug)
	return path
}

// resolve also reports which strategy produced the path
func (r *Resolver) resolve(slug string) (string, string) {
	for _, s := range r.strategies {
		path, ok := s.candidate(slug)
		if !ok {
			continue
		}
		if s.probe && !r.exists(path) {
			continue
		}
		return path, s.name
	}
	// unreachable: the index strategy always applies
	return r.join(slug, r.indexName), "index"
}

// Contains reports whether path lies inside the content root
func (r *Resolver) Contains(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (r *Resolver) join(parts ...string) string {
	return filepath.Join(append([]string{r.root}, parts...)...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
