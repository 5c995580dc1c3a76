// Package navigation provides previous/next lookup over the site's ordered
// route table.
package navigation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Route is one page in reading order
type Route struct {
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
}

// Neighbors holds the routes around a page. Either side is nil at the ends
// of the table.
type Neighbors struct {
	Prev *Route `json:"prev,omitempty"`
	Next *Route `json:"next,omitempty"`
}

// Routes is an immutable ordered route table
type Routes struct {
	routes   []Route
	position map[string]int
}

// New builds a route table from an ordered list. The list is copied.
func New(routes []Route) *Routes {
	r := &Routes{
		routes:   append([]Route(nil), routes...),
		position: make(map[string]int, len(routes)),
	}
	for i, route := range r.routes {
		key := normalizePath(route.Path)
		// first occurrence wins for duplicated paths
		if _, ok := r.position[key]; !ok {
			r.position[key] = i
		}
	}
	return r
}

// Load reads a YAML route table: a list of {title, path} entries. A missing
// file yields an empty table.
func Load(path string) (*Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("failed to read routes: %w", err)
	}

	var routes []Route
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse routes %s: %w", path, err)
	}
	return New(routes), nil
}

// Len returns the number of routes
func (r *Routes) Len() int {
	return len(r.routes)
}

// All returns a copy of the routes in order
func (r *Routes) All() []Route {
	return append([]Route(nil), r.routes...)
}

// PreviousNext returns the routes before and after path. Unknown paths have
// no neighbors.
func (r *Routes) PreviousNext(path string) Neighbors {
	i, ok := r.position[normalizePath(path)]
	if !ok {
		return Neighbors{}
	}

	var n Neighbors
	if i > 0 {
		prev := r.routes[i-1]
		n.Prev = &prev
	}
	if i < len(r.routes)-1 {
		next := r.routes[i+1]
		n.Next = &next
	}
	return n
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
