package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata header of a document
type FrontMatter struct {
	Title string
	Raw   map[string]any
}

type frontMatterEnvelope struct {
	Title  string         `yaml:"title" toml:"title" json:"title"`
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its front matter and body. A document
// without a header block yields empty front matter and the whole source as
// body. Malformed headers are reported as ErrParse.
func ParseFrontMatter(path string, source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, &Error{Kind: ErrParse, Path: path, Err: err}
	}

	raw := make(map[string]any, len(meta.Custom)+1)
	for key, value := range meta.Custom {
		raw[key] = normalizeValue(value)
	}
	// Title is kept as declared; only an empty value counts as missing
	if meta.Title != "" {
		raw["title"] = meta.Title
	}

	return FrontMatter{Title: meta.Title, Raw: raw}, body, nil
}

// normalizeValue converts YAML decoded maps keyed by interface{} into
// map[string]any, recursively, so front matter can be encoded as JSON
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
