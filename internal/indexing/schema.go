package indexing

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const searchIndexSchemaURL = "https://docsite.local/schema/search-index.json"

// searchIndexSchema describes the artifact consumed by the client-side search
const searchIndexSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["id", "title", "folderName", "content", "url", "headings"],
    "properties": {
      "id": {"type": "string"},
      "title": {"type": "string"},
      "folderName": {"type": "string"},
      "content": {"type": "string", "pattern": "^[^\\n]*$"},
      "url": {"type": "string"},
      "headings": {
        "type": "array",
        "items": {
          "type": "object",
          "additionalProperties": false,
          "required": ["text", "id"],
          "properties": {
            "text": {"type": "string"},
            "id": {"type": "string"}
          }
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(searchIndexSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search index schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(searchIndexSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add search index schema: %w", err)
	}
	schema, err := compiler.Compile(searchIndexSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile search index schema: %w", err)
	}
	return schema, nil
})

// ValidateArtifact checks serialized search index JSON against the schema
func ValidateArtifact(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("search index is not valid JSON: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("search index does not match schema: %w", err)
	}
	return nil
}
