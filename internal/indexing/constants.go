package indexing

// Indexing constants
const (
	// DefaultIndexFileName is the only file name picked up by discovery
	DefaultIndexFileName = "index.mdx"

	// DefaultURLPrefix is prepended to a document's directory to build its URL
	DefaultURLPrefix = "/docs/"

	// DefaultConcurrency bounds parallel document extraction
	DefaultConcurrency = 16

	// SearchBatchSize is the number of documents per bleve batch
	SearchBatchSize = 100

	// IndexSchemaVersion increments when the document shape or slug rules change
	// v1: folder index documents with structural headings
	IndexSchemaVersion = 1
)
