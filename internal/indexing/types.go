package indexing

// SearchDocument is one indexed folder page in the search artifact
type SearchDocument struct {
	ID         string    `json:"id"`         // directory path relative to the content root
	Title      string    `json:"title"`      // front matter title, or ID when absent
	FolderName string    `json:"folderName"` // last segment of ID
	Content    string    `json:"content"`    // plain text body on a single line
	URL        string    `json:"url"`
	Headings   []Heading `json:"headings"`
}

// Heading is a heading of the document with its anchor id
type Heading struct {
	Text string `json:"text"`
	ID   string `json:"id"`
}
