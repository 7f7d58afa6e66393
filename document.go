package diffscraper

import "context"

// Document is one input document, loaded from a file or fetched from a URL.
type Document struct {
	Path    string
	Content string
	Size    int
}

// DocumentLoader loads documents from file paths or URLs, preserving the
// order of sources.
type DocumentLoader interface {
	LoadDocuments(ctx context.Context, sources []string) ([]*Document, error)
}

// ObjectStore reads and writes serialized objects.
type ObjectStore interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile writes b to path. Returns ECONFLICT if path exists and
	// force is false.
	WriteFile(path string, b []byte, force bool) error

	Exists(path string) bool
}

// Contents returns the content of each document in order.
func Contents(docs []*Document) []string {
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	return contents
}
