package mock

import (
	"context"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of diffscraper.DocumentLoader.
type DocumentLoader struct {
	LoadDocumentsFn func(ctx context.Context, sources []string) ([]*diffscraper.Document, error)
}

func (l *DocumentLoader) LoadDocuments(ctx context.Context, sources []string) ([]*diffscraper.Document, error) {
	return l.LoadDocumentsFn(ctx, sources)
}

var _ diffscraper.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of diffscraper.ObjectStore.
type ObjectStore struct {
	ReadFileFn  func(path string) ([]byte, error)
	WriteFileFn func(path string, b []byte, force bool) error
	ExistsFn    func(path string) bool
}

func (s *ObjectStore) ReadFile(path string) ([]byte, error) {
	return s.ReadFileFn(path)
}

func (s *ObjectStore) WriteFile(path string, b []byte, force bool) error {
	return s.WriteFileFn(path, b, force)
}

func (s *ObjectStore) Exists(path string) bool {
	return s.ExistsFn(path)
}
