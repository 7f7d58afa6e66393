package fs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/diffscraper"
)

// Ensure Loader implements diffscraper.DocumentLoader at compile time.
var _ diffscraper.DocumentLoader = (*Loader)(nil)

// Loader loads documents from the filesystem. Sources that are HTTP(S) URLs
// are retrieved with Fetcher when one is configured.
type Loader struct {
	Fetcher diffscraper.Fetcher
}

// NewLoader creates a new Loader. fetcher may be nil, in which case URL
// sources are rejected.
func NewLoader(fetcher diffscraper.Fetcher) *Loader {
	return &Loader{Fetcher: fetcher}
}

// LoadDocuments loads every source in order. It stops at the first source
// that cannot be loaded.
func (l *Loader) LoadDocuments(ctx context.Context, sources []string) ([]*diffscraper.Document, error) {
	docs := make([]*diffscraper.Document, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := l.load(ctx, src)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &diffscraper.Document{
			Path:    src,
			Content: content,
			Size:    len(content),
		})
	}
	return docs, nil
}

func (l *Loader) load(ctx context.Context, src string) (string, error) {
	if IsURL(src) {
		if l.Fetcher == nil {
			return "", diffscraper.Errorf(diffscraper.EINVALID, "cannot load %q: URL sources are not enabled", src)
		}
		content, err := l.Fetcher.Fetch(ctx, src)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", src, err)
		}
		return content, nil
	}

	b, err := os.ReadFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return "", diffscraper.Errorf(diffscraper.ENOTFOUND, "input file %q not found", src)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}
