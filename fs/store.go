package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/diffscraper"
)

// Ensure Store implements diffscraper.ObjectStore at compile time.
var _ diffscraper.ObjectStore = (*Store)(nil)

// Store reads and writes object files. Writes are atomic: content goes to a
// temporary file in the target directory which is then renamed into place.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// ReadFile returns the content of path. Returns ENOTFOUND if it does not
// exist.
func (s *Store) ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, diffscraper.Errorf(diffscraper.ENOTFOUND, "file %q not found", path)
	}
	return b, err
}

// Exists reports whether path exists.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFile writes b to path, creating parent directories. Returns
// ECONFLICT if path exists and force is false.
func (s *Store) WriteFile(path string, b []byte, force bool) error {
	if !force && s.Exists(path) {
		return diffscraper.Errorf(diffscraper.ECONFLICT, "output file %q already exists", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(tmp.Name(), path)
}
