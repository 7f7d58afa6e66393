// Package fs provides file-based loading of documents and storage of
// serialized templates and data objects.
package fs

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DataExt is the extension appended to compressed documents.
const DataExt = ".data"

// IsURL reports whether source refers to an HTTP(S) resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// BaseName returns the file name used for outputs derived from source.
// File paths keep their base name. URLs are named after host and path.
// Example: https://example.com/pubs/42 → example.com_pubs_42
func BaseName(source string) (string, error) {
	if !IsURL(source) {
		return filepath.Base(source), nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", err
	}

	path := strings.Trim(u.Path, "/")

	// Root or trailing slash → index
	if path == "" || strings.HasSuffix(u.Path, "/") {
		path = strings.TrimPrefix(path+"/index", "/")
	}

	return u.Host + "_" + strings.ReplaceAll(path, "/", "_"), nil
}

// DataPath returns where the compressed form of source is written in dir.
func DataPath(dir, source string) (string, error) {
	name, err := BaseName(source)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+DataExt), nil
}

// DocumentPath returns where the document reconstructed from dataFile is
// written in dir: the data file's base name without its last extension.
func DocumentPath(dir, dataFile string) string {
	base := filepath.Base(dataFile)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
}
