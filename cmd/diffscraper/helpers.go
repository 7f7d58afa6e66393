package main

import (
	"fmt"

	"github.com/fwojciec/diffscraper"
)

// loadTemplate reads and decodes the template object at path.
func loadTemplate(deps *Dependencies, path string) (*diffscraper.Template, error) {
	b, err := deps.Store.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err := deps.Codec.DecodeTemplate(b)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

// writeTemplate encodes tmpl and writes it to path.
func writeTemplate(deps *Dependencies, path string, tmpl *diffscraper.Template, force bool) error {
	b, err := deps.Codec.EncodeTemplate(tmpl)
	if err != nil {
		return err
	}
	return deps.Store.WriteFile(path, b, force)
}

// fail prints err to stderr in the form users see and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", diffscraper.ErrorMessage(err))
	return err
}
