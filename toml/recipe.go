// Package toml reads and writes scrape recipes as TOML documents.
package toml

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/diffscraper"
	"github.com/pelletier/go-toml/v2"
)

var _ diffscraper.RecipeLoader = (*RecipeLoader)(nil)

// RecipeLoader loads recipes from TOML files. A relative template path is
// resolved against the directory of the recipe file.
type RecipeLoader struct{}

// NewRecipeLoader creates a new RecipeLoader.
func NewRecipeLoader() *RecipeLoader {
	return &RecipeLoader{}
}

// LoadRecipe reads and validates the recipe at path. Unknown keys are
// rejected so that misspelled options do not silently take defaults.
func (l *RecipeLoader) LoadRecipe(path string) (*diffscraper.Recipe, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, diffscraper.Errorf(diffscraper.ENOTFOUND, "recipe %s not found", path)
	}
	if err != nil {
		return nil, err
	}

	recipe, err := Decode(b)
	if err != nil {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "recipe %s: %s", path, diffscraper.ErrorMessage(err))
	}
	if recipe.Template != "" && !filepath.IsAbs(recipe.Template) {
		recipe.Template = filepath.Join(filepath.Dir(path), recipe.Template)
	}
	return recipe, nil
}

// Decode parses and validates a TOML recipe.
func Decode(b []byte) (*diffscraper.Recipe, error) {
	var recipe diffscraper.Recipe
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&recipe); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, diffscraper.Errorf(diffscraper.EINVALID, "line %d column %d: %s", row, col, derr.Error())
		}
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "%s", err)
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Encode renders a recipe as TOML.
func Encode(recipe *diffscraper.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(recipe); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
