package mock

import "github.com/fwojciec/diffscraper"

var _ diffscraper.RecipeLoader = (*RecipeLoader)(nil)

// RecipeLoader is a mock implementation of diffscraper.RecipeLoader.
type RecipeLoader struct {
	LoadRecipeFn func(path string) (*diffscraper.Recipe, error)
}

func (l *RecipeLoader) LoadRecipe(path string) (*diffscraper.Recipe, error) {
	return l.LoadRecipeFn(path)
}

var _ diffscraper.TextConverter = (*TextConverter)(nil)

// TextConverter is a mock implementation of diffscraper.TextConverter.
type TextConverter struct {
	TextFn func(html string) (string, error)
}

func (c *TextConverter) Text(html string) (string, error) {
	return c.TextFn(html)
}
