package diffscraper

import (
	"fmt"
	"strconv"
	"strings"
)

// Recipe describes how to scrape named fields out of documents that share a
// template.
type Recipe struct {
	Name string `toml:"name" json:"name"`

	// Template is the path of the serialized template the recipe applies to.
	Template string  `toml:"template" json:"template"`
	Fields   []Field `toml:"field,omitempty" json:"fields"`
}

// Field selects one data segment. Selectors are ANDed predicates in the form
// accepted by ParsePredicate; Offset is added to the selected invariant
// segment index to obtain the data segment index.
type Field struct {
	Name      string   `toml:"name" json:"name"`
	Selectors []string `toml:"selectors" json:"selectors"`
	Offset    int      `toml:"offset" json:"offset"`

	// Text converts the HTML of the data segment to plain text.
	Text bool `toml:"text,omitempty" json:"text,omitempty"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.Template == "" {
		return Errorf(EINVALID, "recipe template required")
	}
	if len(r.Fields) == 0 {
		return Errorf(EINVALID, "recipe has no fields")
	}
	names := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return Errorf(EINVALID, "field name required")
		}
		if names[f.Name] {
			return Errorf(EINVALID, "duplicate field %q", f.Name)
		}
		names[f.Name] = true
		if len(f.Selectors) == 0 {
			return Errorf(EINVALID, "field %q has no selectors", f.Name)
		}
	}
	return nil
}

// ParseField parses a field written as NAME=SUGGESTION, where SUGGESTION
// is a line printed by the suggest command, for example
// `title=starttag("title") offset 1 # recommended`.
func ParseField(s string) (Field, error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Field{}, Errorf(EINVALID, "invalid field %q: expected NAME=SELECTOR", s)
	}

	rest = stripComment(rest)
	closing := strings.LastIndexByte(rest, ')')
	if closing < 0 {
		return Field{}, Errorf(EINVALID, "invalid field %q: missing selector", s)
	}
	tail := strings.TrimSpace(rest[closing+1:])

	var offset int
	if tail != "" {
		n, found := strings.CutPrefix(tail, "offset")
		if !found {
			return Field{}, Errorf(EINVALID, "invalid field %q: unexpected %q", s, tail)
		}
		var err error
		if offset, err = strconv.Atoi(strings.TrimSpace(n)); err != nil {
			return Field{}, Errorf(EINVALID, "invalid field %q: bad offset", s)
		}
	}

	p, err := ParsePredicate(rest[:closing+1])
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Selectors: []string{p.String()}, Offset: offset}, nil
}

// stripComment cuts s at the first '#' outside a quoted argument.
func stripComment(s string) string {
	var quoted, escaped bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == '#' && !quoted:
			return s[:i]
		}
	}
	return s
}

// RecipeLoader loads scrape recipes.
type RecipeLoader interface {
	LoadRecipe(path string) (*Recipe, error)
}

// TextConverter converts an HTML fragment to plain text.
type TextConverter interface {
	Text(html string) (string, error)
}

// Scraper extracts recipe fields from documents.
type Scraper struct {
	template *Template
	fields   []Field
	index    map[string]int
	text     TextConverter
}

// NewScraper resolves every field of the recipe to a data segment index of
// tmpl. text may be nil when no field sets Text.
func NewScraper(tmpl *Template, tokenizer Tokenizer, recipe *Recipe, text TextConverter) (*Scraper, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	features, err := Features(tokenizer, tmpl.Segments)
	if err != nil {
		return nil, err
	}

	s := &Scraper{
		template: tmpl,
		fields:   recipe.Fields,
		index:    make(map[string]int, len(recipe.Fields)),
		text:     text,
	}
	for _, f := range recipe.Fields {
		preds, err := ParsePredicates(f.Selectors)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		idx, err := Select(features, preds, f.Offset)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if idx < 0 || idx > len(tmpl.Segments) {
			return nil, Errorf(EINVALID, "field %q selects data segment %d out of %d", f.Name, idx, len(tmpl.Segments)+1)
		}
		if f.Text && text == nil {
			return nil, Errorf(EINVALID, "field %q requires a text converter", f.Name)
		}
		s.index[f.Name] = idx
	}
	return s, nil
}

// Index returns the data segment index a field resolves to.
func (s *Scraper) Index(field string) (int, bool) {
	idx, ok := s.index[field]
	return idx, ok
}

// Scrape extracts every field from doc. Values have surrounding whitespace
// removed.
func (s *Scraper) Scrape(doc string) (map[string]string, error) {
	spans, err := Extract(s.template.Segments, doc)
	if err != nil {
		return nil, err
	}
	item := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		v := spans[s.index[f.Name]]
		if f.Text {
			if v, err = s.text.Text(v); err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
		item[f.Name] = strings.TrimSpace(v)
	}
	return item, nil
}
