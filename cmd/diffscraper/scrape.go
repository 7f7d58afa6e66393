package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/toml"
)

// Record is one scraped document as written by the scrape command.
type Record struct {
	Source string            `json:"source"`
	Fields map[string]string `json:"fields"`
}

// Run executes the scrape command. Each document produces one JSON line;
// documents that fail are logged and counted.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	recipe, err := deps.Recipes.LoadRecipe(c.Recipe)
	if err != nil {
		return fail(deps, err)
	}
	tmpl, err := loadTemplate(deps, recipe.Template)
	if err != nil {
		return fail(deps, err)
	}
	scraper, err := diffscraper.NewScraper(tmpl, deps.Tokenizer, recipe, deps.Text)
	if err != nil {
		return fail(deps, err)
	}

	sources, err := c.Expand(deps, c.Docs)
	if err != nil {
		return fail(deps, err)
	}
	if len(sources) == 0 {
		return fail(deps, diffscraper.Errorf(diffscraper.EINVALID, "no documents to scrape"))
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)

	var failed int
	for _, src := range sources {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		docs, err := deps.Loader.LoadDocuments(deps.Ctx, []string{src})
		if err != nil {
			deps.Logger.Error("scrape failed", "input", src, "err", diffscraper.ErrorMessage(err))
			failed++
			continue
		}
		fields, err := scraper.Scrape(docs[0].Content)
		if err != nil {
			deps.Logger.Error("scrape failed", "input", src, "err", diffscraper.ErrorMessage(err))
			failed++
			continue
		}
		if err := enc.Encode(Record{Source: src, Fields: fields}); err != nil {
			return err
		}
	}

	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "%d succeeded, %d failed\n", len(sources)-failed, failed)
		return diffscraper.Errorf(diffscraper.EINVALID, "%d of %d documents failed", failed, len(sources))
	}
	return nil
}

// Run executes the print-skeleton command. Fields are validated against
// the template when the template file exists.
func (c *PrintSkeletonCmd) Run(deps *Dependencies) error {
	fields := make([]diffscraper.Field, 0, len(c.Fields))
	for _, s := range c.Fields {
		f, err := diffscraper.ParseField(s)
		if err != nil {
			return fail(deps, err)
		}
		fields = append(fields, f)
	}

	if len(fields) > 0 {
		tmpl, err := loadTemplate(deps, c.Template)
		switch {
		case diffscraper.ErrorCode(err) == diffscraper.ENOTFOUND:
			deps.Logger.Warn("template not found, fields not checked", "template", c.Template)
		case err != nil:
			return fail(deps, err)
		default:
			recipe := &diffscraper.Recipe{Name: c.Name, Template: c.Template, Fields: fields}
			if _, err := diffscraper.NewScraper(tmpl, deps.Tokenizer, recipe, deps.Text); err != nil {
				return fail(deps, err)
			}
		}
	}

	b, err := toml.Skeleton(c.Name, c.Template, fields)
	if err != nil {
		return fail(deps, err)
	}
	_, err = deps.Stdout.Write(b)
	return err
}
