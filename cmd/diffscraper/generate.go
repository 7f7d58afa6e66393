package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/merkle"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	sources, err := c.Expand(deps, c.Docs)
	if err != nil {
		return fail(deps, err)
	}
	if len(sources) < 2 {
		return fail(deps, diffscraper.Errorf(diffscraper.EINVALID, "at least 2 documents are required to generate a template, got %d", len(sources)))
	}

	docs, err := deps.Loader.LoadDocuments(deps.Ctx, sources)
	if err != nil {
		return fail(deps, err)
	}

	segments, err := deps.Generator.Generate(deps.Ctx, diffscraper.Contents(docs))
	if err != nil {
		return fail(deps, err)
	}
	tmpl := merkle.NewTemplate(segments)

	if err := writeTemplate(deps, c.Output, tmpl, c.Force); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Generated template %s with %d invariant segments from %d documents\n", tmpl.Root, len(tmpl.Segments), len(docs))
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)

	if !c.Save {
		return nil
	}
	return c.save(deps, tmpl, len(docs))
}

func (c *GenerateCmd) save(deps *Dependencies, tmpl *diffscraper.Template, documents int) error {
	name := c.Name
	if name == "" {
		base := filepath.Base(c.Output)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	rec := &diffscraper.TemplateRecord{
		Name:      name,
		Template:  tmpl,
		Documents: documents,
	}
	err := deps.Templates.CreateTemplate(deps.Ctx, rec)
	if diffscraper.ErrorCode(err) == diffscraper.ECONFLICT {
		existing, findErr := deps.Templates.FindTemplateByRoot(deps.Ctx, tmpl.Root)
		if findErr != nil {
			return fail(deps, findErr)
		}
		fmt.Fprintf(deps.Stdout, "Template already registered as %s (%s)\n", existing.ID, existing.Name)
		return nil
	} else if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Registered template %s as %q\n", rec.ID, rec.Name)
	return nil
}

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	tmpl, err := loadTemplate(deps, c.Template)
	if err != nil {
		return fail(deps, err)
	}

	docs, err := deps.Loader.LoadDocuments(deps.Ctx, []string{c.Doc})
	if err != nil {
		return fail(deps, err)
	}

	segments, err := deps.Generator.Update(deps.Ctx, tmpl, diffscraper.Contents(docs))
	if err != nil {
		return fail(deps, err)
	}
	updated := merkle.NewTemplate(segments)

	if err := writeTemplate(deps, c.Output, updated, c.Force); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Updated template %s -> %s with %d invariant segments\n", tmpl.Root, updated.Root, len(updated.Segments))
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
	return nil
}
