package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/diffscraper"
)

// Run executes the templates list command.
func (c *TemplatesListCmd) Run(deps *Dependencies) error {
	var filter diffscraper.TemplateFilter
	if c.Name != "" {
		filter.Name = &c.Name
	}
	recs, err := deps.Templates.FindTemplates(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No templates registered. Use 'diffscraper generate --save' to register one.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROOT\tSEGMENTS\tDOCUMENTS\tCREATED")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Name, r.Template.Root, len(r.Template.Segments), r.Documents, r.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

// Run executes the templates show command.
func (c *TemplatesShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Templates.FindTemplateByID(deps.Ctx, c.ID)
	if diffscraper.ErrorCode(err) == diffscraper.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: template %q not found. Use 'diffscraper templates list' to see registered templates.\n", c.ID)
		return err
	} else if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "ID:        %s\n", rec.ID)
	fmt.Fprintf(deps.Stdout, "Name:      %s\n", rec.Name)
	fmt.Fprintf(deps.Stdout, "Root:      %s\n", rec.Template.Root)
	fmt.Fprintf(deps.Stdout, "Documents: %d\n", rec.Documents)
	fmt.Fprintf(deps.Stdout, "Created:   %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Segments:  %d\n\n", len(rec.Template.Segments))
	for i, s := range rec.Template.Segments {
		fmt.Fprintf(deps.Stdout, "%4d  %q\n", i, s)
	}

	if c.Output == "" {
		return nil
	}
	if err := writeTemplate(deps, c.Output, rec.Template, c.Force); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "\nWrote %s\n", c.Output)
	return nil
}

// Run executes the templates rm command.
func (c *TemplatesRmCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return diffscraper.Errorf(diffscraper.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Templates.DeleteTemplate(deps.Ctx, c.ID); diffscraper.ErrorCode(err) == diffscraper.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: template %q not found. Use 'diffscraper templates list' to see registered templates.\n", c.ID)
		return err
	} else if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted template %s\n", c.ID)
	return nil
}
