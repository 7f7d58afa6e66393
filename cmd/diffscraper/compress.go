package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/batch"
)

const maxDisplayPath = 60

// Run executes the compress command.
func (c *CompressCmd) Run(deps *Dependencies) error {
	sources, err := c.Expand(deps, c.Docs)
	if err != nil {
		return fail(deps, err)
	}
	if len(sources) == 0 {
		return fail(deps, diffscraper.Errorf(diffscraper.EINVALID, "no documents to compress"))
	}

	tmpl, err := loadTemplate(deps, c.Template)
	if err != nil {
		return fail(deps, err)
	}

	runner := newRunner(deps, c.Force)
	result, err := runner.Compress(deps.Ctx, tmpl, sources, c.OutputDir, progressLogger(deps, "compress"))
	return finish(deps, result, err)
}

// Run executes the decompress command.
func (c *DecompressCmd) Run(deps *Dependencies) error {
	tmpl, err := loadTemplate(deps, c.Template)
	if err != nil {
		return fail(deps, err)
	}

	runner := newRunner(deps, c.Force)
	result, err := runner.Decompress(deps.Ctx, tmpl, c.Files, c.OutputDir, progressLogger(deps, "decompress"))
	return finish(deps, result, err)
}

func newRunner(deps *Dependencies, force bool) *batch.Runner {
	return &batch.Runner{
		Loader:      deps.Loader,
		Store:       deps.Store,
		Codec:       deps.Codec,
		Concurrency: deps.Concurrency,
		Force:       force,
	}
}

// progressLogger logs every finished input. Integrity failures carry the
// failed check together with both digests.
func progressLogger(deps *Dependencies, op string) batch.ProgressFunc {
	return func(event batch.ProgressEvent) {
		input := batch.TruncatePath(event.Input, maxDisplayPath)
		switch event.Type {
		case batch.ProgressCompleted:
			deps.Logger.Debug(op, "input", input, "output", event.Output, "completed", event.Completed, "total", event.Total)
		case batch.ProgressFailed:
			var ierr *diffscraper.IntegrityError
			if errors.As(event.Error, &ierr) {
				deps.Logger.Error("integrity check failed",
					"input", input,
					"check", ierr.Check,
					"actual", ierr.Actual,
					"expected", ierr.Expected,
				)
				return
			}
			deps.Logger.Error(op+" failed", "input", input, "err", diffscraper.ErrorMessage(event.Error))
		}
	}
}

// finish prints the batch summary and turns any failed input into an error.
func finish(deps *Dependencies, result *batch.Result, err error) error {
	if result == nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "%d succeeded, %d failed (%s -> %s, %s)\n",
		result.Succeeded, result.Failed,
		batch.FormatBytes(result.BytesIn), batch.FormatBytes(result.BytesOut), result.Ratio())
	if err != nil {
		return fail(deps, err)
	}
	if result.Failed > 0 {
		return diffscraper.Errorf(diffscraper.EINVALID, "%d of %d documents failed", result.Failed, result.Succeeded+result.Failed)
	}
	return nil
}
