// Package batch compresses and decompresses many documents against one
// template concurrently.
package batch

import (
	"context"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/fs"
	"github.com/fwojciec/diffscraper/merkle"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Runner applies the codec to a list of inputs. A failing input is counted
// and reported through progress; it never aborts the other inputs.
type Runner struct {
	Loader      diffscraper.DocumentLoader
	Store       diffscraper.ObjectStore
	Codec       diffscraper.Codec
	Concurrency int

	// Force overwrites existing outputs. Without it an existing output
	// fails its input with ECONFLICT.
	Force bool
}

// Result holds the outcome of a batch operation.
type Result struct {
	Succeeded int
	Failed    int

	// BytesIn and BytesOut total the sizes of successful inputs and the
	// outputs written for them.
	BytesIn  int
	BytesOut int
}

// ProgressEvent reports progress during a batch operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Input     string
	Output    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single input.
type itemResult struct {
	position int
	input    string
	output   string
	bytesIn  int
	bytesOut int
	err      error
}

// Compress writes the data object of every source to outDir. Sources are
// loaded one by one through the Loader, so URLs are fetched concurrently.
func (r *Runner) Compress(ctx context.Context, tmpl *diffscraper.Template, sources []string, outDir string, progress ProgressFunc) (*Result, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, sources, progress, func(ctx context.Context, src string) itemResult {
		res := itemResult{input: src}
		docs, err := r.Loader.LoadDocuments(ctx, []string{src})
		if err != nil {
			res.err = err
			return res
		}
		doc := docs[0]

		data, err := merkle.NewData(tmpl, doc.Content)
		if err != nil {
			res.err = err
			return res
		}
		b, err := r.Codec.EncodeData(data)
		if err != nil {
			res.err = err
			return res
		}

		if res.output, res.err = fs.DataPath(outDir, src); res.err != nil {
			return res
		}
		if res.err = r.Store.WriteFile(res.output, b, r.Force); res.err != nil {
			return res
		}
		res.bytesIn, res.bytesOut = doc.Size, len(b)
		return res
	})
}

// Decompress verifies every data file against tmpl and writes the
// reconstructed document to outDir. A data file failing an integrity check
// produces no output.
func (r *Runner) Decompress(ctx context.Context, tmpl *diffscraper.Template, paths []string, outDir string, progress ProgressFunc) (*Result, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, paths, progress, func(ctx context.Context, path string) itemResult {
		res := itemResult{input: path}
		if res.err = ctx.Err(); res.err != nil {
			return res
		}

		b, err := r.Store.ReadFile(path)
		if err != nil {
			res.err = err
			return res
		}
		data, err := r.Codec.DecodeData(b)
		if err != nil {
			res.err = err
			return res
		}
		doc, err := merkle.Verify(tmpl, data)
		if err != nil {
			res.err = err
			return res
		}

		res.output = fs.DocumentPath(outDir, path)
		if res.err = r.Store.WriteFile(res.output, []byte(doc), r.Force); res.err != nil {
			return res
		}
		res.bytesIn, res.bytesOut = len(b), len(doc)
		return res
	})
}

func report(result *Result, res itemResult, completed, total int, progress ProgressFunc) {
	event := ProgressEvent{
		Type:      ProgressCompleted,
		Completed: completed,
		Total:     total,
		Input:     res.input,
		Output:    res.output,
	}
	if res.err != nil {
		result.Failed++
		event.Type = ProgressFailed
		event.Error = res.err
	} else {
		result.Succeeded++
		result.BytesIn += res.bytesIn
		result.BytesOut += res.bytesOut
	}
	if progress != nil {
		progress(event)
	}
}

// run processes inputs with bounded concurrency. Progress events are
// delivered from the calling goroutine in input order.
func (r *Runner) run(ctx context.Context, inputs []string, progress ProgressFunc, process func(context.Context, string) itemResult) (*Result, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(inputs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan itemResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, input := range inputs {
			g.Go(func() error {
				res := process(gctx, input)
				res.position = i
				resultCh <- res
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Results arrive in completion order and are reported in input order.
	var result Result
	pending := make(map[int]itemResult)
	next := 0
	for res := range resultCh {
		pending[res.position] = res
		for {
			res, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			report(&result, res, next, total, progress)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}
