package merkle

import "github.com/fwojciec/diffscraper"

// NewTemplate builds a template object over the invariant segments.
func NewTemplate(segments []string) *diffscraper.Template {
	if segments == nil {
		segments = []string{}
	}
	return &diffscraper.Template{
		Segments: segments,
		Root:     Root(segments),
	}
}

// NewData extracts doc against tmpl and builds its data object. Returns
// ESEGMENT if doc does not conform to the template.
func NewData(tmpl *diffscraper.Template, doc string) (*diffscraper.Data, error) {
	spans, err := diffscraper.Extract(tmpl.Segments, doc)
	if err != nil {
		return nil, err
	}
	return &diffscraper.Data{
		Segments:     spans,
		TemplateRoot: tmpl.Root,
		DataRoot:     Root(spans),
		OriginalHash: SumString(doc),
	}, nil
}

// Verify checks data against tmpl and returns the reconstructed document.
// The checks run in order: the data was produced with this template, the
// data segments are intact, and the reconstructed document hashes to the
// original. The first failing check is returned as a
// *diffscraper.IntegrityError.
func Verify(tmpl *diffscraper.Template, data *diffscraper.Data) (string, error) {
	if tmpl.Root != data.TemplateRoot {
		return "", &diffscraper.IntegrityError{
			Check:    diffscraper.CheckTemplate,
			Actual:   tmpl.Root,
			Expected: data.TemplateRoot,
		}
	}

	if root := Root(data.Segments); root != data.DataRoot {
		return "", &diffscraper.IntegrityError{
			Check:    diffscraper.CheckData,
			Actual:   root,
			Expected: data.DataRoot,
		}
	}

	doc, err := diffscraper.Reconstruct(tmpl.Segments, data.Segments)
	if err != nil {
		return "", err
	}

	if hash := SumString(doc); hash != data.OriginalHash {
		return "", &diffscraper.IntegrityError{
			Check:    diffscraper.CheckDocument,
			Actual:   hash,
			Expected: data.OriginalHash,
		}
	}
	return doc, nil
}
