package diffscraper

import "strings"

// Extract splits doc into the variant spans surrounding the invariant
// segments. Each segment is searched for starting at the end of the previous
// match. The result always has len(segments)+1 entries. Returns ESEGMENT,
// with no partial result, if a segment cannot be located.
func Extract(segments []string, doc string) ([]string, error) {
	spans := make([]string, 0, len(segments)+1)
	offset := 0
	for i, seg := range segments {
		idx := strings.Index(doc[offset:], seg)
		if idx < 0 {
			return nil, Errorf(ESEGMENT, "invariant segment %d not found after offset %d", i, offset)
		}
		spans = append(spans, doc[offset:offset+idx])
		offset += idx + len(seg)
	}
	spans = append(spans, doc[offset:])
	return spans, nil
}

// Reconstruct interleaves variant spans and invariant segments. It is the
// inverse of Extract. Returns ELENGTH unless len(spans) == len(segments)+1.
func Reconstruct(segments, spans []string) (string, error) {
	if len(spans) != len(segments)+1 {
		return "", Errorf(ELENGTH, "got %d data segments for %d invariant segments", len(spans), len(segments))
	}
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(spans[i])
		b.WriteString(seg)
	}
	b.WriteString(spans[len(segments)])
	return b.String(), nil
}
