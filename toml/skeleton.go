package toml

import (
	"bytes"

	"github.com/fwojciec/diffscraper"
)

// skeletonHint is appended when a skeleton has no fields yet.
const skeletonHint = `
# Copy a line printed by the suggest command into a field, for example:
#
# [[field]]
#   name = 'title'
#   selectors = ['starttag("title")']
#   offset = 1
`

// Skeleton renders a recipe skeleton for the template at path. Fields are
// typically built with diffscraper.ParseField from suggest output.
func Skeleton(name, template string, fields []diffscraper.Field) ([]byte, error) {
	b, err := Encode(&diffscraper.Recipe{
		Name:     name,
		Template: template,
		Fields:   fields,
	})
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return b, nil
	}
	var buf bytes.Buffer
	buf.Write(b)
	buf.WriteString(skeletonHint)
	return buf.Bytes(), nil
}
