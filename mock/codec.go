package mock

import "github.com/fwojciec/diffscraper"

var _ diffscraper.Codec = (*Codec)(nil)

// Codec is a mock implementation of diffscraper.Codec.
type Codec struct {
	EncodeTemplateFn func(t *diffscraper.Template) ([]byte, error)
	DecodeTemplateFn func(b []byte) (*diffscraper.Template, error)
	EncodeDataFn     func(d *diffscraper.Data) ([]byte, error)
	DecodeDataFn     func(b []byte) (*diffscraper.Data, error)
}

func (c *Codec) EncodeTemplate(t *diffscraper.Template) ([]byte, error) {
	return c.EncodeTemplateFn(t)
}

func (c *Codec) DecodeTemplate(b []byte) (*diffscraper.Template, error) {
	return c.DecodeTemplateFn(b)
}

func (c *Codec) EncodeData(d *diffscraper.Data) ([]byte, error) {
	return c.EncodeDataFn(d)
}

func (c *Codec) DecodeData(b []byte) (*diffscraper.Data, error) {
	return c.DecodeDataFn(b)
}
