// Package zstd provides an implementation of diffscraper.Codec that stores
// templates and data objects as JSON compressed with zstd.
package zstd

import (
	"encoding/json"

	"github.com/fwojciec/diffscraper"
	"github.com/klauspost/compress/zstd"
)

// Ensure Codec implements diffscraper.Codec at compile time.
var _ diffscraper.Codec = (*Codec)(nil)

// Codec encodes objects as zstd-compressed JSON. It is safe for concurrent
// use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Option configures a Codec.
type Option func(*options)

type options struct {
	level zstd.EncoderLevel
}

// WithLevel sets the compression level.
// Defaults to zstd.SpeedBetterCompression.
func WithLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.level = level
	}
}

// NewCodec creates a new Codec. Call Close to release its resources.
func NewCodec(opts ...Option) (*Codec, error) {
	o := options{level: zstd.SpeedBetterCompression}
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &Codec{encoder: enc, decoder: dec}, nil
}

// Close releases encoder and decoder resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}

// EncodeTemplate serializes a template.
func (c *Codec) EncodeTemplate(t *diffscraper.Template) ([]byte, error) {
	return c.encode(t)
}

// DecodeTemplate deserializes a template. Returns EINVALID if b is not an
// encoded template.
func (c *Codec) DecodeTemplate(b []byte) (*diffscraper.Template, error) {
	var t diffscraper.Template
	if err := c.decode(b, &t); err != nil {
		return nil, err
	}
	if t.Root.IsZero() {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "template has no merkle root")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Segments == nil {
		t.Segments = []string{}
	}
	return &t, nil
}

// EncodeData serializes a data object.
func (c *Codec) EncodeData(d *diffscraper.Data) ([]byte, error) {
	return c.encode(d)
}

// DecodeData deserializes a data object. Returns EINVALID if b is not an
// encoded data object.
func (c *Codec) DecodeData(b []byte) (*diffscraper.Data, error) {
	var d diffscraper.Data
	if err := c.decode(b, &d); err != nil {
		return nil, err
	}
	if len(d.Segments) == 0 {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "data object has no segments")
	}
	return &d, nil
}

func (c *Codec) encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.encoder.EncodeAll(b, make([]byte, 0, len(b)/2)), nil
}

func (c *Codec) decode(b []byte, v any) error {
	raw, err := c.decoder.DecodeAll(b, nil)
	if err != nil {
		return diffscraper.Errorf(diffscraper.EINVALID, "decompress object: %s", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return diffscraper.Errorf(diffscraper.EINVALID, "decode object: %s", err)
	}
	return nil
}
