package slog

import (
	"log/slog"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.Codec = (*LoggingCodec)(nil)

// LoggingCodec wraps a Codec with debug logging of object sizes.
type LoggingCodec struct {
	next   diffscraper.Codec
	logger *slog.Logger
}

// NewLoggingCodec creates a new LoggingCodec.
func NewLoggingCodec(next diffscraper.Codec, logger *slog.Logger) *LoggingCodec {
	return &LoggingCodec{next: next, logger: logger}
}

func (c *LoggingCodec) EncodeTemplate(t *diffscraper.Template) (b []byte, err error) {
	defer func() {
		c.logger.Debug("encode template", "root", t.Root, "segments", len(t.Segments), "bytes", len(b), "err", err)
	}()
	return c.next.EncodeTemplate(t)
}

func (c *LoggingCodec) DecodeTemplate(b []byte) (t *diffscraper.Template, err error) {
	defer func() {
		attrs := []any{"bytes", len(b), "err", err}
		if t != nil {
			attrs = append(attrs, "root", t.Root, "segments", len(t.Segments))
		}
		c.logger.Debug("decode template", attrs...)
	}()
	return c.next.DecodeTemplate(b)
}

func (c *LoggingCodec) EncodeData(d *diffscraper.Data) (b []byte, err error) {
	defer func() {
		c.logger.Debug("encode data", "root", d.DataRoot, "segments", len(d.Segments), "bytes", len(b), "err", err)
	}()
	return c.next.EncodeData(d)
}

func (c *LoggingCodec) DecodeData(b []byte) (d *diffscraper.Data, err error) {
	defer func() {
		attrs := []any{"bytes", len(b), "err", err}
		if d != nil {
			attrs = append(attrs, "root", d.DataRoot, "segments", len(d.Segments))
		}
		c.logger.Debug("decode data", attrs...)
	}()
	return c.next.DecodeData(b)
}
