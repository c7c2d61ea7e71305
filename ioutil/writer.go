package ioutil

import (
	"io"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/internal/options"
	"github.com/arloliu/plyio/numeric"
)

// WriterOption configures a Writer via the shared functional-options
// pattern.
type WriterOption = options.Option[*writerConfig]

type writerConfig struct {
	bufSize int
}

// WithWriterBufferSize overrides the default buffer capacity.
func WithWriterBufferSize(n int) WriterOption {
	return options.NoError(func(c *writerConfig) { c.bufSize = n })
}

// Writer wraps an io.Writer with a fixed-capacity buffer, flushing on
// overrun. It owns the buffer exclusively for its lifetime and is not safe
// for concurrent use.
type Writer struct {
	dst io.Writer
	buf []byte
	pos int
}

// NewWriter constructs a buffered Writer over dst.
func NewWriter(dst io.Writer, opts ...WriterOption) (*Writer, error) {
	if dst == nil {
		return nil, errs.ErrInvalidInputStream
	}

	cfg := writerConfig{bufSize: DefaultBufferSize}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{dst: dst, buf: make([]byte, cfg.bufSize)}, nil
}

// Flush writes the populated prefix of the buffer to the sink and resets
// the cursor.
func (w *Writer) Flush() error {
	if w.pos == 0 {
		return nil
	}

	if _, err := w.dst.Write(w.buf[:w.pos]); err != nil {
		return errs.NewIoError(err)
	}

	w.pos = 0

	return nil
}

// WriteByte writes a single byte, flushing first if the buffer is full.
func (w *Writer) WriteByte(b byte) error {
	if w.pos >= len(w.buf) {
		if err := w.Flush(); err != nil {
			return err
		}
	}

	w.buf[w.pos] = b
	w.pos++

	return nil
}

// Write writes p, flushing first if it does not fit in the remaining
// buffer space, and bypassing the buffer entirely when p exceeds the
// buffer's capacity outright.
func (w *Writer) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if len(p) > len(w.buf) {
		if err := w.Flush(); err != nil {
			return err
		}

		if _, err := w.dst.Write(p); err != nil {
			return errs.NewIoError(err)
		}

		return nil
	}

	if w.pos+len(p) > len(w.buf) {
		if err := w.Flush(); err != nil {
			return err
		}
	}

	w.pos += copy(w.buf[w.pos:], p)

	return nil
}

// WriteScalarLE writes the width-byte little-endian encoding of bits into
// the stream as raw bytes; the binary writer calls it directly with a
// scalar's bits when the target format is little-endian.
func (w *Writer) WriteScalarLE(bits uint64, width int) error {
	var tmp [8]byte
	for i := 0; i < width; i++ {
		tmp[i] = byte(bits >> (8 * i))
	}

	return w.Write(tmp[:width])
}

// WriteASCIIInt formats v as a canonical decimal token and writes it.
func (w *Writer) WriteASCIIInt(v int64) error {
	var tmp [24]byte
	b := numeric.FormatSignedInt(tmp[:0], v)

	return w.Write(b)
}

// WriteASCIIUint formats v as a canonical decimal token and writes it.
func (w *Writer) WriteASCIIUint(v uint64) error {
	var tmp [24]byte
	b := numeric.FormatUnsignedInt(tmp[:0], v)

	return w.Write(b)
}

// WriteASCIIFloat32 formats v in its canonical roundtrip ASCII form.
func (w *Writer) WriteASCIIFloat32(v float32) error {
	var tmp [32]byte
	b := numeric.FormatFloat32(tmp[:0], v)

	return w.Write(b)
}

// WriteASCIIFloat64 formats v in its canonical roundtrip ASCII form.
func (w *Writer) WriteASCIIFloat64(v float64) error {
	var tmp [32]byte
	b := numeric.FormatFloat64(tmp[:0], v)

	return w.Write(b)
}
