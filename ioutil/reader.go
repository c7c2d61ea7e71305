// Package ioutil implements the buffered byte streams that sit between the
// PLY header scanner/format engines and the caller's io.Reader/io.Writer.
//
// The buffering strategy mirrors mebo's internal/pool.ByteBuffer growth
// policy and PLYwoot's BufferedIStream/BufferedOStream: a fixed-capacity
// buffer refilled on underrun (input side) or flushed on overrun (output
// side), with a one-byte lookahead invariant on the input side so that
// end-of-input is always observable without re-entering the source.
package ioutil

import (
	"io"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/internal/options"
)

// DefaultBufferSize is the default capacity of a Reader/Writer buffer.
const DefaultBufferSize = 1024 * 1024

// ReaderOption configures a Reader via the shared functional-options
// pattern.
type ReaderOption = options.Option[*readerConfig]

type readerConfig struct {
	bufSize int
}

// WithReaderBufferSize overrides the default buffer capacity.
func WithReaderBufferSize(n int) ReaderOption {
	return options.NoError(func(c *readerConfig) { c.bufSize = n })
}

// Reader wraps an io.Reader with a fixed-capacity buffer, refilling on
// underrun. It owns the buffer exclusively for its lifetime and is not
// safe for concurrent use.
type Reader struct {
	src io.Reader
	buf []byte
	pos int // read cursor into buf
	end int // one past the last valid byte in buf
}

// NewReader constructs a buffered Reader over src.
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	if src == nil {
		return nil, errs.ErrInvalidInputStream
	}

	cfg := readerConfig{bufSize: DefaultBufferSize}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	r := &Reader{
		src: src,
		buf: make([]byte, cfg.bufSize),
	}
	r.fill()

	return r, nil
}

// fill unconditionally refills the buffer from src, discarding any
// unconsumed bytes. Used at construction and by Skip/ReadFull once they
// have moved past the buffered bytes.
func (r *Reader) fill() {
	n, _ := io.ReadFull(r.src, r.buf)
	r.pos = 0
	r.end = n
}

// Ensure guarantees that at least n bytes are contiguously available
// starting at the read cursor, sliding any remaining tail to the front of
// the buffer and reading more from src to fill the rest. Returns
// errs.ErrUnexpectedEof if fewer than n bytes remain in the source.
func (r *Reader) Ensure(n int) error {
	remaining := r.end - r.pos
	if remaining >= n {
		return nil
	}

	if n > len(r.buf) {
		// Grow the buffer to fit this one oversized request; rare path.
		grown := make([]byte, n)
		copy(grown, r.buf[r.pos:r.end])
		r.buf = grown
	} else {
		copy(r.buf, r.buf[r.pos:r.end])
	}

	r.end = remaining
	r.pos = 0

	for r.end < n {
		m, err := r.src.Read(r.buf[r.end:])
		r.end += m
		if err != nil {
			if err == io.EOF {
				if r.end < n {
					return errs.ErrUnexpectedEof
				}

				break
			}

			return errs.NewIoError(err)
		}

		if m == 0 {
			return errs.ErrUnexpectedEof
		}
	}

	return nil
}

// Peek returns the byte at the current read cursor without advancing it,
// and whether a byte was available (false at end of input).
func (r *Reader) Peek() (byte, bool) {
	if r.pos >= r.end {
		if err := r.Ensure(1); err != nil {
			return 0, false
		}
	}

	return r.buf[r.pos], true
}

// Advance moves the read cursor forward by n bytes, refilling as needed.
func (r *Reader) Advance(n int) error {
	if err := r.Ensure(n); err != nil {
		return err
	}

	r.pos += n

	return nil
}

// Skip advances the read cursor by n bytes without copying them anywhere.
// When n exceeds the buffered remainder and the source supports seeking,
// issues a single relative seek; otherwise discards via repeated reads.
func (r *Reader) Skip(n int) error {
	remaining := r.end - r.pos
	if remaining >= n {
		r.pos += n

		return nil
	}

	n -= remaining
	r.pos = r.end

	if seeker, ok := r.src.(io.Seeker); ok {
		if _, err := seeker.Seek(int64(n), io.SeekCurrent); err != nil {
			return errs.NewIoError(err)
		}

		r.fill()

		return nil
	}

	discard := make([]byte, 32*1024)
	for n > 0 {
		chunk := len(discard)
		if chunk > n {
			chunk = n
		}

		m, err := r.src.Read(discard[:chunk])
		n -= m
		if err != nil {
			if err == io.EOF {
				if n > 0 {
					return errs.ErrUnexpectedEof
				}

				break
			}

			return errs.NewIoError(err)
		}
	}

	r.fill()

	return nil
}

// SkipLines advances the read cursor to the first byte after the next k
// newline characters.
func (r *Reader) SkipLines(k int) error {
	for k > 0 {
		b, ok := r.Peek()
		if !ok {
			return errs.ErrUnexpectedEof
		}

		if err := r.Advance(1); err != nil {
			return err
		}

		if b == '\n' {
			k--
		}
	}

	return nil
}

// SkipWhitespace advances past ASCII whitespace (bytes in [0, 0x20]).
func (r *Reader) SkipWhitespace() {
	for {
		b, ok := r.Peek()
		if !ok || b > 0x20 {
			return
		}

		_ = r.Advance(1)
	}
}

// SkipNonWhitespace advances past bytes > 0x20.
func (r *Reader) SkipNonWhitespace() {
	for {
		b, ok := r.Peek()
		if !ok || b <= 0x20 {
			return
		}

		_ = r.Advance(1)
	}
}

// ReadFull copies exactly len(dst) bytes to dst, advancing the read
// cursor. When len(dst) exceeds the buffer's capacity, the buffered
// remainder is copied first and the rest is read directly from the
// source into dst, bypassing the buffer.
func (r *Reader) ReadFull(dst []byte) error {
	n := len(dst)
	if n == 0 {
		return nil
	}

	if n > len(r.buf) {
		remaining := r.end - r.pos
		copy(dst, r.buf[r.pos:r.end])
		r.pos = r.end

		if _, err := io.ReadFull(r.src, dst[remaining:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return errs.ErrUnexpectedEof
			}

			return errs.NewIoError(err)
		}

		r.fill()

		return nil
	}

	if err := r.Ensure(n); err != nil {
		return err
	}

	copy(dst, r.buf[r.pos:r.pos+n])
	r.pos += n

	return nil
}

// Byte reads and consumes a single byte.
func (r *Reader) Byte() (byte, error) {
	b, ok := r.Peek()
	if !ok {
		return 0, errs.ErrUnexpectedEof
	}

	_ = r.Advance(1)

	return b, nil
}

// AtEOF reports whether the read cursor has reached end of input.
func (r *Reader) AtEOF() bool {
	_, ok := r.Peek()

	return !ok
}
