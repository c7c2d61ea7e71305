// Package compressio wraps an io.Writer/io.Reader pair with an optional
// compression codec for the plyconv CLI's --zstd/--lz4 output flags. It
// uses one concrete wrapper type per algorithm, chosen by a small enum, and
// operates on whole-file streams.
package compressio

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a supported stream compression algorithm.
type Codec string

const (
	// None passes bytes through unmodified.
	None Codec = "none"
	// Zstd compresses with zstd at the default level.
	Zstd Codec = "zstd"
	// LZ4 compresses with the LZ4 frame format.
	LZ4 Codec = "lz4"
)

// WrapWriter returns a WriteCloser that compresses everything written to it
// with codec before forwarding to dst. Closing the returned writer flushes
// and closes the codec's own framing, but never closes dst.
func WrapWriter(dst io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case "", None:
		return nopWriteCloser{dst}, nil
	case Zstd:
		enc, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("compressio: zstd writer: %w", err)
		}

		return enc, nil
	case LZ4:
		return lz4.NewWriter(dst), nil
	default:
		return nil, fmt.Errorf("compressio: unknown codec %q", codec)
	}
}

// WrapReader returns a Reader that decompresses data read from src encoded
// with codec.
func WrapReader(src io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case "", None:
		return src, nil
	case Zstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("compressio: zstd reader: %w", err)
		}

		return dec.IOReadCloser(), nil
	case LZ4:
		return lz4.NewReader(src), nil
	default:
		return nil, fmt.Errorf("compressio: unknown codec %q", codec)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
