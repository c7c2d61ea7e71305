package ply

import (
	"io"

	"github.com/arloliu/plyio/format"
)

// Convert reads the full PLY stream from r and re-encodes it to w in the
// target format, preserving every element, property, and comment. It goes
// through schema.ElementData rather than a caller struct, so it works for
// arbitrary schemas without requiring the caller to know them in advance.
func Convert(r io.Reader, w io.Writer, target format.Format) error {
	src, err := NewReader(r)
	if err != nil {
		return err
	}

	dst := NewWriter(target)
	for _, c := range src.Comments() {
		dst.cfg.comments = append(dst.cfg.comments, c)
	}

	for i, elem := range src.Elements() {
		data, err := src.ReadElementData(i)
		if err != nil {
			return err
		}

		dst.QueueElementData(elem, data)
	}

	return dst.Commit(w)
}
