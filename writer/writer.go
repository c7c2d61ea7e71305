// Package writer implements the three format-specific element-body encode
// engines (ascii, binary_little_endian, binary_big_endian) dispatched by
// the root ply package. Header emission is schema text and always ASCII
// regardless of body format, and lives in the ply package instead.
package writer

import (
	"unsafe"

	"github.com/arloliu/plyio/endian"
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/internal/recio"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/schema"
)

// Engine encodes one element's body to a stream.
type Engine interface {
	// WriteLayout encodes l.Count records from the caller's layout-described
	// buffer. Properties elem declares beyond what l addresses are written
	// as zero-valued.
	WriteLayout(w *ioutil.Writer, elem schema.Element, l *layout.Layout) error
	// WriteElementData encodes a previously materialized ElementData.
	WriteElementData(w *ioutil.Writer, elem schema.Element, d *schema.ElementData) error
}

// New returns the encode engine for f.
func New(f format.Format) Engine {
	switch f {
	case format.BinaryLittleEndian:
		return binaryEngine{order: endian.GetLittleEndianEngine()}
	case format.BinaryBigEndian:
		return binaryEngine{order: endian.GetBigEndianEngine()}
	default:
		return asciiEngine{}
	}
}

func addOffset(p unsafe.Pointer, n int) unsafe.Pointer { return unsafe.Add(p, n) }

func listElemBits(list *schema.ListHandle, idx int, k kind.DataKind) uint64 {
	return recio.GetBitsAt(list.Bytes(), idx*k.Size(), k)
}
