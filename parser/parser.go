// Package parser implements the three format-specific element-body decode
// engines (ascii, binary_little_endian, binary_big_endian) dispatched by
// the root ply package. Each engine can populate a caller-supplied layout,
// materialize a schema-agnostic schema.ElementData, or skip an element's
// body outright.
package parser

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

// Engine decodes one element's body from a stream already positioned
// immediately after the header.
type Engine interface {
	// ReadInto decodes elem.Count records directly into the caller's
	// layout-described buffer.
	ReadInto(r *ioutil.Reader, elem schema.Element, l *layout.Layout) error
	// ReadElementData decodes elem.Count records into a freshly allocated,
	// schema-agnostic ElementData.
	ReadElementData(r *ioutil.Reader, elem schema.Element) (*schema.ElementData, error)
	// Skip advances past elem's body without decoding any values.
	Skip(r *ioutil.Reader, elem schema.Element) error
}

// New returns the decode engine for f.
func New(f format.Format) Engine {
	switch f {
	case format.BinaryLittleEndian:
		return binaryEngine{order: endian.GetLittleEndianEngine(), fmt: f}
	case format.BinaryBigEndian:
		return binaryEngine{order: endian.GetBigEndianEngine(), fmt: f}
	default:
		return asciiEngine{}
	}
}

func addOffset(p unsafe.Pointer, n int) unsafe.Pointer { return unsafe.Add(p, n) }

func bytePtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}

	return unsafe.Pointer(&b[0])
}

func putListElem(list *schema.ListHandle, idx int, k kind.DataKind, bits uint64) {
	recio.PutBitsAt(list.Bytes(), idx*k.Size(), k, bits)
}

func getListElem(list *schema.ListHandle, idx int, k kind.DataKind) uint64 {
	return recio.GetBitsAt(list.Bytes(), idx*k.Size(), k)
}
