package schema

import (
	"github.com/arloliu/plyio/internal/pool"
	"github.com/arloliu/plyio/kind"
)

// ListHandle is an owned, resizable sequence of scalars backing one list
// property's slot within an ElementData record. Elements are stored as raw
// bytes of the property's element kind; callers decode/encode through the
// kind-specific accessors.
type ListHandle struct {
	Kind kind.DataKind
	buf  *pool.ByteBuffer
}

// NewListHandle allocates an empty list handle for the given element kind,
// drawing its backing buffer from the shared ElementData pool.
func NewListHandle(k kind.DataKind) ListHandle {
	return ListHandle{Kind: k, buf: pool.GetElementDataBuffer()}
}

// Len returns the number of elements currently stored in the list.
func (l *ListHandle) Len() int {
	if l.buf == nil {
		return 0
	}

	size := l.Kind.Size()
	if size == 0 {
		return 0
	}

	return l.buf.Len() / size
}

// Bytes returns the raw backing bytes of the list (Len() * Kind.Size()
// bytes).
func (l *ListHandle) Bytes() []byte {
	if l.buf == nil {
		return nil
	}

	return l.buf.Bytes()
}

// Reserve grows the list's backing storage to hold at least n elements
// without reallocating further, then sets its length to n (zero-filled).
func (l *ListHandle) Reserve(n int) {
	if l.buf == nil {
		l.buf = pool.GetElementDataBuffer()
	}

	l.buf.Reset()
	l.buf.ExtendOrGrow(n * l.Kind.Size())
	clear(l.buf.B)
}

// AppendRaw appends one element's raw bytes (Kind.Size() bytes) to the
// list.
func (l *ListHandle) AppendRaw(elem []byte) {
	if l.buf == nil {
		l.buf = pool.GetElementDataBuffer()
	}

	l.buf.MustWrite(elem)
}

// Release returns the list's backing storage to the shared pool. After
// Release the handle must not be used again.
func (l *ListHandle) Release() {
	pool.PutElementDataBuffer(l.buf)
	l.buf = nil
}

// ElementData is a self-describing in-memory materialisation of one
// element's records: a single contiguous byte buffer sized
// count * recordStride, with scalar properties laid out at their natural
// alignment in header order and list properties stored out-of-line via an
// owned ListHandle at the appropriate offset. This is the neutral
// intermediate used for schema-agnostic format conversion.
type ElementData struct {
	Element Element
	Stride  int
	// Offsets[i] is the byte offset of property i within one record.
	Offsets []int
	buf     *pool.ByteBuffer
	// Lists holds one ListHandle per record per list property, indexed as
	// Lists[recordIndex][listPropertyOrdinal].
	Lists [][]ListHandle
	// listPropertyIndex maps a property index to its ordinal among list
	// properties (or -1 if the property is not a list).
	listPropertyIndex []int
}

// alignUp rounds offset up to a multiple of alignment (alignment must be a
// power of two; PLY data kinds have alignments 1/2/4/8, all powers of two).
func alignUp(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}

	return (offset + alignment - 1) &^ (alignment - 1)
}

// NewElementData allocates an ElementData for elem, laying out each
// property in header order at its natural alignment and rounding the
// record stride up to the block's overall alignment.
func NewElementData(elem Element) *ElementData {
	offsets := make([]int, len(elem.Properties))
	listIdx := make([]int, len(elem.Properties))

	offset := 0
	maxAlign := 1
	numLists := 0

	for i, p := range elem.Properties {
		var align int
		if p.IsList {
			// A list slot is an 8-byte, 8-aligned placeholder; nothing is
			// stored in it, and the list contents live in Lists.
			align = 8
			offsets[i] = alignUp(offset, align)
			offset = offsets[i] + align
			listIdx[i] = numLists
			numLists++
		} else {
			align = p.Type.Alignment()
			offsets[i] = alignUp(offset, align)
			offset = offsets[i] + p.Type.Size()
			listIdx[i] = -1
		}

		if align > maxAlign {
			maxAlign = align
		}
	}

	stride := alignUp(offset, maxAlign)

	ed := &ElementData{
		Element:           elem,
		Stride:            stride,
		Offsets:           offsets,
		buf:               pool.GetElementDataBuffer(),
		listPropertyIndex: listIdx,
	}
	ed.buf.ExtendOrGrow(stride * elem.Count)

	if numLists > 0 {
		ed.Lists = make([][]ListHandle, elem.Count)
		for r := 0; r < elem.Count; r++ {
			ed.Lists[r] = make([]ListHandle, numLists)
			for i, p := range elem.Properties {
				if p.IsList {
					ed.Lists[r][listIdx[i]] = NewListHandle(p.Type)
				}
			}
		}
	}

	return ed
}

// RecordBytes returns the raw scalar-property bytes of record r (list
// slots within this range are opaque handle placeholders, not list data;
// use List to access list contents).
func (ed *ElementData) RecordBytes(r int) []byte {
	start := r * ed.Stride
	return ed.buf.Bytes()[start : start+ed.Stride]
}

// List returns the list handle for the given property index (which must
// refer to a list property) within record r.
func (ed *ElementData) List(r, propertyIndex int) *ListHandle {
	ordinal := ed.listPropertyIndex[propertyIndex]
	return &ed.Lists[r][ordinal]
}

// Release returns every list's and the record buffer's backing storage to
// the shared pool. After Release the ElementData must not be used again.
func (ed *ElementData) Release() {
	for _, row := range ed.Lists {
		for i := range row {
			row[i].Release()
		}
	}

	ed.Lists = nil
	pool.PutElementDataBuffer(ed.buf)
	ed.buf = nil
}
