package parser

import (
	"unsafe"

	"github.com/arloliu/plyio/endian"
	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/internal/recio"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/schema"
)

// binaryEngine reads element bodies in one of the two fixed-width
// binary formats, byte-order aware via order.
type binaryEngine struct {
	order endian.EndianEngine
	fmt   format.Format
}

func unsafeByteView(ptr unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(ptr), n)
}

// sweepSwap reverses the byte order of every Scalar/Pack element within
// buf, a contiguous memcpy'd byte range covering exactly l's fast-path
// tags in order.
func sweepSwap(buf []byte, l *layout.Layout) {
	offset := 0

	for _, tag := range l.Tags {
		width := tag.DataKind.Size()

		for k := 0; k < tag.NumProperties(); k++ {
			endian.SwapInPlace(buf[offset:offset+width], width)
			offset += width
		}
	}
}

func (e binaryEngine) needsSwap() bool {
	return !endian.CompareNativeEndian(e.order)
}

func (e binaryEngine) readScalarBits(r *ioutil.Reader, k kind.DataKind) (uint64, error) {
	var tmp [8]byte

	width := k.Size()
	if err := r.ReadFull(tmp[:width]); err != nil {
		return 0, err
	}

	switch width {
	case 1:
		return uint64(tmp[0]), nil
	case 2:
		return uint64(e.order.Uint16(tmp[:2])), nil
	case 4:
		return uint64(e.order.Uint32(tmp[:4])), nil
	default:
		return e.order.Uint64(tmp[:8]), nil
	}
}

func (e binaryEngine) readSize(r *ioutil.Reader, k kind.DataKind) (int, error) {
	bits, err := e.readScalarBits(r, k)
	if err != nil {
		return 0, err
	}

	n := recio.AsFloat64(bits, k)
	if n < 0 {
		return 0, errs.ErrInvalidListSize
	}

	return int(n), nil
}

func (e binaryEngine) skipProperty(r *ioutil.Reader, p schema.Property) error {
	if !p.IsList {
		return r.Skip(p.Type.Size())
	}

	n, err := e.readSize(r, p.SizeType)
	if err != nil {
		return err
	}

	return r.Skip(n * p.Type.Size())
}

// fastPathByteRange returns the byte span of elem's properties that l's
// tags address via Scalar/Pack bindings, provided every tag in l is
// memcpyable and those tags cover elem's entire record (no trailing
// unaddressed properties, no list properties anywhere in elem). Returns
// ok=false when the fast path does not apply.
func fastPathByteRange(l *layout.Layout, elem schema.Element) (n int, ok bool) {
	if elem.HasLists() || !l.IsMemcpyable(elem.Properties) {
		return 0, false
	}

	if l.NumRequiredProperties() != len(elem.Properties) {
		return 0, false
	}

	total := 0
	for _, p := range elem.Properties {
		total += p.Type.Size()
	}

	return total, true
}

func (e binaryEngine) ReadInto(r *ioutil.Reader, elem schema.Element, l *layout.Layout) error {
	if n, ok := fastPathByteRange(l, elem); ok {
		for rec := 0; rec < elem.Count; rec++ {
			buf := unsafeByteView(l.RecordPointer(rec), n)
			if err := r.ReadFull(buf); err != nil {
				return err
			}

			if e.needsSwap() {
				sweepSwap(buf, l)
			}
		}

		return nil
	}

	for rec := 0; rec < elem.Count; rec++ {
		propIdx := 0

		for ti, tag := range l.Tags {
			switch tag.Kind {
			case layout.TagScalar:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				bits, err := e.readScalarBits(r, tag.WireKind)
				if err != nil {
					return err
				}

				recio.PutBits(l.FieldPointer(rec, ti), tag.DataKind, recio.ConvertBits(bits, tag.WireKind, tag.DataKind))
				propIdx++

			case layout.TagPack:
				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					p := elem.Properties[propIdx+k]
					if p.Type != tag.WireKind {
						return errs.ErrPropertyTypeMismatch
					}

					bits, err := e.readScalarBits(r, tag.WireKind)
					if err != nil {
						return err
					}

					converted := recio.ConvertBits(bits, tag.WireKind, tag.DataKind)
					recio.PutBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind, converted)
				}

				propIdx += tag.N

			case layout.TagArray:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				n, err := e.readSize(r, p.SizeType)
				if err != nil {
					return err
				}

				if n != tag.N {
					return errs.ErrListSizeMismatch
				}

				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					bits, err := e.readScalarBits(r, tag.WireKind)
					if err != nil {
						return err
					}

					converted := recio.ConvertBits(bits, tag.WireKind, tag.DataKind)
					recio.PutBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind, converted)
				}

				propIdx++

			case layout.TagStride:
				// No PLY property consumed.

			case layout.TagSkip:
				if err := e.skipProperty(r, elem.Properties[propIdx]); err != nil {
					return err
				}

				propIdx++

			case layout.TagList:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				n, err := e.readSize(r, p.SizeType)
				if err != nil {
					return err
				}

				slicePtr := l.FieldPointer(rec, ti)
				recio.ResetSlice(slicePtr, tag.DataKind)

				for k := 0; k < n; k++ {
					bits, err := e.readScalarBits(r, tag.WireKind)
					if err != nil {
						return err
					}

					recio.AppendSlice(slicePtr, tag.DataKind, recio.ConvertBits(bits, tag.WireKind, tag.DataKind))
				}

				propIdx++
			}
		}

		for ; propIdx < len(elem.Properties); propIdx++ {
			if err := e.skipProperty(r, elem.Properties[propIdx]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e binaryEngine) ReadElementData(r *ioutil.Reader, elem schema.Element) (*schema.ElementData, error) {
	ed := schema.NewElementData(elem)

	for rec := 0; rec < elem.Count; rec++ {
		for i, p := range elem.Properties {
			if !p.IsList {
				bits, err := e.readScalarBits(r, p.Type)
				if err != nil {
					return nil, err
				}

				recio.PutBitsAt(ed.RecordBytes(rec), ed.Offsets[i], p.Type, bits)

				continue
			}

			n, err := e.readSize(r, p.SizeType)
			if err != nil {
				return nil, err
			}

			list := ed.List(rec, i)
			list.Reserve(n)

			for k := 0; k < n; k++ {
				bits, err := e.readScalarBits(r, p.Type)
				if err != nil {
					return nil, err
				}

				putListElem(list, k, p.Type, bits)
			}
		}
	}

	return ed, nil
}

func (e binaryEngine) Skip(r *ioutil.Reader, elem schema.Element) error {
	if n, ok := elem.ByteLength(e.fmt); ok {
		return r.Skip(n)
	}

	for rec := 0; rec < elem.Count; rec++ {
		for _, p := range elem.Properties {
			if err := e.skipProperty(r, p); err != nil {
				return err
			}
		}
	}

	return nil
}
