package writer

import (
	"github.com/arloliu/plyio/endian"
	"github.com/arloliu/plyio/internal/recio"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/schema"
)

type binaryEngine struct {
	order endian.EndianEngine
}

func (e binaryEngine) writeScalarBits(w *ioutil.Writer, k kind.DataKind, bits uint64) error {
	width := k.Size()

	if e.order == endian.GetLittleEndianEngine() {
		return w.WriteScalarLE(bits, width)
	}

	var tmp [8]byte

	switch width {
	case 1:
		tmp[0] = byte(bits)
	case 2:
		e.order.PutUint16(tmp[:2], uint16(bits))
	case 4:
		e.order.PutUint32(tmp[:4], uint32(bits))
	default:
		e.order.PutUint64(tmp[:8], bits)
	}

	return w.Write(tmp[:width])
}

func (e binaryEngine) writeSize(w *ioutil.Writer, k kind.DataKind, n int) error {
	return e.writeScalarBits(w, k, recio.FromFloat64(float64(n), k))
}

func (e binaryEngine) writeZeroProperty(w *ioutil.Writer, p schema.Property) error {
	if !p.IsList {
		return e.writeScalarBits(w, p.Type, 0)
	}

	return e.writeSize(w, p.SizeType, 0)
}

func (e binaryEngine) WriteLayout(w *ioutil.Writer, elem schema.Element, l *layout.Layout) error {
	for rec := 0; rec < l.Count; rec++ {
		propIdx := 0

		for ti, tag := range l.Tags {
			switch tag.Kind {
			case layout.TagScalar:
				bits := recio.GetBits(l.FieldPointer(rec, ti), tag.DataKind)
				wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
				if err := e.writeScalarBits(w, tag.WireKind, wire); err != nil {
					return err
				}

				propIdx++

			case layout.TagPack:
				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					bits := recio.GetBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := e.writeScalarBits(w, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx += tag.N

			case layout.TagArray:
				if err := e.writeSize(w, elem.Properties[propIdx].SizeType, tag.N); err != nil {
					return err
				}

				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					bits := recio.GetBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := e.writeScalarBits(w, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx++

			case layout.TagStride:
				// No PLY property emitted.

			case layout.TagSkip:
				if err := e.writeZeroProperty(w, elem.Properties[propIdx]); err != nil {
					return err
				}

				propIdx++

			case layout.TagList:
				p := elem.Properties[propIdx]
				slicePtr := l.FieldPointer(rec, ti)
				n := recio.SliceLen(slicePtr, tag.DataKind)

				if err := e.writeSize(w, p.SizeType, n); err != nil {
					return err
				}

				for k := 0; k < n; k++ {
					bits := recio.SliceElemAt(slicePtr, tag.DataKind, k)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := e.writeScalarBits(w, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx++
			}
		}

		for ; propIdx < len(elem.Properties); propIdx++ {
			if err := e.writeZeroProperty(w, elem.Properties[propIdx]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e binaryEngine) WriteElementData(w *ioutil.Writer, elem schema.Element, d *schema.ElementData) error {
	for rec := 0; rec < elem.Count; rec++ {
		for i, p := range elem.Properties {
			if !p.IsList {
				bits := recio.GetBitsAt(d.RecordBytes(rec), d.Offsets[i], p.Type)
				if err := e.writeScalarBits(w, p.Type, bits); err != nil {
					return err
				}

				continue
			}

			list := d.List(rec, i)
			n := list.Len()

			if err := e.writeSize(w, p.SizeType, n); err != nil {
				return err
			}

			for k := 0; k < n; k++ {
				bits := listElemBits(list, k, p.Type)
				if err := e.writeScalarBits(w, p.Type, bits); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
