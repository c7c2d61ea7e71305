package writer

import (
	"math"

	"github.com/arloliu/plyio/internal/recio"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/numeric"
	"github.com/arloliu/plyio/schema"
)

type asciiEngine struct{}

func writeToken(w *ioutil.Writer, sep *bool, k kind.DataKind, bits uint64) error {
	if *sep {
		if err := w.WriteByte(' '); err != nil {
			return err
		}
	}

	*sep = true

	var tmp [32]byte

	var out []byte

	switch k {
	case kind.Int8:
		out = numeric.FormatSignedInt(tmp[:0], int64(int8(bits)))
	case kind.Uint8:
		out = numeric.FormatUnsignedInt(tmp[:0], bits&0xff)
	case kind.Int16:
		out = numeric.FormatSignedInt(tmp[:0], int64(int16(bits)))
	case kind.Uint16:
		out = numeric.FormatUnsignedInt(tmp[:0], bits&0xffff)
	case kind.Int32:
		out = numeric.FormatSignedInt(tmp[:0], int64(int32(bits)))
	case kind.Uint32:
		out = numeric.FormatUnsignedInt(tmp[:0], bits&0xffffffff)
	case kind.Float32:
		out = numeric.FormatFloat32(tmp[:0], math.Float32frombits(uint32(bits)))
	case kind.Float64:
		out = numeric.FormatFloat64(tmp[:0], math.Float64frombits(bits))
	}

	return w.Write(out)
}

func (asciiEngine) WriteLayout(w *ioutil.Writer, elem schema.Element, l *layout.Layout) error {
	for rec := 0; rec < l.Count; rec++ {
		sep := false
		propIdx := 0

		for ti, tag := range l.Tags {
			switch tag.Kind {
			case layout.TagScalar:
				bits := recio.GetBits(l.FieldPointer(rec, ti), tag.DataKind)
				wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
				if err := writeToken(w, &sep, tag.WireKind, wire); err != nil {
					return err
				}

				propIdx++

			case layout.TagPack:
				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					bits := recio.GetBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := writeToken(w, &sep, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx += tag.N

			case layout.TagArray:
				if err := writeToken(w, &sep, elem.Properties[propIdx].SizeType, uint64(tag.N)); err != nil {
					return err
				}

				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					bits := recio.GetBits(addOffset(base, k*tag.DataKind.Size()), tag.DataKind)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := writeToken(w, &sep, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx++

			case layout.TagStride:
				// Reserved caller slot; no PLY property emitted.

			case layout.TagSkip:
				if err := writeZeroProperty(w, &sep, elem.Properties[propIdx]); err != nil {
					return err
				}

				propIdx++

			case layout.TagList:
				p := elem.Properties[propIdx]
				slicePtr := l.FieldPointer(rec, ti)
				n := recio.SliceLen(slicePtr, tag.DataKind)

				if err := writeToken(w, &sep, p.SizeType, uint64(n)); err != nil {
					return err
				}

				for k := 0; k < n; k++ {
					bits := recio.SliceElemAt(slicePtr, tag.DataKind, k)
					wire := recio.ConvertBits(bits, tag.DataKind, tag.WireKind)
					if err := writeToken(w, &sep, tag.WireKind, wire); err != nil {
						return err
					}
				}

				propIdx++
			}
		}

		for ; propIdx < len(elem.Properties); propIdx++ {
			if err := writeZeroProperty(w, &sep, elem.Properties[propIdx]); err != nil {
				return err
			}
		}

		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}

func writeZeroProperty(w *ioutil.Writer, sep *bool, p schema.Property) error {
	if !p.IsList {
		return writeToken(w, sep, p.Type, 0)
	}

	return writeToken(w, sep, p.SizeType, 0)
}

func (asciiEngine) WriteElementData(w *ioutil.Writer, elem schema.Element, d *schema.ElementData) error {
	for rec := 0; rec < elem.Count; rec++ {
		sep := false

		for i, p := range elem.Properties {
			if !p.IsList {
				bits := recio.GetBitsAt(d.RecordBytes(rec), d.Offsets[i], p.Type)
				if err := writeToken(w, &sep, p.Type, bits); err != nil {
					return err
				}

				continue
			}

			list := d.List(rec, i)
			n := list.Len()

			if err := writeToken(w, &sep, p.SizeType, uint64(n)); err != nil {
				return err
			}

			for k := 0; k < n; k++ {
				bits := listElemBits(list, k, p.Type)
				if err := writeToken(w, &sep, p.Type, bits); err != nil {
					return err
				}
			}
		}

		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}
