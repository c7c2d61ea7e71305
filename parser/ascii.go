package parser

import (
	"math"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/internal/recio"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/numeric"
	"github.com/arloliu/plyio/schema"
)

// asciiEngine reads element bodies in the whitespace-separated
// textual format.
type asciiEngine struct{}

func readToken(r *ioutil.Reader) ([]byte, error) {
	r.SkipWhitespace()

	var buf []byte

	for {
		b, ok := r.Peek()
		if !ok {
			if len(buf) == 0 {
				return nil, errs.ErrUnexpectedEof
			}

			break
		}

		if b <= 0x20 {
			break
		}

		buf = append(buf, b)
		_ = r.Advance(1)
	}

	return buf, nil
}

func parseTokenBits(tok []byte, k kind.DataKind) uint64 {
	switch k {
	case kind.Int8:
		v, _ := numeric.ParseSignedInt(tok, 8)
		return uint64(uint8(v))
	case kind.Uint8:
		v, _ := numeric.ParseUnsignedInt(tok, 8)
		return v
	case kind.Int16:
		v, _ := numeric.ParseSignedInt(tok, 16)
		return uint64(uint16(v))
	case kind.Uint16:
		v, _ := numeric.ParseUnsignedInt(tok, 16)
		return v
	case kind.Int32:
		v, _ := numeric.ParseSignedInt(tok, 32)
		return uint64(uint32(v))
	case kind.Uint32:
		v, _ := numeric.ParseUnsignedInt(tok, 32)
		return v
	case kind.Float32:
		v, _ := numeric.ParseFloat32(tok)
		return uint64(math.Float32bits(v))
	case kind.Float64:
		v, _ := numeric.ParseFloat64(tok)
		return math.Float64bits(v)
	default:
		return 0
	}
}

func parseTokenUint(tok []byte, k kind.DataKind) uint64 {
	v, _ := numeric.ParseUnsignedInt(tok, k.Size()*8)
	return v
}

// skipProperty discards one property's token(s) without decoding them: a
// single token for a scalar property, or a size token followed by that
// many element tokens for a list property.
func skipProperty(r *ioutil.Reader, p schema.Property) error {
	if !p.IsList {
		_, err := readToken(r)

		return err
	}

	sizeTok, err := readToken(r)
	if err != nil {
		return err
	}

	n := parseTokenUint(sizeTok, p.SizeType)
	for i := uint64(0); i < n; i++ {
		if _, err := readToken(r); err != nil {
			return err
		}
	}

	return nil
}

func (asciiEngine) ReadInto(r *ioutil.Reader, elem schema.Element, l *layout.Layout) error {
	for rec := 0; rec < elem.Count; rec++ {
		propIdx := 0

		for ti, tag := range l.Tags {
			switch tag.Kind {
			case layout.TagScalar:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				tok, err := readToken(r)
				if err != nil {
					return err
				}

				bits := recio.ConvertBits(parseTokenBits(tok, tag.WireKind), tag.WireKind, tag.DataKind)
				recio.PutBits(l.FieldPointer(rec, ti), tag.DataKind, bits)
				propIdx++

			case layout.TagPack:
				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					p := elem.Properties[propIdx+k]
					if p.Type != tag.WireKind {
						return errs.ErrPropertyTypeMismatch
					}

					tok, err := readToken(r)
					if err != nil {
						return err
					}

					bits := recio.ConvertBits(parseTokenBits(tok, tag.WireKind), tag.WireKind, tag.DataKind)
					elemPtr := addOffset(base, k*tag.DataKind.Size())
					recio.PutBits(elemPtr, tag.DataKind, bits)
				}

				propIdx += tag.N

			case layout.TagArray:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				sizeTok, err := readToken(r)
				if err != nil {
					return err
				}

				n := parseTokenUint(sizeTok, p.SizeType)
				if int(n) != tag.N {
					return errs.ErrListSizeMismatch
				}

				base := l.FieldPointer(rec, ti)
				for k := 0; k < tag.N; k++ {
					tok, err := readToken(r)
					if err != nil {
						return err
					}

					bits := recio.ConvertBits(parseTokenBits(tok, tag.WireKind), tag.WireKind, tag.DataKind)
					elemPtr := addOffset(base, k*tag.DataKind.Size())
					recio.PutBits(elemPtr, tag.DataKind, bits)
				}

				propIdx++

			case layout.TagStride:
				// Reserved caller slot; no PLY property to consume.

			case layout.TagSkip:
				if err := skipProperty(r, elem.Properties[propIdx]); err != nil {
					return err
				}

				propIdx++

			case layout.TagList:
				p := elem.Properties[propIdx]
				if p.Type != tag.WireKind {
					return errs.ErrPropertyTypeMismatch
				}

				sizeTok, err := readToken(r)
				if err != nil {
					return err
				}

				n := parseTokenUint(sizeTok, p.SizeType)
				slicePtr := l.FieldPointer(rec, ti)
				recio.ResetSlice(slicePtr, tag.DataKind)

				for k := uint64(0); k < n; k++ {
					tok, err := readToken(r)
					if err != nil {
						return err
					}

					bits := recio.ConvertBits(parseTokenBits(tok, tag.WireKind), tag.WireKind, tag.DataKind)
					recio.AppendSlice(slicePtr, tag.DataKind, bits)
				}

				propIdx++
			}
		}

		for ; propIdx < len(elem.Properties); propIdx++ {
			if err := skipProperty(r, elem.Properties[propIdx]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (asciiEngine) ReadElementData(r *ioutil.Reader, elem schema.Element) (*schema.ElementData, error) {
	ed := schema.NewElementData(elem)

	for rec := 0; rec < elem.Count; rec++ {
		for i, p := range elem.Properties {
			if !p.IsList {
				tok, err := readToken(r)
				if err != nil {
					return nil, err
				}

				bits := parseTokenBits(tok, p.Type)
				recio.PutBitsAt(ed.RecordBytes(rec), ed.Offsets[i], p.Type, bits)

				continue
			}

			sizeTok, err := readToken(r)
			if err != nil {
				return nil, err
			}

			n := parseTokenUint(sizeTok, p.SizeType)
			list := ed.List(rec, i)
			list.Reserve(int(n))

			for k := uint64(0); k < n; k++ {
				tok, err := readToken(r)
				if err != nil {
					return nil, err
				}

				bits := parseTokenBits(tok, p.Type)
				putListElem(list, int(k), p.Type, bits)
			}
		}
	}

	return ed, nil
}

func (asciiEngine) Skip(r *ioutil.Reader, elem schema.Element) error {
	for rec := 0; rec < elem.Count; rec++ {
		for _, p := range elem.Properties {
			if err := skipProperty(r, p); err != nil {
				return err
			}
		}
	}

	return nil
}
