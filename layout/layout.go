// Package layout describes a caller's in-memory record type as an ordered
// sequence of field tags, and provides the fast-path memcpyability check
// the parser/writer use to decide between a whole-element bulk copy and a
// property-by-property walk.
//
// This mirrors PLYwoot's reflect::Layout<Ts...>/type_traits.hpp machinery,
// adapted to Go: instead of a compile-time template parameter pack, a tag
// is matched against the caller struct's fields in declaration order using
// the standard library's reflect package, per the "runtime descriptor"
// option named in the design notes.
package layout

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/schema"
)

// TagKind identifies the role a Tag plays within a Layout.
type TagKind uint8

const (
	// TagScalar binds one PLY scalar property to one caller struct field.
	TagScalar TagKind = iota
	// TagPack binds N contiguous PLY scalar properties (no interior
	// padding) to one caller array field of length N.
	TagPack
	// TagArray binds one PLY list property of exactly N elements to one
	// caller array field of length N.
	TagArray
	// TagStride reserves one caller struct field without reading or
	// writing it; it declares zero PLY properties.
	TagStride
	// TagSkip consumes one PLY property without producing or consuming
	// any caller bytes; it binds to zero caller struct fields.
	TagSkip
	// TagList binds a PLY variable-length list property to a caller slice
	// field.
	TagList
)

// Tag is one entry in a Layout.
//
// DataKind is the kind of the caller struct field the tag binds to.
// WireKind is the on-disk kind of the PLY property(ies) the tag reads or
// writes. The two differ only for a widening/narrowing tag (see
// ScalarWiden/PackWiden): reads decode WireKind off the wire and convert
// to DataKind before storing into the caller field; writes do the
// reverse. When WireKind equals DataKind (the common case, as produced by
// Scalar/Pack/Array/Stride/List) the conversion is a no-op.
type Tag struct {
	Kind     TagKind
	DataKind kind.DataKind
	WireKind kind.DataKind
	N        int // element count for Pack/Array; unused otherwise
}

// Scalar binds the next PLY scalar property, on disk as kind k, to the
// next caller field of the same kind.
func Scalar(k kind.DataKind) Tag { return Tag{Kind: TagScalar, DataKind: k, WireKind: k, N: 1} }

// ScalarWiden binds the next PLY scalar property, declared on disk as
// wireKind (e.g. "float"), to a caller field of kind destKind (e.g.
// float64). Reads widen the on-disk value to destKind; writes narrow the
// caller's destKind value back down to wireKind.
func ScalarWiden(wireKind, destKind kind.DataKind) Tag {
	return Tag{Kind: TagScalar, DataKind: destKind, WireKind: wireKind, N: 1}
}

// Pack binds n contiguous PLY scalar properties, on disk as kind k, to
// one [n]T caller array field of the same kind.
func Pack(k kind.DataKind, n int) Tag { return Tag{Kind: TagPack, DataKind: k, WireKind: k, N: n} }

// PackWiden is Pack's widening/narrowing counterpart: n contiguous PLY
// scalar properties declared on disk as wireKind bind to one [n]T caller
// array field of kind destKind.
func PackWiden(wireKind, destKind kind.DataKind, n int) Tag {
	return Tag{Kind: TagPack, DataKind: destKind, WireKind: wireKind, N: n}
}

// Array binds one PLY list property of exactly n elements, on disk as
// kind k, to one [n]T caller field of the same kind.
func Array(k kind.DataKind, n int) Tag { return Tag{Kind: TagArray, DataKind: k, WireKind: k, N: n} }

// Stride reserves one caller field of the given data kind without
// touching the PLY stream.
func Stride(k kind.DataKind) Tag { return Tag{Kind: TagStride, DataKind: k, WireKind: k} }

// Skip consumes one PLY property without touching the caller record.
func Skip() Tag { return Tag{Kind: TagSkip} }

// List binds a PLY variable-length list property, on disk as kind k, to a
// caller []T field of the same kind.
func List(k kind.DataKind) Tag { return Tag{Kind: TagList, DataKind: k, WireKind: k} }

// NumProperties returns the number of PLY properties the tag addresses.
func (t Tag) NumProperties() int {
	switch t.Kind {
	case TagStride:
		return 0
	case TagPack:
		return t.N
	default:
		return 1
	}
}

// byteSize returns the number of bytes of caller-record space the tag
// occupies, used only for the memcpyable contiguity check.
func (t Tag) byteSize() int {
	switch t.Kind {
	case TagPack, TagArray:
		return t.N * t.DataKind.Size()
	case TagSkip:
		return 0
	default:
		return t.DataKind.Size()
	}
}

// field describes one resolved binding between a Tag and a caller struct
// field (or the absence of one, for Skip).
type field struct {
	tag        Tag
	offset     int  // byte offset within one record; meaningless for Skip
	hasBinding bool // false only for Skip
	goKind     reflect.Kind
}

// Layout is a resolved binding between an ordered sequence of Tags and a
// contiguous caller-owned buffer of Count records, each Stride bytes,
// aligned to Alignment.
type Layout struct {
	Tags      []Tag
	Count     int
	Stride    int
	Alignment int

	fields []field
	ptr    unsafe.Pointer
}

var kindToReflect = map[kind.DataKind]reflect.Kind{
	kind.Int8:    reflect.Int8,
	kind.Uint8:   reflect.Uint8,
	kind.Int16:   reflect.Int16,
	kind.Uint16:  reflect.Uint16,
	kind.Int32:   reflect.Int32,
	kind.Uint32:  reflect.Uint32,
	kind.Float32: reflect.Float32,
	kind.Float64: reflect.Float64,
}

// New resolves tags against the caller struct type T, whose fields must
// appear, in declaration order, as one field per non-Skip tag: a matching
// scalar kind for Scalar/Stride, a [N]T array for Pack/Array, or a []T
// slice for List. dst must be a non-nil slice; its length becomes the
// layout's record count.
func New[T any](dst []T, tags ...Tag) (*Layout, error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()

	fields := make([]field, len(tags))
	fieldCursor := 0

	for i, tag := range tags {
		if tag.Kind == TagSkip {
			fields[i] = field{tag: tag}

			continue
		}

		if fieldCursor >= rt.NumField() {
			return nil, fmt.Errorf("layout: tag %d has no corresponding field in %s", i, rt.Name())
		}

		sf := rt.Field(fieldCursor)
		fieldCursor++

		if err := validateField(tag, sf); err != nil {
			return nil, fmt.Errorf("layout: field %q: %w", sf.Name, err)
		}

		fields[i] = field{
			tag:        tag,
			offset:     int(sf.Offset),
			hasBinding: true,
			goKind:     sf.Type.Kind(),
		}
	}

	l := &Layout{
		Tags:      tags,
		Count:     len(dst),
		Stride:    int(rt.Size()),
		Alignment: rt.Align(),
		fields:    fields,
	}

	if len(dst) > 0 {
		l.ptr = unsafe.Pointer(&dst[0])
	}

	return l, nil
}

func validateField(tag Tag, sf reflect.StructField) error {
	switch tag.Kind {
	case TagScalar, TagStride:
		want, ok := kindToReflect[tag.DataKind]
		if !ok || sf.Type.Kind() != want {
			return fmt.Errorf("expected scalar kind %s, field is %s", tag.DataKind, sf.Type.Kind())
		}
	case TagPack, TagArray:
		if sf.Type.Kind() != reflect.Array {
			return fmt.Errorf("expected [%d]%s array, field is %s", tag.N, tag.DataKind, sf.Type.Kind())
		}

		if sf.Type.Len() != tag.N {
			return fmt.Errorf("expected array length %d, field has length %d", tag.N, sf.Type.Len())
		}

		want, ok := kindToReflect[tag.DataKind]
		if !ok || sf.Type.Elem().Kind() != want {
			return fmt.Errorf("expected element kind %s, array elements are %s", tag.DataKind, sf.Type.Elem().Kind())
		}
	case TagList:
		if sf.Type.Kind() != reflect.Slice {
			return fmt.Errorf("expected []%s slice, field is %s", tag.DataKind, sf.Type.Kind())
		}

		want, ok := kindToReflect[tag.DataKind]
		if !ok || sf.Type.Elem().Kind() != want {
			return fmt.Errorf("expected element kind %s, slice elements are %s", tag.DataKind, sf.Type.Elem().Kind())
		}
	}

	return nil
}

// RecordPointer returns an unsafe pointer to record i's first byte.
func (l *Layout) RecordPointer(i int) unsafe.Pointer {
	return unsafe.Add(l.ptr, i*l.Stride)
}

// FieldOffset returns the byte offset, within a record, of the field
// bound to tag index i. Valid only for non-Skip tags.
func (l *Layout) FieldOffset(i int) int {
	return l.fields[i].offset
}

// FieldPointer returns an unsafe pointer to the field bound to tag index i
// within record r. Valid only for non-Skip tags.
func (l *Layout) FieldPointer(r, i int) unsafe.Pointer {
	return unsafe.Add(l.RecordPointer(r), l.fields[i].offset)
}

// NumRequiredProperties returns the total number of PLY properties this
// layout addresses.
func (l *Layout) NumRequiredProperties() int {
	n := 0
	for _, t := range l.Tags {
		n += t.NumProperties()
	}

	return n
}

// ValidateAgainst checks that the layout does not address more properties
// than elem declares, per the "layout tag declares more properties than
// the element has" invariant.
func (l *Layout) ValidateAgainst(elem schema.Element) error {
	if l.NumRequiredProperties() > len(elem.Properties) {
		return fmt.Errorf("%w: layout needs %d properties, element %q has %d",
			errs.ErrLayoutExceedsProperties, l.NumRequiredProperties(), elem.Name, len(elem.Properties))
	}

	return nil
}

// IsMemcpyable reports whether this layout's property-addressing prefix of
// elem's properties can be satisfied with a single bulk byte copy (plus,
// for binary-BE, an endianness sweep): every tag is Scalar or Pack, every
// tag is non-widening (its WireKind equals its DataKind, so the on-disk
// and in-memory representations are bit-identical), every tag's data kind
// exactly equals the matching property's type, the tags are laid out with
// no interior padding between them, and none of the addressed properties
// are lists. A widening tag (ScalarWiden/PackWiden) always falls back to
// the per-property walk, since a bulk copy cannot also convert values.
func (l *Layout) IsMemcpyable(props []schema.Property) bool {
	propIdx := 0
	expectedOffset := 0

	for i, t := range l.Tags {
		if t.Kind != TagScalar && t.Kind != TagPack {
			return false
		}

		if t.WireKind != t.DataKind {
			return false
		}

		n := t.NumProperties()
		if propIdx+n > len(props) {
			return false
		}

		for k := 0; k < n; k++ {
			p := props[propIdx+k]
			if p.IsList || p.Type != t.WireKind {
				return false
			}
		}

		if l.fields[i].offset != expectedOffset {
			return false
		}

		expectedOffset += t.byteSize()
		propIdx += n
	}

	return true
}
