// Package recio provides the raw-memory field accessors the parser and
// writer packages use to move scalar values between a PLY byte stream and a
// caller's in-memory record, keyed by kind.DataKind rather than a Go type
// parameter. This mirrors PLYwoot's reflect.hpp memory reinterpretation,
// adapted to operate through unsafe.Pointer field offsets resolved by the
// layout package instead of C++ template parameter packs.
package recio

import (
	"math"
	"unsafe"

	"github.com/arloliu/plyio/kind"
)

// GetBits reads the scalar of kind k stored at ptr and returns its bit
// pattern zero-extended to 64 bits: the integer value for integral kinds,
// the IEEE-754 bit pattern for float kinds.
func GetBits(ptr unsafe.Pointer, k kind.DataKind) uint64 {
	switch k {
	case kind.Int8:
		return uint64(uint8(*(*int8)(ptr)))
	case kind.Uint8:
		return uint64(*(*uint8)(ptr))
	case kind.Int16:
		return uint64(uint16(*(*int16)(ptr)))
	case kind.Uint16:
		return uint64(*(*uint16)(ptr))
	case kind.Int32:
		return uint64(uint32(*(*int32)(ptr)))
	case kind.Uint32:
		return uint64(*(*uint32)(ptr))
	case kind.Float32:
		return uint64(math.Float32bits(*(*float32)(ptr)))
	case kind.Float64:
		return math.Float64bits(*(*float64)(ptr))
	default:
		return 0
	}
}

// PutBits stores bits (as produced by GetBits, or decoded from a stream)
// into the scalar of kind k at ptr.
func PutBits(ptr unsafe.Pointer, k kind.DataKind, bits uint64) {
	switch k {
	case kind.Int8:
		*(*int8)(ptr) = int8(bits)
	case kind.Uint8:
		*(*uint8)(ptr) = uint8(bits)
	case kind.Int16:
		*(*int16)(ptr) = int16(bits)
	case kind.Uint16:
		*(*uint16)(ptr) = uint16(bits)
	case kind.Int32:
		*(*int32)(ptr) = int32(bits)
	case kind.Uint32:
		*(*uint32)(ptr) = uint32(bits)
	case kind.Float32:
		*(*float32)(ptr) = math.Float32frombits(uint32(bits))
	case kind.Float64:
		*(*float64)(ptr) = math.Float64frombits(bits)
	}
}

// AsFloat64 widens the raw integer/float bit pattern of kind k to a
// float64, used when a list/scalar property is read into a wider caller
// type than the on-disk kind.
func AsFloat64(bits uint64, k kind.DataKind) float64 {
	switch k {
	case kind.Int8:
		return float64(int8(bits))
	case kind.Uint8:
		return float64(uint8(bits))
	case kind.Int16:
		return float64(int16(bits))
	case kind.Uint16:
		return float64(uint16(bits))
	case kind.Int32:
		return float64(int32(bits))
	case kind.Uint32:
		return float64(uint32(bits))
	case kind.Float32:
		return float64(math.Float32frombits(uint32(bits)))
	case kind.Float64:
		return math.Float64frombits(bits)
	default:
		return 0
	}
}

// FromFloat64 narrows v to the bit pattern of kind k, used when encoding a
// caller-side value into a possibly narrower on-disk kind.
func FromFloat64(v float64, k kind.DataKind) uint64 {
	switch k {
	case kind.Int8:
		return uint64(uint8(int8(v)))
	case kind.Uint8:
		return uint64(uint8(v))
	case kind.Int16:
		return uint64(uint16(int16(v)))
	case kind.Uint16:
		return uint64(uint16(v))
	case kind.Int32:
		return uint64(uint32(int32(v)))
	case kind.Uint32:
		return uint64(uint32(v))
	case kind.Float32:
		return uint64(math.Float32bits(float32(v)))
	case kind.Float64:
		return math.Float64bits(v)
	default:
		return 0
	}
}

// ConvertBits reinterprets bits as the scalar of kind from, then
// re-encodes that value as the scalar of kind to, widening or narrowing as
// needed. Used when a layout tag's on-disk kind (its wire kind) differs
// from the caller destination field's kind, e.g. reading a "float"
// property into a float64 struct field.
func ConvertBits(bits uint64, from, to kind.DataKind) uint64 {
	if from == to {
		return bits
	}

	return FromFloat64(AsFloat64(bits, from), to)
}

// PutBitsAt stores bits at byte offset off within buf, interpreted as kind
// k, using the platform's native in-memory representation. Used to write
// into ElementData's neutral, non-wire-format record and list buffers.
func PutBitsAt(buf []byte, off int, k kind.DataKind, bits uint64) {
	PutBits(unsafe.Pointer(&buf[off]), k, bits)
}

// GetBitsAt reads the kind-k scalar at byte offset off within buf.
func GetBitsAt(buf []byte, off int, k kind.DataKind) uint64 {
	return GetBits(unsafe.Pointer(&buf[off]), k)
}

// AppendSlice appends one decoded element of kind k (given as a raw bit
// pattern) to the Go slice pointed to by slicePtr (a *[]T for the Go type
// matching k), growing it by one element.
func AppendSlice(slicePtr unsafe.Pointer, k kind.DataKind, bits uint64) {
	switch k {
	case kind.Int8:
		s := (*[]int8)(slicePtr)
		*s = append(*s, int8(bits))
	case kind.Uint8:
		s := (*[]uint8)(slicePtr)
		*s = append(*s, uint8(bits))
	case kind.Int16:
		s := (*[]int16)(slicePtr)
		*s = append(*s, int16(bits))
	case kind.Uint16:
		s := (*[]uint16)(slicePtr)
		*s = append(*s, uint16(bits))
	case kind.Int32:
		s := (*[]int32)(slicePtr)
		*s = append(*s, int32(bits))
	case kind.Uint32:
		s := (*[]uint32)(slicePtr)
		*s = append(*s, uint32(bits))
	case kind.Float32:
		s := (*[]float32)(slicePtr)
		*s = append(*s, math.Float32frombits(uint32(bits)))
	case kind.Float64:
		s := (*[]float64)(slicePtr)
		*s = append(*s, math.Float64frombits(bits))
	}
}

// ResetSlice truncates the Go slice at slicePtr to zero length, retaining
// its backing array, in preparation for a fresh AppendSlice run.
func ResetSlice(slicePtr unsafe.Pointer, k kind.DataKind) {
	switch k {
	case kind.Int8:
		s := (*[]int8)(slicePtr)
		*s = (*s)[:0]
	case kind.Uint8:
		s := (*[]uint8)(slicePtr)
		*s = (*s)[:0]
	case kind.Int16:
		s := (*[]int16)(slicePtr)
		*s = (*s)[:0]
	case kind.Uint16:
		s := (*[]uint16)(slicePtr)
		*s = (*s)[:0]
	case kind.Int32:
		s := (*[]int32)(slicePtr)
		*s = (*s)[:0]
	case kind.Uint32:
		s := (*[]uint32)(slicePtr)
		*s = (*s)[:0]
	case kind.Float32:
		s := (*[]float32)(slicePtr)
		*s = (*s)[:0]
	case kind.Float64:
		s := (*[]float64)(slicePtr)
		*s = (*s)[:0]
	}
}

// SliceElemAt returns the bit pattern of element i of the Go slice pointed
// to by slicePtr, read as kind k.
func SliceElemAt(slicePtr unsafe.Pointer, k kind.DataKind, i int) uint64 {
	switch k {
	case kind.Int8:
		return uint64(uint8((*(*[]int8)(slicePtr))[i]))
	case kind.Uint8:
		return uint64((*(*[]uint8)(slicePtr))[i])
	case kind.Int16:
		return uint64(uint16((*(*[]int16)(slicePtr))[i]))
	case kind.Uint16:
		return uint64((*(*[]uint16)(slicePtr))[i])
	case kind.Int32:
		return uint64(uint32((*(*[]int32)(slicePtr))[i]))
	case kind.Uint32:
		return uint64((*(*[]uint32)(slicePtr))[i])
	case kind.Float32:
		return uint64(math.Float32bits((*(*[]float32)(slicePtr))[i]))
	case kind.Float64:
		return math.Float64bits((*(*[]float64)(slicePtr))[i])
	default:
		return 0
	}
}

// SliceLen returns the length of the Go slice pointed to by slicePtr.
func SliceLen(slicePtr unsafe.Pointer, k kind.DataKind) int {
	switch k {
	case kind.Int8:
		return len(*(*[]int8)(slicePtr))
	case kind.Uint8:
		return len(*(*[]uint8)(slicePtr))
	case kind.Int16:
		return len(*(*[]int16)(slicePtr))
	case kind.Uint16:
		return len(*(*[]uint16)(slicePtr))
	case kind.Int32:
		return len(*(*[]int32)(slicePtr))
	case kind.Uint32:
		return len(*(*[]uint32)(slicePtr))
	case kind.Float32:
		return len(*(*[]float32)(slicePtr))
	case kind.Float64:
		return len(*(*[]float64)(slicePtr))
	default:
		return 0
	}
}
