// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// This enables cleaner API design and improved performance for binary data operations.
//
// # Basic Usage
//
// Pick the engine matching the byte order of the data being read or written:
//
//	import "github.com/arloliu/plyio/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint32(buf)
//
// For big-endian data:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, v)
//
// # Performance
//
// Using EndianEngine (which includes AppendByteOrder) provides approximately 30%
// better performance for appending operations compared to ByteOrder alone:
//
//	// Using EndianEngine (recommended)
//	buf = engine.AppendUint64(buf, value)  // ~30% faster
//
//	// Using ByteOrder only
//	tmp := make([]byte, 8)
//	engine.PutUint64(tmp, value)
//	buf = append(buf, tmp...)  // Slower, extra allocation
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SwapUint16 reverses the byte order of v.
func SwapUint16(v uint16) uint16 {
	return v<<8 | v>>8
}

// SwapUint32 reverses the byte order of v.
func SwapUint32(v uint32) uint32 {
	return (v&0x000000FF)<<24 | (v&0x0000FF00)<<8 | (v&0x00FF0000)>>8 | (v&0xFF000000)>>24
}

// SwapUint64 reverses the byte order of v.
func SwapUint64(v uint64) uint64 {
	return uint64(SwapUint32(uint32(v)))<<32 | uint64(SwapUint32(uint32(v>>32)))
}

// SwapFloat32 reverses the byte order of v via its IEEE-754 bit pattern.
func SwapFloat32(v float32) float32 {
	return math.Float32frombits(SwapUint32(math.Float32bits(v)))
}

// SwapFloat64 reverses the byte order of v via its IEEE-754 bit pattern.
func SwapFloat64(v float64) float64 {
	return math.Float64frombits(SwapUint64(math.Float64bits(v)))
}

// SwapInPlace reverses the byte order of every width-byte scalar in buf.
// width must be 1, 2, 4, or 8; width == 1 is a no-op since single-byte
// scalars are never swapped.
func SwapInPlace(buf []byte, width int) {
	switch width {
	case 1:
		return
	case 2:
		for i := 0; i+2 <= len(buf); i += 2 {
			buf[i], buf[i+1] = buf[i+1], buf[i]
		}
	case 4:
		for i := 0; i+4 <= len(buf); i += 4 {
			buf[i], buf[i+1], buf[i+2], buf[i+3] = buf[i+3], buf[i+2], buf[i+1], buf[i]
		}
	case 8:
		for i := 0; i+8 <= len(buf); i += 8 {
			buf[i], buf[i+1], buf[i+2], buf[i+3], buf[i+4], buf[i+5], buf[i+6], buf[i+7] =
				buf[i+7], buf[i+6], buf[i+5], buf[i+4], buf[i+3], buf[i+2], buf[i+1], buf[i]
		}
	}
}
