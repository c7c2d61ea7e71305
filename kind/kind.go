// Package kind defines the closed set of scalar data types a PLY property
// can hold, mirroring the eight PlyDataType values of the wire format.
package kind

// DataKind is the closed enum of scalar types a PLY property may declare.
type DataKind uint8

const (
	Int8 DataKind = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

// Size returns the fixed on-disk byte size of the data kind.
func (k DataKind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// Alignment returns the natural alignment of the data kind, equal to its
// size.
func (k DataKind) Alignment() int {
	return k.Size()
}

// IsFloat returns whether the data kind is a floating-point type.
func (k DataKind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// String returns the canonical PLY keyword written on output.
func (k DataKind) String() string {
	switch k {
	case Int8:
		return "char"
	case Uint8:
		return "uchar"
	case Int16:
		return "short"
	case Uint16:
		return "ushort"
	case Int32:
		return "int"
	case Uint32:
		return "uint"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return "unknown"
	}
}

// keywordTable maps every accepted keyword, including the size-suffixed
// aliases, to its DataKind. Used by the header scanner/parser on read; only
// the canonical String() form is ever produced on write.
var keywordTable = map[string]DataKind{
	"char":    Int8,
	"int8":    Int8,
	"uchar":   Uint8,
	"uint8":   Uint8,
	"short":   Int16,
	"int16":   Int16,
	"ushort":  Uint16,
	"uint16":  Uint16,
	"int":     Int32,
	"int32":   Int32,
	"uint":    Uint32,
	"uint32":  Uint32,
	"float":   Float32,
	"float32": Float32,
	"double":  Float64,
	"float64": Float64,
}

// FromKeyword resolves a header keyword (including size-suffixed aliases)
// to its DataKind.
func FromKeyword(s string) (DataKind, bool) {
	k, ok := keywordTable[s]

	return k, ok
}
