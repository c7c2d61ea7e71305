// Package schema defines the immutable types recovered from a PLY header:
// properties, elements, comments, and the overall schema, plus the
// ElementData block used as the schema-agnostic neutral intermediate for
// format conversion.
package schema

import (
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/kind"
)

// Property is an immutable tuple describing one named field within an
// element. For a non-list property, SizeType is unused (left as its zero
// value). For a list property, SizeType is the data kind of the on-disk
// element-count prefix and Type is the data kind of each list element.
type Property struct {
	Name     string
	Type     kind.DataKind
	IsList   bool
	SizeType kind.DataKind
}

// NewScalarProperty constructs a non-list property.
func NewScalarProperty(name string, t kind.DataKind) Property {
	return Property{Name: name, Type: t}
}

// NewListProperty constructs a list property with the given element type
// and on-disk size-prefix type.
func NewListProperty(name string, elemType, sizeType kind.DataKind) Property {
	return Property{Name: name, Type: elemType, IsList: true, SizeType: sizeType}
}

// Equal reports whether p and other are structurally identical.
func (p Property) Equal(other Property) bool {
	return p == other
}

// Element is an immutable tuple: a name, a record count, and an ordered,
// possibly-duplicate-containing list of properties.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// ByteLength returns the element's total on-disk byte length in the given
// binary format, and whether the computation was possible in constant
// time (false when the element contains a list property, in which case
// the caller must walk records to compute the length).
func (e Element) ByteLength(f format.Format) (int, bool) {
	if f == format.ASCII {
		return 0, false
	}

	stride := 0
	for _, p := range e.Properties {
		if p.IsList {
			return 0, false
		}

		stride += p.Type.Size()
	}

	return stride * e.Count, true
}

// HasLists reports whether any property in the element is a list.
func (e Element) HasLists() bool {
	for _, p := range e.Properties {
		if p.IsList {
			return true
		}
	}

	return false
}

// Comment is a header comment line together with its 1-based position
// within the header.
type Comment struct {
	Line int
	Text string
}

// Schema is the tuple recovered from a PLY header: the body's encoding
// format, the header's comments in header order, and its elements in
// on-disk order.
type Schema struct {
	Format   format.Format
	Comments []Comment
	Elements []Element
}

// ElementIndex returns the index of the named element, or -1 if absent.
func (s Schema) ElementIndex(name string) int {
	for i, e := range s.Elements {
		if e.Name == name {
			return i
		}
	}

	return -1
}
