// Package ply is the public entry point for decoding and encoding PLY
// (Polygon File Format) streams: a self-describing ASCII header followed by
// a body in one of three formats (ascii, binary_little_endian,
// binary_big_endian). Reader and Writer erase the choice of body format
// behind the header/parser/writer packages' per-format engines.
package ply

import (
	"io"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/header"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/parser"
	"github.com/arloliu/plyio/schema"
)

// Reader decodes one PLY stream's header and, element by element and in
// header order, its body.
type Reader struct {
	r        *ioutil.Reader
	schema   schema.Schema
	engine   parser.Engine
	nextElem int
}

// NewReader parses src's header and returns a Reader positioned at the
// start of the first element's body.
func NewReader(src io.Reader) (*Reader, error) {
	r, err := ioutil.NewReader(src)
	if err != nil {
		return nil, err
	}

	s, err := header.Parse(r)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, schema: s, engine: parser.New(s.Format)}, nil
}

// Format returns the body encoding declared by the header.
func (rd *Reader) Format() format.Format { return rd.schema.Format }

// Comments returns every comment line captured from the header, in header
// order, each carrying its original 1-based line number.
func (rd *Reader) Comments() []schema.Comment { return rd.schema.Comments }

// Elements returns the element specifications declared by the header, in
// header order.
func (rd *Reader) Elements() []schema.Element { return rd.schema.Elements }

// Element returns the specification of the named element.
func (rd *Reader) Element(name string) (schema.Element, bool) {
	i := rd.schema.ElementIndex(name)
	if i < 0 {
		return schema.Element{}, false
	}

	return rd.schema.Elements[i], true
}

// Find returns the header-order index of the named element, fast-forwarding
// past any earlier, unconsumed elements by skipping their bodies on the
// wire. A subsequent Skip/ReadInto/ReadElementData call on the returned
// index then satisfies checkSequence's in-order requirement directly. Find
// cannot recover an element whose body has already been consumed; it
// reports not-found in that case.
func (rd *Reader) Find(name string) (int, bool) {
	i := rd.schema.ElementIndex(name)
	if i < 0 || i < rd.nextElem {
		return 0, false
	}

	for rd.nextElem < i {
		if err := rd.engine.Skip(rd.r, rd.schema.Elements[rd.nextElem]); err != nil {
			return 0, false
		}

		rd.nextElem++
	}

	return i, true
}

func (rd *Reader) checkSequence(elementIndex int) error {
	if elementIndex != rd.nextElem {
		return errs.ErrElementsNotQueuedInOrder
	}

	if elementIndex < 0 || elementIndex >= len(rd.schema.Elements) {
		return errs.ErrElementNotFound
	}

	return nil
}

// Skip advances past the body of the element at elementIndex without
// decoding it. Elements must be consumed in header order.
func (rd *Reader) Skip(elementIndex int) error {
	if err := rd.checkSequence(elementIndex); err != nil {
		return err
	}

	if err := rd.engine.Skip(rd.r, rd.schema.Elements[elementIndex]); err != nil {
		return err
	}

	rd.nextElem++

	return nil
}

// ReadInto decodes the element at elementIndex directly into l's
// caller-described buffer. l must address no more properties than the
// element declares; any properties beyond what l addresses are skipped on
// the wire without being copied anywhere. Elements must be consumed in
// header order.
func (rd *Reader) ReadInto(elementIndex int, l *layout.Layout) error {
	if err := rd.checkSequence(elementIndex); err != nil {
		return err
	}

	elem := rd.schema.Elements[elementIndex]
	if err := l.ValidateAgainst(elem); err != nil {
		return err
	}

	if err := rd.engine.ReadInto(rd.r, elem, l); err != nil {
		return err
	}

	rd.nextElem++

	return nil
}

// ReadElementData decodes the element at elementIndex into a freshly
// allocated, schema-agnostic ElementData. Elements must be consumed in
// header order.
func (rd *Reader) ReadElementData(elementIndex int) (*schema.ElementData, error) {
	if err := rd.checkSequence(elementIndex); err != nil {
		return nil, err
	}

	ed, err := rd.engine.ReadElementData(rd.r, rd.schema.Elements[elementIndex])
	if err != nil {
		return nil, err
	}

	rd.nextElem++

	return ed, nil
}
