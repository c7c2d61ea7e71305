package ply

import (
	"io"

	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/internal/options"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/schema"
	"github.com/arloliu/plyio/writer"
)

// WriterOption configures a Writer via the shared functional-options
// pattern.
type WriterOption = options.Option[*writerConfig]

type writerConfig struct {
	bufSize  int
	comments []schema.Comment
}

// WithComment appends one comment line to the header text emits, in the
// order it is added.
func WithComment(text string) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.comments = append(c.comments, schema.Comment{Text: text})
	})
}

// WithWriterBufferSize overrides the default output buffer capacity.
func WithWriterBufferSize(n int) WriterOption {
	return options.NoError(func(c *writerConfig) { c.bufSize = n })
}

type pendingElement struct {
	elem   schema.Element
	layout *layout.Layout
	data   *schema.ElementData
}

// Writer accumulates elements to be written to a PLY stream in a single
// header plus body pass. Elements are emitted to Commit in the order they
// were queued.
type Writer struct {
	format  format.Format
	cfg     writerConfig
	pending []pendingElement
}

// NewWriter constructs a Writer that will emit a body in format f.
func NewWriter(f format.Format, opts ...WriterOption) *Writer {
	cfg := writerConfig{bufSize: ioutil.DefaultBufferSize}
	_ = options.Apply(&cfg, opts...) // WithComment/WithWriterBufferSize never error

	return &Writer{format: f, cfg: cfg}
}

// QueueLayout queues elem's body, to be read from l at Commit time.
func (w *Writer) QueueLayout(elem schema.Element, l *layout.Layout) {
	w.pending = append(w.pending, pendingElement{elem: elem, layout: l})
}

// QueueElementData queues elem's body, to be read from d at Commit time.
func (w *Writer) QueueElementData(elem schema.Element, d *schema.ElementData) {
	w.pending = append(w.pending, pendingElement{elem: elem, data: d})
}

func (w *Writer) schema() schema.Schema {
	elems := make([]schema.Element, len(w.pending))
	for i, p := range w.pending {
		elems[i] = p.elem
	}

	return schema.Schema{Format: w.format, Comments: w.cfg.comments, Elements: elems}
}

// Commit writes the header followed by every queued element's body, in
// queue order, to dst.
func (w *Writer) Commit(dst io.Writer) error {
	out, err := ioutil.NewWriter(dst, ioutil.WithWriterBufferSize(w.cfg.bufSize))
	if err != nil {
		return err
	}

	if err := writeHeader(out, w.schema()); err != nil {
		return err
	}

	eng := writer.New(w.format)

	for _, p := range w.pending {
		var err error

		switch {
		case p.layout != nil:
			err = eng.WriteLayout(out, p.elem, p.layout)
		case p.data != nil:
			err = eng.WriteElementData(out, p.elem, p.data)
		default:
			err = errs.ErrElementsNotQueuedInOrder
		}

		if err != nil {
			return err
		}
	}

	return out.Flush()
}
