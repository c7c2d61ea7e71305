package ply

import (
	"strconv"

	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/schema"
)

func keywordFor(k kind.DataKind) string {
	switch k {
	case kind.Int8:
		return "char"
	case kind.Uint8:
		return "uchar"
	case kind.Int16:
		return "short"
	case kind.Uint16:
		return "ushort"
	case kind.Int32:
		return "int"
	case kind.Uint32:
		return "uint"
	case kind.Float32:
		return "float"
	case kind.Float64:
		return "double"
	default:
		return "uchar"
	}
}

func writeLine(w *ioutil.Writer, s string) error {
	if err := w.Write([]byte(s)); err != nil {
		return err
	}

	return w.WriteByte('\n')
}

// writeHeader emits the ASCII header text for s: the magic number, format
// line, then elements/properties with comments interleaved back in at the
// header line positions recorded in Comment.Line. This keeps a parse then
// re-emit idempotent rather than collapsing every comment to just after the
// format line.
func writeHeader(w *ioutil.Writer, s schema.Schema) error {
	lineNo := 1
	if err := writeLine(w, "ply"); err != nil {
		return err
	}

	lineNo++
	if err := writeLine(w, "format "+s.Format.String()+" 1.0"); err != nil {
		return err
	}

	lineNo++

	comments := s.Comments
	ci := 0

	flushComments := func() error {
		for ci < len(comments) && comments[ci].Line <= lineNo {
			if err := writeLine(w, "comment "+comments[ci].Text); err != nil {
				return err
			}

			lineNo++
			ci++
		}

		return nil
	}

	for _, elem := range s.Elements {
		if err := flushComments(); err != nil {
			return err
		}

		if err := writeLine(w, "element "+elem.Name+" "+strconv.Itoa(elem.Count)); err != nil {
			return err
		}

		lineNo++

		for _, p := range elem.Properties {
			if err := flushComments(); err != nil {
				return err
			}

			var line string
			if p.IsList {
				line = "property list " + keywordFor(p.SizeType) + " " + keywordFor(p.Type) + " " + p.Name
			} else {
				line = "property " + keywordFor(p.Type) + " " + p.Name
			}

			if err := writeLine(w, line); err != nil {
				return err
			}

			lineNo++
		}
	}

	// Any comments positioned at or after the last property (e.g. just
	// before end_header) are flushed here.
	for ; ci < len(comments); ci++ {
		if err := writeLine(w, "comment "+comments[ci].Text); err != nil {
			return err
		}
	}

	return writeLine(w, "end_header")
}
