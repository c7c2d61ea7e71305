package header

import (
	"github.com/arloliu/plyio/errs"
	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/schema"
)

// Parser builds a schema.Schema by recursive-descent parsing of the token
// stream produced by a Scanner.
type Parser struct {
	s        *Scanner
	comments []Comment
}

// Parse reads and parses a full PLY header from r, which must be positioned
// at the very first byte of the stream (the "ply\n" magic number).
func Parse(r *ioutil.Reader) (schema.Schema, error) {
	p := &Parser{s: NewScanner(r)}

	if err := p.accept(TokenMagicNumber); err != nil {
		return schema.Schema{}, err
	}

	if err := p.accept(TokenFormat); err != nil {
		return schema.Schema{}, err
	}

	var f format.Format

	switch p.s.Next() {
	case TokenAscii:
		f = format.ASCII
	case TokenBinaryLittleEndian:
		f = format.BinaryLittleEndian
	case TokenBinaryBigEndian:
		f = format.BinaryBigEndian
	default:
		return schema.Schema{}, invalidFormatErr(p.s.Text())
	}

	p.s.Next() // format version, ignored

	var elements []schema.Element

	tok := p.s.Next()
	for {
		switch tok {
		case TokenEndHeader:
			return schema.Schema{Format: f, Comments: toSchemaComments(p.comments), Elements: elements}, nil
		case TokenElement:
			elem, err := p.parseElement()
			if err != nil {
				return schema.Schema{}, err
			}

			elements = append(elements, elem)
			tok = p.s.Token()
		case TokenComment:
			p.comments = append(p.comments, p.s.CommentToken())
			tok = p.s.Next()
		default:
			return schema.Schema{}, unexpectedTokenErr(TokenEndHeader, tok, p.s.Text())
		}
	}
}

func (p *Parser) accept(expected TokenKind) error {
	found := p.s.Next()
	if found != expected && !(expected == TokenIdentifier && isKeyword(found)) {
		return unexpectedTokenErr(expected, found, p.s.Text())
	}

	return nil
}

func tokenToDataKind(t TokenKind) (kind.DataKind, error) {
	switch t {
	case TokenChar:
		return kind.Int8, nil
	case TokenUChar:
		return kind.Uint8, nil
	case TokenShort:
		return kind.Int16, nil
	case TokenUShort:
		return kind.Uint16, nil
	case TokenInt:
		return kind.Int32, nil
	case TokenUInt:
		return kind.Uint32, nil
	case TokenFloat:
		return kind.Float32, nil
	case TokenDouble:
		return kind.Float64, nil
	default:
		return 0, unexpectedTokenErr(TokenChar, t, "")
	}
}

// parseElement parses one "element <name> <count>" line together with the
// "property" lines and interleaved comments that follow it, up to (but not
// including) the next element/end_header token.
func (p *Parser) parseElement() (schema.Element, error) {
	if err := p.accept(TokenIdentifier); err != nil {
		return schema.Element{}, err
	}

	name := p.s.Text()

	if err := p.accept(TokenNumber); err != nil {
		return schema.Element{}, err
	}

	count, _ := parseHeaderInt(p.s.Text())

	elem := schema.Element{Name: name, Count: count}

	tok := p.s.Next()
	for tok == TokenProperty || tok == TokenComment {
		if tok == TokenComment {
			p.comments = append(p.comments, p.s.CommentToken())
			tok = p.s.Next()

			continue
		}

		prop, err := p.parseProperty()
		if err != nil {
			return schema.Element{}, err
		}

		elem.Properties = append(elem.Properties, prop)
		tok = p.s.Next()
	}

	return elem, nil
}

func (p *Parser) parseProperty() (schema.Property, error) {
	next := p.s.Next()
	if next == TokenList {
		sizeTok := p.s.Next()

		sizeKind, err := tokenToDataKind(sizeTok)
		if err != nil {
			return schema.Property{}, err
		}

		elemTok := p.s.Next()

		elemKind, err := tokenToDataKind(elemTok)
		if err != nil {
			return schema.Property{}, err
		}

		if err := p.accept(TokenIdentifier); err != nil {
			return schema.Property{}, err
		}

		return schema.NewListProperty(p.s.Text(), elemKind, sizeKind), nil
	}

	elemKind, err := tokenToDataKind(next)
	if err != nil {
		return schema.Property{}, err
	}

	if err := p.accept(TokenIdentifier); err != nil {
		return schema.Property{}, err
	}

	return schema.NewScalarProperty(p.s.Text(), elemKind), nil
}

// parseHeaderInt parses the decimal element-count token; header counts are
// always small, non-negative, and base-10, so a plain manual scan suffices
// without pulling in the saturating numeric package used for body values.
func parseHeaderInt(s string) (int, bool) {
	n := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return n, false
		}

		n = n*10 + int(c-'0')
	}

	return n, true
}

func toSchemaComments(cs []Comment) []schema.Comment {
	if cs == nil {
		return nil
	}

	out := make([]schema.Comment, len(cs))
	for i, c := range cs {
		out[i] = schema.Comment{Line: c.Line, Text: c.Text}
	}

	return out
}

func invalidFormatErr(text string) error {
	return &errs.InvalidFormatError{Text: text}
}

func unexpectedTokenErr(expected, found TokenKind, text string) error {
	return &errs.UnexpectedTokenError{Expected: expected, Found: found, Text: text}
}
