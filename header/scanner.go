// Package header implements the PLY header tokenizer and recursive-descent
// parser, producing a schema.Schema from the textual header that precedes
// every PLY file's body, regardless of the body's own format.
//
// Grounded on PLYwoot's header_scanner.hpp/header_parser.hpp: the header is
// always ASCII and always ends with the "end_header" line, independent of
// the body format that follows it.
package header

import "github.com/arloliu/plyio/ioutil"

// TokenKind enumerates the lexical categories the scanner recognizes.
type TokenKind uint8

const (
	TokenUnknown TokenKind = iota
	TokenMagicNumber
	TokenFormat
	TokenAscii
	TokenBinaryLittleEndian
	TokenBinaryBigEndian
	TokenComment
	TokenElement
	TokenProperty
	TokenList
	TokenEndHeader
	TokenIdentifier
	TokenNumber
	TokenFloatingPointNumber
	// Data kind keywords.
	TokenChar
	TokenUChar
	TokenShort
	TokenUShort
	TokenInt
	TokenUInt
	TokenFloat
	TokenDouble
	TokenEof
)

func (k TokenKind) String() string {
	switch k {
	case TokenMagicNumber:
		return "ply"
	case TokenFormat:
		return "format"
	case TokenAscii:
		return "ascii"
	case TokenBinaryLittleEndian:
		return "binary_little_endian"
	case TokenBinaryBigEndian:
		return "binary_big_endian"
	case TokenComment:
		return "comment"
	case TokenElement:
		return "element"
	case TokenProperty:
		return "property"
	case TokenList:
		return "list"
	case TokenEndHeader:
		return "end_header"
	case TokenIdentifier:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenFloatingPointNumber:
		return "floating point number"
	case TokenChar, TokenUChar, TokenShort, TokenUShort, TokenInt, TokenUInt, TokenFloat, TokenDouble:
		return "data kind"
	case TokenEof:
		return "eof"
	default:
		return "unknown"
	}
}

var keywordTokens = map[string]TokenKind{
	"ply":                  TokenMagicNumber,
	"format":               TokenFormat,
	"ascii":                TokenAscii,
	"binary_little_endian": TokenBinaryLittleEndian,
	"binary_big_endian":    TokenBinaryBigEndian,
	"comment":              TokenComment,
	"element":              TokenElement,
	"property":             TokenProperty,
	"list":                 TokenList,
	"end_header":           TokenEndHeader,
	"char":                 TokenChar,
	"int8":                 TokenChar,
	"uchar":                TokenUChar,
	"uint8":                TokenUChar,
	"short":                TokenShort,
	"int16":                TokenShort,
	"ushort":               TokenUShort,
	"uint16":               TokenUShort,
	"int":                  TokenInt,
	"int32":                TokenInt,
	"uint":                 TokenUInt,
	"uint32":               TokenUInt,
	"float":                TokenFloat,
	"float32":              TokenFloat,
	"double":               TokenDouble,
	"float64":              TokenDouble,
}

// isKeyword reports whether a token kind may also be accepted wherever an
// identifier is expected (element/property names may shadow keywords).
func isKeyword(k TokenKind) bool {
	switch k {
	case TokenAscii, TokenBinaryBigEndian, TokenBinaryLittleEndian, TokenChar, TokenDouble,
		TokenElement, TokenEndHeader, TokenFloat, TokenFormat, TokenInt, TokenList,
		TokenProperty, TokenShort, TokenUChar, TokenUInt, TokenUShort:
		return true
	default:
		return false
	}
}

// Comment is a comment line captured from the header, together with its
// 1-based line number within the header text.
type Comment struct {
	Line int
	Text string
}

// Scanner tokenizes PLY header text read through an ioutil.Reader positioned
// at the very start of the stream.
type Scanner struct {
	r       *ioutil.Reader
	line    int
	token   TokenKind
	text    string
	comment Comment
}

// NewScanner constructs a Scanner over r.
func NewScanner(r *ioutil.Reader) *Scanner {
	return &Scanner{r: r, line: 1}
}

func isDelimiter(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Next scans and returns the next token kind, updating Text/Comment/Line as
// appropriate.
func (s *Scanner) Next() TokenKind {
	for {
		b, ok := s.r.Peek()
		if !ok {
			s.token = TokenEof

			return s.token
		}

		if b > 0x20 {
			break
		}

		if b == '\n' {
			s.line++
		}

		_ = s.r.Advance(1)
	}

	var buf []byte

	for {
		b, ok := s.r.Peek()
		if !ok || isDelimiter(b) {
			break
		}

		buf = append(buf, b)
		_ = s.r.Advance(1)
	}

	s.text = string(buf)
	s.token = s.classify(s.text)

	if s.token == TokenComment {
		s.readComment()
	}

	return s.token
}

func (s *Scanner) classify(text string) TokenKind {
	if text == "" {
		return TokenEof
	}

	if k, ok := keywordTokens[text]; ok {
		return k
	}

	c := text[0]
	if c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9') {
		for i := 0; i < len(text); i++ {
			if text[i] == '.' {
				return TokenFloatingPointNumber
			}
		}

		return TokenNumber
	}

	return TokenIdentifier
}

// readComment consumes the remainder of the current line (after stripping
// a single leading space or tab) as the comment's text.
func (s *Scanner) readComment() {
	line := s.line

	if b, ok := s.r.Peek(); ok && (b == ' ' || b == '\t') {
		_ = s.r.Advance(1)
	}

	var buf []byte

	for {
		b, ok := s.r.Peek()
		if !ok || b == '\n' {
			break
		}

		buf = append(buf, b)
		_ = s.r.Advance(1)
	}

	s.comment = Comment{Line: line, Text: string(buf)}
}

// Token returns the most recently scanned token kind.
func (s *Scanner) Token() TokenKind { return s.token }

// Text returns the raw text of the most recently scanned token.
func (s *Scanner) Text() string { return s.text }

// CommentToken returns the Comment captured by the most recent TokenComment
// scan.
func (s *Scanner) CommentToken() Comment { return s.comment }
