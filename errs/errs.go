// Package errs defines the sentinel errors and structured error types
// returned by the ply packages.
package errs

import "errors"

// Sentinel errors returned by the header scanner/parser, the buffered
// streams, and the format engines. Wrap these with fmt.Errorf("%w: ...")
// when additional context is useful; callers should match with errors.Is.
var (
	// ErrInvalidInputStream is returned when the byte source backing a
	// Reader/Writer is not usable at construction time.
	ErrInvalidInputStream = errors.New("plyio: invalid input stream")

	// ErrUnexpectedEof is returned when the source ends before a required
	// byte is available.
	ErrUnexpectedEof = errors.New("plyio: unexpected end of input")

	// ErrInvalidFormat is returned when the header's format line names an
	// unrecognized format keyword.
	ErrInvalidFormat = errors.New("plyio: invalid format")

	// ErrUnexpectedToken is returned on any header grammar violation.
	ErrUnexpectedToken = errors.New("plyio: unexpected token")

	// ErrInvalidListSize is returned when a list property's on-disk size
	// prefix is negative.
	ErrInvalidListSize = errors.New("plyio: invalid list size")

	// ErrListSizeMismatch is returned when an Array(T,N) layout tag is
	// applied against an on-disk list whose length differs from N.
	ErrListSizeMismatch = errors.New("plyio: list size mismatch")

	// ErrPropertyTypeMismatch is returned when a layout tag's declared
	// on-disk kind does not match the element property it is bound to.
	ErrPropertyTypeMismatch = errors.New("plyio: property type mismatch")

	// ErrLayoutExceedsProperties is returned when a layout addresses more
	// properties than an element declares.
	ErrLayoutExceedsProperties = errors.New("plyio: layout exceeds element properties")

	// ErrPropertyCountMismatch reports that a number of list handles does
	// not match an element's property count. No function in this module
	// returns it; schema.NewElementData does not return an error.
	ErrPropertyCountMismatch = errors.New("plyio: property count mismatch")

	// ErrElementNotFound is returned when a named element cannot be
	// located in the schema.
	ErrElementNotFound = errors.New("plyio: element not found")

	// ErrElementsNotQueuedInOrder reports a break in sequential element
	// access: the reader returns it when an element is consumed out of
	// header order, and the writer returns it at commit for a queued entry
	// that carries neither a layout nor element data.
	ErrElementsNotQueuedInOrder = errors.New("plyio: elements must be queued in schema order")
)

// IoError wraps a transport error raised by the underlying byte source or
// sink.
type IoError struct {
	Cause error
}

func (e *IoError) Error() string {
	return "plyio: io error: " + e.Cause.Error()
}

func (e *IoError) Unwrap() error { return e.Cause }

// NewIoError wraps cause as an IoError. Returns nil if cause is nil.
func NewIoError(cause error) error {
	if cause == nil {
		return nil
	}

	return &IoError{Cause: cause}
}

// InvalidFormatError reports the offending text of an unrecognized format
// keyword found on the header's format line.
type InvalidFormatError struct {
	Text string
}

func (e *InvalidFormatError) Error() string {
	return "plyio: invalid format found: " + e.Text
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// UnexpectedTokenError reports a header grammar violation: the token kind
// that was expected versus the one actually found, plus its source text.
//
// Expected/Found are declared as `any` here (rather than header.TokenKind)
// to avoid an import cycle between errs and header; header wraps this with
// its own typed constructor.
type UnexpectedTokenError struct {
	Expected any
	Found    any
	Text     string
}

func (e *UnexpectedTokenError) Error() string {
	return "plyio: unexpected token '" + str(e.Found) + "' found, expected '" + str(e.Expected) + "' (=" + e.Text + ") instead"
}

func (e *UnexpectedTokenError) Unwrap() error { return ErrUnexpectedToken }

func str(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}

	return "?"
}
