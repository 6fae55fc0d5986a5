package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrPositional      = NewError("unsupported positional parameter")
	ErrNesting         = NewError("mismatched delimiters")
	ErrUnterminated    = NewError("unterminated script block")
	ErrSubstitution    = NewError("substitution failed")
	ErrUnknownCommand  = NewError("unknown @command")
	ErrDirectiveFormat = NewError("malformed directive")
)

// Error represents an error with optional structured logging attributes and
// an optional context snippet with highlighted spans.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	text  string      // Context snippet, if decorated
	spans []Range     // Offending spans within text
	// decorated is set once the error carries its context snippet.
	decorated bool
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	if ee, ok := err.(*Error); ok {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The first line is "<msg>: <cause>" (either part may be absent). A decorated
// error follows it with the highlighted context snippet.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	head := strings.Join(part, ": ")

	if !e.decorated {
		return head
	}

	return head + "\n" + Highlight(e.text, e.spans...)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.decorated {
		attrs = append(attrs, slog.String("text", e.text))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return &c
}

// At attaches the context snippet and offending spans to a copy of e.
func (e *Error) At(text string, spans ...Range) *Error {
	c := *e
	c.text = text
	c.spans = append([]Range(nil), spans...)
	c.decorated = true

	return &c
}

// Text returns the context snippet and spans attached by [Error.At].
func (e *Error) Text() (string, []Range) {
	return e.text, e.spans
}

// Decorated reports whether err, or any error it wraps, already carries a
// context snippet.
func Decorated(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.decorated {
			return true
		}

		err = errors.Unwrap(err)
	}

	return false
}

// Decorate attaches text and spans to err unless some error in its chain is
// already decorated, in which case err is returned unchanged.
func Decorate(err error, text string, spans ...Range) error {
	if err == nil || Decorated(err) {
		return err
	}

	return WrapError(err).At(text, spans...)
}
