package transaction

import (
	"errors"
	"fmt"
)

// ErrorKind classifies codec failures.
type ErrorKind string

const (
	// KindIO indicates the underlying stream could not be read or written.
	KindIO ErrorKind = "IO"
	// KindParse indicates a field value could not be converted to its type.
	KindParse ErrorKind = "PARSE"
	// KindFormat indicates a structural violation of the record layout.
	KindFormat ErrorKind = "FORMAT"
	// KindEncoding indicates a description is not valid UTF-8.
	KindEncoding ErrorKind = "ENCODING"
)

// Sentinel errors matched by errors.Is against any Error of the same kind.
var (
	ErrIO       = errors.New("i/o error")
	ErrParse    = errors.New("parse error")
	ErrFormat   = errors.New("format error")
	ErrEncoding = errors.New("encoding error")
)

var kindSentinels = map[ErrorKind]error{
	KindIO:       ErrIO,
	KindParse:    ErrParse,
	KindFormat:   ErrFormat,
	KindEncoding: ErrEncoding,
}

// Error is the failure returned by every decode and encode operation.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

// Error returns the formatted codec error string.
func (e *Error) Error() string {
	prefix := string(e.Kind)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		prefix = sentinel.Error()
	}

	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	if e.Field == "" {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}

	return fmt.Sprintf("%s: %s (%s)", prefix, msg, e.Field)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]

	return ok && sentinel == target
}

// NewIOError wraps a stream failure. The cause stays reachable through errors.Is/As.
func NewIOError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

// NewParseError reports a field value that could not be converted.
func NewParseError(field, message string, err error) error {
	return &Error{Kind: KindParse, Field: field, Message: message, Err: err}
}

// NewFormatError reports a structural violation of the record layout.
func NewFormatError(field, message string) error {
	return &Error{Kind: KindFormat, Field: field, Message: message}
}

// NewEncodingError reports description bytes that are not valid UTF-8.
func NewEncodingError(field, message string) error {
	return &Error{Kind: KindEncoding, Field: field, Message: message}
}

// KindOf returns the kind of a codec error, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var codecErr *Error
	if errors.As(err, &codecErr) {
		return codecErr.Kind
	}

	return ""
}
