package bytecode

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes decoding errors.
type ErrorKind uint8

const (
	// ErrTruncated indicates the stream ended inside a required field.
	ErrTruncated ErrorKind = iota

	// ErrUnsupportedOpcode indicates an instruction whose operands cannot
	// be decoded (call/callnz label parameters).
	ErrUnsupportedOpcode

	// ErrMalformed indicates a structurally invalid block.
	ErrMalformed

	// ErrUnknownShaderKind indicates a version word that is neither a
	// vertex nor a pixel shader.
	ErrUnknownShaderKind
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrTruncated:
		return "Truncated"
	case ErrUnsupportedOpcode:
		return "UnsupportedOpcode"
	case ErrMalformed:
		return "Malformed"
	case ErrUnknownShaderKind:
		return "UnknownShaderKind"
	default:
		return "Unknown"
	}
}

// Error is a fatal decoding error for one shader.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Offset is the byte offset in the blob where decoding failed.
	Offset int

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("bytecode %s at offset %d: %s", e.Kind, e.Offset, e.Message)
}

// NewError creates a decoding error.
func NewError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsTruncated reports whether err is an ErrTruncated decoding error.
func IsTruncated(err error) bool {
	return hasKind(err, ErrTruncated)
}

// IsUnsupportedOpcode reports whether err is an ErrUnsupportedOpcode
// decoding error.
func IsUnsupportedOpcode(err error) bool {
	return hasKind(err, ErrUnsupportedOpcode)
}

// IsMalformed reports whether err is an ErrMalformed decoding error.
func IsMalformed(err error) bool {
	return hasKind(err, ErrMalformed)
}

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
