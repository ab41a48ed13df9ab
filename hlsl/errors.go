// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "fmt"

// ErrorKind categorizes HLSL generation errors.
type ErrorKind uint8

const (
	// ErrInvalidProgram indicates the program is nil or malformed.
	ErrInvalidProgram ErrorKind = iota

	// ErrInvalidEntryPoint indicates the entry point name is not a usable
	// identifier.
	ErrInvalidEntryPoint

	// ErrUnsupportedExpression indicates an expression that has no HLSL
	// rendering.
	ErrUnsupportedExpression

	// ErrInternalError indicates an internal generator error.
	ErrInternalError
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidProgram:
		return "InvalidProgram"
	case ErrInvalidEntryPoint:
		return "InvalidEntryPoint"
	case ErrUnsupportedExpression:
		return "UnsupportedExpression"
	case ErrInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error represents an HLSL generation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Statement is the index of the offending statement, or -1.
	Statement int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Statement >= 0 {
		return fmt.Sprintf("hlsl %s at statement %d: %s", e.Kind, e.Statement, e.Message)
	}
	return fmt.Sprintf("hlsl %s: %s", e.Kind, e.Message)
}

// NewError creates a new HLSL error not tied to a statement.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Statement: -1,
	}
}

// NewStatementError creates a new HLSL error for statement index i.
func NewStatementError(kind ErrorKind, i int, message string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Statement: i,
	}
}

// IsInvalidProgram returns true if the error is ErrInvalidProgram.
func (e *Error) IsInvalidProgram() bool {
	return e.Kind == ErrInvalidProgram
}

// IsUnsupportedExpression returns true if the error is ErrUnsupportedExpression.
func (e *Error) IsUnsupportedExpression() bool {
	return e.Kind == ErrUnsupportedExpression
}

// IsInternalError returns true if the error is ErrInternalError.
func (e *Error) IsInternalError() bool {
	return e.Kind == ErrInternalError
}
