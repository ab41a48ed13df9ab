package decompiler

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes decompilation errors.
type ErrorKind uint8

const (
	// ErrUnsupportedModifier indicates a source modifier with no
	// arithmetic equivalent (logical not).
	ErrUnsupportedModifier ErrorKind = iota

	// ErrInvalidInstruction indicates an instruction missing an operand
	// its opcode requires.
	ErrInvalidInstruction

	// ErrInternal indicates a decompiler defect.
	ErrInternal
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedModifier:
		return "UnsupportedModifier"
	case ErrInvalidInstruction:
		return "InvalidInstruction"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is a decompilation failure for one shader.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Instruction is the position of the offending instruction, counting
	// preshader instructions first, or -1.
	Instruction int

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Instruction < 0 {
		return fmt.Sprintf("decompiler %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("decompiler %s at instruction %d: %s", e.Kind, e.Instruction, e.Message)
}

// NewError creates a decompilation error.
func NewError(kind ErrorKind, instruction int, format string, args ...any) *Error {
	return &Error{
		Kind:        kind,
		Instruction: instruction,
		Message:     fmt.Sprintf(format, args...),
	}
}

// IsUnsupportedModifier reports whether err is an ErrUnsupportedModifier
// error.
func IsUnsupportedModifier(err error) bool {
	return hasKind(err, ErrUnsupportedModifier)
}

// IsInvalidInstruction reports whether err is an ErrInvalidInstruction
// error.
func IsInvalidInstruction(err error) bool {
	return hasKind(err, ErrInvalidInstruction)
}

// IsInternal reports whether err is an ErrInternal error.
func IsInternal(err error) bool {
	return hasKind(err, ErrInternal)
}

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
