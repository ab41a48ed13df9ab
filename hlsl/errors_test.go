// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrInvalidProgram, "InvalidProgram"},
		{ErrInvalidEntryPoint, "InvalidEntryPoint"},
		{ErrUnsupportedExpression, "UnsupportedExpression"},
		{ErrInternalError, "InternalError"},
		{ErrorKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err1 := NewError(ErrInvalidProgram, "program is nil")
	got1 := err1.Error()
	if got1 != "hlsl InvalidProgram: program is nil" {
		t.Errorf("Error() = %q", got1)
	}

	err2 := NewStatementError(ErrUnsupportedExpression, 3, "nil expression")
	got2 := err2.Error()
	if !strings.Contains(got2, "statement 3") {
		t.Errorf("Error() with statement should contain location, got %q", got2)
	}
}

func TestError_Is(t *testing.T) {
	var target *Error
	err := error(NewError(ErrUnsupportedExpression, "x"))
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if !target.IsUnsupportedExpression() {
		t.Error("IsUnsupportedExpression() = false")
	}
	if target.IsInvalidProgram() || target.IsInternalError() {
		t.Error("unexpected kind predicate")
	}
}

func TestStatementError(t *testing.T) {
	w := &Writer{}

	err := w.statementError(2, errors.New("unexpected state"))
	var target *Error
	if !errors.As(err, &target) || !target.IsInternalError() || target.Statement != 2 {
		t.Errorf("statementError(foreign) = %v, want internal error at statement 2", err)
	}

	err = w.statementError(4, NewError(ErrUnsupportedExpression, "nil expression"))
	if !errors.As(err, &target) || !target.IsUnsupportedExpression() || target.Statement != 4 {
		t.Errorf("statementError(generator) = %v, want statement 4", err)
	}

	located := NewStatementError(ErrUnsupportedExpression, 1, "nil expression")
	if got := w.statementError(6, located); got != error(located) {
		t.Errorf("statementError(located) = %v, want original error", got)
	}
}
