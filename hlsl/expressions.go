// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdec/ir"
)

// expression renders e as an HLSL expression.
func (w *Writer) expression(e ir.Expression) (string, error) {
	switch e := e.(type) {
	case *ir.ExprConstant:
		return formatFloat32(e.Value), nil

	case *ir.ExprRegister:
		return w.register(e), nil

	case *ir.ExprBinary:
		left, err := w.operand(e.Left, e.Op, false)
		if err != nil {
			return "", err
		}
		right, err := w.operand(e.Right, e.Op, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, e.Op, right), nil

	case *ir.ExprNegate:
		inner, err := w.expression(e.Inner)
		if err != nil {
			return "", err
		}
		if isPrimary(e.Inner) {
			return "-" + inner, nil
		}
		return "-(" + inner + ")", nil

	case *ir.ExprCall:
		args, err := w.expressionList(e.Args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", e.Name, args), nil

	case *ir.ExprCompose:
		args, err := w.expressionList(e.Components)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", FloatType(len(e.Components)), args), nil

	case nil:
		return "", NewError(ErrUnsupportedExpression, "nil expression")

	default:
		return "", NewError(ErrUnsupportedExpression, fmt.Sprintf("%T cannot appear inside an expression", e))
	}
}

// operand renders a binary operand, parenthesized when it binds looser
// than op, or equally loose on the right of a non-commutative op.
func (w *Writer) operand(e ir.Expression, op ir.BinaryOperator, right bool) (string, error) {
	s, err := w.expression(e)
	if err != nil {
		return "", err
	}
	b, ok := e.(*ir.ExprBinary)
	if !ok {
		return s, nil
	}
	inner, outer := b.Op.Precedence(), op.Precedence()
	if inner < outer || right && inner == outer && !op.Commutative() {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (w *Writer) expressionList(list []ir.Expression) (string, error) {
	parts := make([]string, len(list))
	for i, e := range list {
		s, err := w.expression(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// isPrimary reports whether e renders as a single token or call that a
// leading minus can prefix without parentheses.
func isPrimary(e ir.Expression) bool {
	switch e := e.(type) {
	case *ir.ExprRegister, *ir.ExprCall, *ir.ExprCompose:
		return true
	case *ir.ExprConstant:
		return e.Value >= 0
	}
	return false
}
