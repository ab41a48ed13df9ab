// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"strings"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

// writeEntryPoint writes the entry point signature and body.
func (w *Writer) writeEntryPoint() error {
	params := make([]string, len(w.parameters))
	for i, p := range w.parameters {
		params[i] = p.Direction + " " + FloatType(p.Width) + " " + p.Name + " : " + p.Semantic
	}
	w.writeLine("void %s(%s) {", w.entryPoint, strings.Join(params, ", "))
	w.pushIndent()

	for i, e := range w.program.Statements {
		if err := w.writeStatement(i, e); err != nil {
			return err
		}
	}

	w.popIndent()
	w.writeLine("}")
	return nil
}

func (w *Writer) writeStatement(i int, e ir.Expression) error {
	a, ok := e.(*ir.ExprAssign)
	if !ok {
		s, err := w.expression(e)
		if err != nil {
			return w.statementError(i, err)
		}
		w.writeLine("%s;", s)
		return nil
	}

	src, err := w.expression(a.Source)
	if err != nil {
		return w.statementError(i, err)
	}
	w.writeLine("%s%s = %s;", w.localPrefix(a.Dest), w.register(a.Dest), src)
	return nil
}

// localPrefix declares the register written by dest on its first write.
// It returns the type to prefix the assignment with, or "" when the
// register needs no declaration or was declared on a line of its own.
func (w *Writer) localPrefix(dest *ir.ExprRegister) string {
	key := dest.Key()
	if _, ok := w.paramOf[key]; ok {
		return ""
	}
	if _, ok := w.declared[key]; ok {
		return ""
	}
	if w.program.Scan.IsDeclaredConstant(key) || key.Type == bytecode.RegisterSampler {
		return ""
	}
	w.declared[key] = struct{}{}
	w.locals = append(w.locals, key)

	width := max(w.program.Scan.Size(key), dest.Slots.Width())
	if dest.Slots == bytecode.PrefixMask(width) {
		return FloatType(width) + " "
	}
	w.writeLine("%s %s;", FloatType(width), w.registerName(key))
	return ""
}

// statementError attaches statement index i to err. Errors that did not
// come from the generator are reported as internal errors.
func (w *Writer) statementError(i int, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return NewStatementError(ErrInternalError, i, err.Error())
	}
	if e.Statement >= 0 {
		return e
	}
	return NewStatementError(e.Kind, i, e.Message)
}
