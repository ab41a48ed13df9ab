// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/ir"
)

// registerNames assigns identifiers to constant table registers and to
// entry point arguments. Other registers keep their assembly names.
func (w *Writer) registerNames() error {
	entry := w.options.EntryPoint
	if entry == "" {
		entry = "main"
	}
	if !isIdentifier(entry) || IsReserved(entry) {
		return NewError(ErrInvalidEntryPoint, fmt.Sprintf("%q is not a valid function name", entry))
	}
	w.entryPoint = entry
	w.namer.reserve(entry)

	s := w.program.Shader
	constants := make(map[string]struct{})
	nameConstant := func(c *bytecode.Constant, t bytecode.RegisterType) {
		name := Escape(c.Name)
		constants[c.Name] = struct{}{}
		w.namer.reserve(name)
		for k := range max(c.RegisterCount, 1) {
			key := ir.RegisterKey{Type: t, Index: c.RegisterIndex + k}
			if k == 0 {
				w.names[key] = name
			} else {
				w.names[key] = fmt.Sprintf("%s[%d]", name, k)
			}
		}
	}
	for _, c := range s.Constants {
		nameConstant(c, c.RegisterSet.RegisterType())
	}
	if s.Preshader != nil {
		for _, c := range s.Preshader.Constants {
			t := bytecode.RegisterPreshaderInput
			if c.RegisterSet == bytecode.RegisterSetSampler {
				t = bytecode.RegisterSampler
			}
			nameConstant(c, t)
		}
	}

	scan := w.program.Scan
	groups := make(map[[2]uint32]int)
	for _, arg := range scan.Arguments {
		group := [2]uint32{uint32(arg.Usage), arg.UsageIndex}
		if i, ok := groups[group]; ok {
			w.bindParameter(i, arg)
			continue
		}

		stem := UsageBaseName(arg.Usage)
		if sharesUsage(scan, arg) {
			stem += fmt.Sprint(arg.UsageIndex)
		}
		var name string
		if _, clash := constants[stem]; clash {
			name = w.namer.callWithPrefix("arg_", stem)
		} else {
			name = w.namer.call(stem)
		}

		groups[group] = len(w.parameters)
		w.parameters = append(w.parameters, Parameter{
			Name:     name,
			Semantic: fmt.Sprintf("%s%d", arg.Usage.Semantic(), arg.UsageIndex),
		})
		w.bindParameter(len(w.parameters)-1, arg)
	}

	for i := range w.parameters {
		w.resolveParameter(&w.parameters[i])
	}
	return nil
}

// sharesUsage reports whether another argument has the usage of a with a
// different usage index.
func sharesUsage(scan *decompiler.ScanResult, a *decompiler.Argument) bool {
	for _, b := range scan.Arguments {
		if b.Usage == a.Usage && b.UsageIndex != a.UsageIndex {
			return true
		}
	}
	return false
}

func (w *Writer) bindParameter(i int, arg *decompiler.Argument) {
	p := &w.parameters[i]
	p.Registers = append(p.Registers, arg.Register)
	w.paramOf[arg.Register] = i
	w.names[arg.Register] = p.Name
}

// resolveParameter fills the direction and width of p from its
// registers.
func (w *Writer) resolveParameter(p *Parameter) {
	scan := w.program.Scan
	input, output := false, false
	resolved, declared := 0, 0
	for _, key := range p.Registers {
		a := scan.Argument(key)
		input = input || a.Input
		output = output || a.Output
		resolved = max(resolved, scan.Size(key))
		declared = max(declared, a.Size)
	}
	p.Direction = ParameterDirection(input, output)
	p.Width = resolved
	if p.Width == 0 {
		p.Width = max(declared, 1)
	}
}

// width returns the channel count a register is declared with.
func (w *Writer) width(key ir.RegisterKey) int {
	if i, ok := w.paramOf[key]; ok {
		return w.parameters[i].Width
	}
	return w.program.Scan.Size(key)
}

func (w *Writer) registerName(key ir.RegisterKey) string {
	if name, ok := w.names[key]; ok {
		return name
	}
	return key.String()
}

// register renders a register reference with the shortest swizzle that
// keeps its meaning.
func (w *Writer) register(r *ir.ExprRegister) string {
	key := r.Key()
	if r.Type == bytecode.RegisterSampler {
		return w.registerName(key)
	}

	name := w.registerName(key)
	if r.Relative != nil {
		name = w.relative(r)
	}
	return name + w.swizzle(r)
}

// relative renders a relatively addressed register as an array access
// based at the register's constant, or at the register file.
func (w *Writer) relative(r *ir.ExprRegister) string {
	base := bytecode.RegisterPrefix(r.Type)
	offset := r.Index
	if set, ok := registerSet(r.Type); ok {
		if c, k, ok := w.program.Shader.ConstantAt(set, r.Index); ok {
			base, offset = Escape(c.Name), k
		}
	}
	addr := w.register(r.Relative)
	if offset == 0 {
		return fmt.Sprintf("%s[%s]", base, addr)
	}
	return fmt.Sprintf("%s[%s + %d]", base, addr, offset)
}

func registerSet(t bytecode.RegisterType) (bytecode.RegisterSet, bool) {
	switch t {
	case bytecode.RegisterConst:
		return bytecode.RegisterSetFloat4, true
	case bytecode.RegisterConstInt:
		return bytecode.RegisterSetInt4, true
	case bytecode.RegisterConstBool:
		return bytecode.RegisterSetBool, true
	}
	return 0, false
}

func (w *Writer) swizzle(r *ir.ExprRegister) string {
	if r.IsFull() {
		return ""
	}
	if (r.IsOrdered() || r.IsSingle()) && r.UsageMask().Count() == w.width(r.Key()) {
		return ""
	}

	sel := r.Selectors()
	if len(sel) == 4 && r.IsSingle() {
		return "." + sel[0].String()
	}
	var sb strings.Builder
	sb.WriteByte('.')
	for _, c := range sel {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
