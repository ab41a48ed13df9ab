// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/ir"
)

// Writer generates HLSL source code from a decompiled program.
type Writer struct {
	program *decompiler.Program
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Name management
	namer      *namer
	entryPoint string
	names      map[ir.RegisterKey]string
	parameters []Parameter

	// paramOf maps an argument register to its index in parameters.
	paramOf map[ir.RegisterKey]int

	// Local declarations emitted so far
	declared map[ir.RegisterKey]struct{}
	locals   []ir.RegisterKey
}

func newWriter(p *decompiler.Program, options *Options) *Writer {
	return &Writer{
		program:  p,
		options:  options,
		namer:    newNamer(),
		names:    make(map[ir.RegisterKey]string),
		paramOf:  make(map[ir.RegisterKey]int),
		declared: make(map[ir.RegisterKey]struct{}),
	}
}

// String returns the generated HLSL source code.
func (w *Writer) String() string {
	return w.out.String()
}

func (w *Writer) writeProgram() error {
	if err := w.registerNames(); err != nil {
		return err
	}
	if w.options.Declarations {
		w.writeDeclarations()
	}
	return w.writeEntryPoint()
}

// write writes text to the output. If args are provided, uses fmt.Fprintf.
//
//nolint:goprintffuncname
func (w *Writer) write(format string, args ...any) {
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
}

// writeLine writes a line with optional format args and a newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	w.write(format, args...)
	w.out.WriteByte('\n')
}

func (w *Writer) writeIndent() {
	unit := w.options.Indent
	if unit == "" {
		unit = "    "
	}
	for i := 0; i < w.indent; i++ {
		w.out.WriteString(unit)
	}
}

func (w *Writer) pushIndent() {
	w.indent++
}

func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
