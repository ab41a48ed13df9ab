// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/ir"
)

// Options configures HLSL code generation.
type Options struct {
	// EntryPoint is the name of the generated function.
	// Defaults to "main".
	EntryPoint string

	// Declarations emits a global declaration, with register binding and
	// default value, for every constant table entry.
	Declarations bool

	// Indent is the string used for one level of indentation.
	// Defaults to four spaces.
	Indent string
}

// DefaultOptions returns the default generator options.
func DefaultOptions() *Options {
	return &Options{
		EntryPoint: "main",
		Indent:     "    ",
	}
}

// Parameter describes one entry point parameter.
type Parameter struct {
	// Name is the HLSL identifier.
	Name string

	// Direction is "in", "out" or "inout".
	Direction string

	// Width is the channel count of the parameter type.
	Width int

	// Semantic is the binding, e.g. "TEXCOORD1".
	Semantic string

	// Registers lists the shader registers bound to the parameter.
	Registers []ir.RegisterKey
}

// TranslationInfo contains metadata about the HLSL translation.
type TranslationInfo struct {
	// EntryPoint is the generated function name.
	EntryPoint string

	// Parameters lists the entry point parameters in declaration order.
	Parameters []Parameter

	// RegisterNames maps every named register to its HLSL identifier.
	RegisterNames map[ir.RegisterKey]string

	// Locals lists the registers given a local declaration.
	Locals []ir.RegisterKey
}

// Compile generates HLSL source code for a decompiled program.
// Returns the HLSL source, translation info, or an error.
func Compile(p *decompiler.Program, options *Options) (string, *TranslationInfo, error) {
	if p == nil || p.Scan == nil || p.Shader == nil {
		return "", nil, NewError(ErrInvalidProgram, "program is nil")
	}

	if options == nil {
		options = DefaultOptions()
	}

	w := newWriter(p, options)
	if err := w.writeProgram(); err != nil {
		return "", nil, fmt.Errorf("hlsl: %w", err)
	}

	info := &TranslationInfo{
		EntryPoint:    w.entryPoint,
		Parameters:    w.parameters,
		RegisterNames: w.names,
		Locals:        w.locals,
	}
	return w.String(), info, nil
}
