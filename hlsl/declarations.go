// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderdec/bytecode"
)

// writeDeclarations writes one global per constant table entry.
func (w *Writer) writeDeclarations() {
	constants := w.program.Shader.Constants
	for _, c := range constants {
		w.writeLine("%s;", constantDeclaration(c))
	}
	if len(constants) > 0 {
		w.writeLine("")
	}
}

// constantDeclaration renders c as "type name : register(cN) = {...}".
func constantDeclaration(c *bytecode.Constant) string {
	var sb strings.Builder
	typeName, suffix := constantType(c)
	fmt.Fprintf(&sb, "%s %s%s : register(%s%d)", typeName, Escape(c.Name), suffix, c.RegisterSet.Prefix(), c.RegisterIndex)

	if len(c.DefaultValue) > 0 {
		values := make([]string, len(c.DefaultValue))
		for i, v := range c.DefaultValue {
			values[i] = formatFloat32(v)
		}
		fmt.Fprintf(&sb, " = { %s }", strings.Join(values, ", "))
	}
	return sb.String()
}

// constantType returns the declared type of c and its array suffix.
func constantType(c *bytecode.Constant) (typeName, arraySuffix string) {
	if c.Type != nil {
		if c.Type.Elements > 1 {
			arraySuffix = fmt.Sprintf("[%d]", c.Type.Elements)
		}
		return c.Type.BaseString(), arraySuffix
	}

	switch c.RegisterSet {
	case bytecode.RegisterSetBool:
		typeName = "bool"
	case bytecode.RegisterSetInt4:
		typeName = "int4"
	case bytecode.RegisterSetSampler:
		typeName = "sampler"
	default:
		typeName = "float4"
	}
	if c.RegisterCount > 1 {
		arraySuffix = fmt.Sprintf("[%d]", c.RegisterCount)
	}
	return typeName, arraySuffix
}
