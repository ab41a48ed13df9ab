// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl renders a decompiled shader program as HLSL source.
//
// The output is a single entry point function. Shader inputs and outputs
// become parameters grouped by usage semantic, temporaries become locals
// declared on their first write, and every other register keeps its
// assembly name unless the constant table names it.
//
// # Usage
//
//	prog, err := decompiler.Decompile(shader, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	source, info, err := hlsl.Compile(prog, hlsl.DefaultOptions())
//
// # Register Naming
//
// Arguments are named after their usage (color, uv, normal, ...) with the
// usage index appended when the usage occurs with several indices:
//
//	void main(in float2 uv0 : TEXCOORD0, in float2 uv1 : TEXCOORD1, inout float4 color : COLOR0)
//
// Constant table entries name their registers; the k-th register of a
// multi-register constant renders as name[k].
package hlsl
