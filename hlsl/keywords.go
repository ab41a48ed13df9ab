// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "strings"

// UnnamedIdentifier is the default name for empty identifiers.
const UnnamedIdentifier = "_unnamed"

// reservedKeywords contains the HLSL keywords, effect-framework state
// names and intrinsics a shader model 1 to 3 compiler rejects as
// identifiers.
var reservedKeywords = map[string]struct{}{
	// Language keywords
	"asm":              {},
	"asm_fragment":     {},
	"bool":             {},
	"break":            {},
	"case":             {},
	"cbuffer":          {},
	"centroid":         {},
	"class":            {},
	"column_major":     {},
	"compile":          {},
	"compile_fragment": {},
	"const":            {},
	"continue":         {},
	"default":          {},
	"discard":          {},
	"do":               {},
	"double":           {},
	"else":             {},
	"export":           {},
	"extern":           {},
	"false":            {},
	"float":            {},
	"for":              {},
	"half":             {},
	"if":               {},
	"in":               {},
	"inline":           {},
	"inout":            {},
	"int":              {},
	"interface":        {},
	"linear":           {},
	"matrix":           {},
	"namespace":        {},
	"nointerpolation":  {},
	"noperspective":    {},
	"out":              {},
	"packoffset":       {},
	"register":         {},
	"return":           {},
	"row_major":        {},
	"sample":           {},
	"sampler":          {},
	"sampler1D":        {},
	"sampler2D":        {},
	"sampler3D":        {},
	"samplerCUBE":      {},
	"sampler_state":    {},
	"shared":           {},
	"snorm":            {},
	"static":           {},
	"string":           {},
	"struct":           {},
	"switch":           {},
	"tbuffer":          {},
	"texture":          {},
	"true":             {},
	"typedef":          {},
	"uint":             {},
	"uniform":          {},
	"unorm":            {},
	"unsigned":         {},
	"vector":           {},
	"void":             {},
	"volatile":         {},
	"while":            {},

	// Effect framework
	"BlendState":        {},
	"DepthStencilState": {},
	"PixelShader":       {},
	"RasterizerState":   {},
	"SamplerState":      {},
	"VertexShader":      {},
	"pass":              {},
	"technique":         {},

	// Intrinsics emitted by the decompiler or common in SM3 code
	"abs":         {},
	"acos":        {},
	"all":         {},
	"any":         {},
	"asin":        {},
	"atan":        {},
	"atan2":       {},
	"ceil":        {},
	"clamp":       {},
	"clip":        {},
	"cos":         {},
	"cosh":        {},
	"cross":       {},
	"ddx":         {},
	"ddy":         {},
	"degrees":     {},
	"determinant": {},
	"distance":    {},
	"dot":         {},
	"exp":         {},
	"exp2":        {},
	"faceforward": {},
	"floor":       {},
	"fmod":        {},
	"frac":        {},
	"frexp":       {},
	"fwidth":      {},
	"isfinite":    {},
	"isinf":       {},
	"isnan":       {},
	"ldexp":       {},
	"length":      {},
	"lerp":        {},
	"lit":         {},
	"log":         {},
	"log10":       {},
	"log2":        {},
	"max":         {},
	"min":         {},
	"modf":        {},
	"mul":         {},
	"noise":       {},
	"normalize":   {},
	"pow":         {},
	"radians":     {},
	"reflect":     {},
	"refract":     {},
	"round":       {},
	"rsqrt":       {},
	"saturate":    {},
	"sign":        {},
	"sin":         {},
	"sincos":      {},
	"sinh":        {},
	"smoothstep":  {},
	"sqrt":        {},
	"step":        {},
	"tan":         {},
	"tanh":        {},
	"tex1D":       {},
	"tex2D":       {},
	"tex2Dbias":   {},
	"tex2Dgrad":   {},
	"tex2Dlod":    {},
	"tex2Dproj":   {},
	"tex3D":       {},
	"texCUBE":     {},
	"transpose":   {},
	"trunc":       {},
}

// caseInsensitiveKeywords contains keywords that are case-insensitive in HLSL.
var caseInsensitiveKeywords = map[string]struct{}{
	"asm":         {},
	"decl":        {},
	"pass":        {},
	"technique":   {},
	"texture1d":   {},
	"texture2d":   {},
	"texture3d":   {},
	"texturecube": {},
}

// typeShorthands contains the scalar, vector and matrix type names.
var typeShorthands = func() map[string]struct{} {
	result := make(map[string]struct{})
	bases := []string{"bool", "int", "uint", "dword", "half", "float", "double"}

	for _, base := range bases {
		result[base] = struct{}{}
		for r := 1; r <= 4; r++ {
			result[base+string(rune('0'+r))] = struct{}{}
			for c := 1; c <= 4; c++ {
				result[base+string(rune('0'+r))+"x"+string(rune('0'+c))] = struct{}{}
			}
		}
	}
	return result
}()

// IsReserved checks if a name is an HLSL reserved keyword.
func IsReserved(name string) bool {
	if _, ok := reservedKeywords[name]; ok {
		return true
	}
	if _, ok := typeShorthands[name]; ok {
		return true
	}
	return false
}

// IsCaseInsensitiveReserved checks if a name conflicts with case-insensitive keywords.
func IsCaseInsensitiveReserved(name string) bool {
	_, ok := caseInsensitiveKeywords[strings.ToLower(name)]
	return ok
}

// Escape returns a safe identifier name.
// If the name is reserved or empty, it's prefixed with underscore.
func Escape(name string) string {
	if name == "" {
		return UnnamedIdentifier
	}
	if IsReserved(name) || IsCaseInsensitiveReserved(name) {
		return "_" + name
	}
	return name
}
