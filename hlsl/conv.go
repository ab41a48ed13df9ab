// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/shaderdec/decompiler"
)

// FloatType returns the HLSL float type holding n channels: "float" for
// one channel, "floatN" otherwise.
func FloatType(n int) string {
	if n <= 1 {
		return "float"
	}
	return fmt.Sprintf("float%d", min(n, 4))
}

// ParameterDirection returns the HLSL parameter qualifier for an
// argument that is read, written or both.
func ParameterDirection(input, output bool) string {
	switch {
	case input && output:
		return "inout"
	case output:
		return "out"
	default:
		return "in"
	}
}

// UsageBaseName returns the identifier stem of an argument with usage u.
func UsageBaseName(u decompiler.Usage) string {
	switch u {
	case decompiler.UsagePosition:
		return "pos"
	case decompiler.UsageBlendWeight:
		return "blweight"
	case decompiler.UsageBlendIndices:
		return "blindex"
	case decompiler.UsageNormal:
		return "normal"
	case decompiler.UsagePointSize:
		return "psize"
	case decompiler.UsageTexcoord:
		return "uv"
	case decompiler.UsageTangent:
		return "tg"
	case decompiler.UsageBinormal:
		return "binorm"
	case decompiler.UsageTessFactor:
		return "tess"
	case decompiler.UsagePositionT:
		return "post"
	case decompiler.UsageColor:
		return "color"
	case decompiler.UsageFog:
		return "fog"
	case decompiler.UsageDepth:
		return "depth"
	case decompiler.UsageSample:
		return "sample"
	default:
		return "x"
	}
}

// formatFloat32 formats a float32 for HLSL output.
func formatFloat32(f float32) string {
	if math.IsInf(float64(f), 1) {
		return "1.#INF"
	}
	if math.IsInf(float64(f), -1) {
		return "-1.#INF"
	}
	if math.IsNaN(float64(f)) {
		return "0.0/0.0"
	}
	// Use %g for compact representation, ensure decimal point for floats
	s := fmt.Sprintf("%g", f)
	if !strings.Contains(s, ".") && !strings.Contains(s, "e") && !strings.Contains(s, "E") {
		s += ".0"
	}
	return s
}
