// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"math"
	"testing"

	"github.com/gogpu/shaderdec/decompiler"
)

func TestFloatType(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "float"},
		{1, "float"},
		{2, "float2"},
		{3, "float3"},
		{4, "float4"},
	}
	for _, tt := range tests {
		if got := FloatType(tt.n); got != tt.want {
			t.Errorf("FloatType(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParameterDirection(t *testing.T) {
	tests := []struct {
		input, output bool
		want          string
	}{
		{true, false, "in"},
		{false, true, "out"},
		{true, true, "inout"},
		{false, false, "in"},
	}
	for _, tt := range tests {
		if got := ParameterDirection(tt.input, tt.output); got != tt.want {
			t.Errorf("ParameterDirection(%v, %v) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestUsageBaseName(t *testing.T) {
	tests := []struct {
		usage decompiler.Usage
		want  string
	}{
		{decompiler.UsagePosition, "pos"},
		{decompiler.UsageTexcoord, "uv"},
		{decompiler.UsageColor, "color"},
		{decompiler.UsageBlendIndices, "blindex"},
		{decompiler.UsagePositionT, "post"},
		{decompiler.UsageUnknown, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.usage.String(), func(t *testing.T) {
			if got := UsageBaseName(tt.usage); got != tt.want {
				t.Errorf("UsageBaseName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFloat32(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want string
	}{
		{"whole", 1, "1.0"},
		{"zero", 0, "0.0"},
		{"fraction", 0.5, "0.5"},
		{"negative", -2, "-2.0"},
		{"large", 1e6, "1e+06"},
		{"positive infinity", float32(math.Inf(1)), "1.#INF"},
		{"negative infinity", float32(math.Inf(-1)), "-1.#INF"},
		{"nan", float32(math.NaN()), "0.0/0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatFloat32(tt.in); got != tt.want {
				t.Errorf("formatFloat32(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
