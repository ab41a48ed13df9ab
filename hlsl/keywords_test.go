// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "testing"

func TestIsReserved(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		// Keywords
		{"keyword_bool", "bool", true},
		{"keyword_struct", "struct", true},
		{"keyword_sampler2D", "sampler2D", true},
		{"keyword_inout", "inout", true},
		{"keyword_register", "register", true},

		// Intrinsics
		{"intrinsic_lerp", "lerp", true},
		{"intrinsic_tex2D", "tex2D", true},
		{"intrinsic_rsqrt", "rsqrt", true},
		{"intrinsic_clip", "clip", true},
		{"intrinsic_saturate", "saturate", true},

		// Effect framework
		{"effect_PixelShader", "PixelShader", true},

		// Type shorthands
		{"type_float", "float", true},
		{"type_float3", "float3", true},
		{"type_float4x4", "float4x4", true},
		{"type_half2x3", "half2x3", true},
		{"type_dword", "dword", true},

		// Not reserved
		{"argument_color", "color", false},
		{"argument_uv", "uv", false},
		{"register_r0", "r0", false},
		{"constant_World", "World", false},
		{"type_float5", "float5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReserved(tt.input); got != tt.expected {
				t.Errorf("IsReserved(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsCaseInsensitiveReserved(t *testing.T) {
	for _, name := range []string{"PASS", "Technique", "texture2D", "DECL"} {
		if !IsCaseInsensitiveReserved(name) {
			t.Errorf("IsCaseInsensitiveReserved(%q) = false, want true", name)
		}
	}
	if IsCaseInsensitiveReserved("position") {
		t.Error("IsCaseInsensitiveReserved(\"position\") = true, want false")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", UnnamedIdentifier},
		{"color", "color"},
		{"float4", "_float4"},
		{"Pass", "_Pass"},
		{"dot", "_dot"},
	}
	for _, tt := range tests {
		if got := Escape(tt.input); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
