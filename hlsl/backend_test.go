// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/bytecode/bctest"
	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/ir"
)

const (
	temp     = bytecode.RegisterTemp
	input    = bytecode.RegisterInput
	constant = bytecode.RegisterConst
	colorout = bytecode.RegisterColorout
	sampler  = bytecode.RegisterSampler
	texture  = bytecode.RegisterTexture
)

func decompile(t *testing.T, data []byte) *decompiler.Program {
	t.Helper()
	s, err := bytecode.Read(data, nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	p, err := decompiler.Decompile(s, nil)
	if err != nil {
		t.Fatalf("Decompile() error = %v", err)
	}
	return p
}

func compileString(t *testing.T, p *decompiler.Program, opts *Options) (string, *TranslationInfo) {
	t.Helper()
	src, info, err := Compile(p, opts)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return src, info
}

func lines(src string) []string {
	return strings.Split(strings.TrimRight(src, "\n"), "\n")
}

func expectSource(t *testing.T, got string, want ...string) {
	t.Helper()
	gl := lines(got)
	if len(gl) != len(want) {
		t.Fatalf("got %d lines:\n%s\nwant %d:\n%s", len(gl), got, len(want), strings.Join(want, "\n"))
	}
	for i := range want {
		if gl[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, gl[i], want[i])
		}
	}
}

func TestCompileScenarios(t *testing.T) {
	all := bytecode.MaskAll
	xy := bytecode.MaskXY
	zw := bytecode.MaskZ | bytecode.MaskW

	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{
			name: "partial color writes",
			data: bctest.Pixel(3, 0).
				Dcl(uint32(decompiler.UsagePosition), 0, bctest.Dst(input, 0, all)).
				Dcl(uint32(decompiler.UsagePosition), 0, bctest.Dst(texture, 0, xy)).
				Op(bytecode.OpMul, bctest.Dst(temp, 0, xy), bctest.Src(texture, 0), bctest.Src(constant, 0)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, xy), bctest.Src(temp, 0)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, zw), bctest.Src(constant, 1)).
				End().Bytes(),
			want: []string{
				"void main(inout float4 color : COLOR0) {",
				"    color.xy = color.xy * c0;",
				"    color.zw = c1.zw;",
				"}",
			},
		},
		{
			name: "multiply add",
			data: bctest.Pixel(2, 0).
				Op(bytecode.OpMul, bctest.Dst(temp, 0, all), bctest.Src(constant, 0), bctest.Src(temp, 1)).
				Op(bytecode.OpAdd, bctest.Dst(temp, 0, all), bctest.Src(temp, 0), bctest.Src(temp, 2)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, all), bctest.Src(temp, 0)).
				End().Bytes(),
			want: []string{
				"void main(out float4 color : COLOR0) {",
				"    color = c0 * r1 + r2;",
				"}",
			},
		},
		{
			name: "lerp",
			data: bctest.Pixel(2, 0).
				Op(bytecode.OpAdd, bctest.Dst(temp, 1, all), bctest.Src(constant, 1), bctest.Neg(constant, 0)).
				Op(bytecode.OpMul, bctest.Dst(temp, 0, all), bctest.Src(constant, 2), bctest.Src(temp, 1)).
				Op(bytecode.OpAdd, bctest.Dst(temp, 0, all), bctest.Src(temp, 0), bctest.Src(constant, 0)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, all), bctest.Src(temp, 0)).
				End().Bytes(),
			want: []string{
				"void main(out float4 color : COLOR0) {",
				"    color = lerp(c0, c1, c2);",
				"}",
			},
		},
		{
			name: "inline local",
			data: bctest.Pixel(2, 0).
				Op(bytecode.OpMul, bctest.Dst(temp, 0, xy), bctest.Src(constant, 0), bctest.Src(constant, 1)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, all),
					bctest.SrcSwizzle(temp, 0, bytecode.Swizzle{bytecode.X, bytecode.Y, bytecode.X, bytecode.Y}, bytecode.ModNone)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 1, all),
					bctest.SrcSwizzle(temp, 0, bytecode.Swizzle{bytecode.Y, bytecode.X, bytecode.Y, bytecode.X}, bytecode.ModNone)).
				End().Bytes(),
			want: []string{
				"void main(out float4 color0 : COLOR0, out float4 color1 : COLOR1) {",
				"    float2 r0 = c0 * c1;",
				"    color0 = r0.xyxy;",
				"    color1 = r0.yxyx;",
				"}",
			},
		},
		{
			name: "separate local",
			data: bctest.Pixel(2, 0).
				Op(bytecode.OpMov, bctest.Dst(temp, 0, bytecode.MaskY), bctest.Src(constant, 0)).
				Op(bytecode.OpAdd, bctest.Dst(colorout, 0, all),
					bctest.SrcSwizzle(temp, 0, bytecode.Replicate(bytecode.Y), bytecode.ModNone),
					bctest.SrcSwizzle(temp, 0, bytecode.Replicate(bytecode.Y), bytecode.ModNone)).
				End().Bytes(),
			want: []string{
				"void main(out float4 color : COLOR0) {",
				"    float2 r0;",
				"    r0.y = c0.y;",
				"    color = r0.y + r0.y;",
				"}",
			},
		},
		{
			name: "clip statement",
			data: bctest.Pixel(2, 0).
				Op(bytecode.OpTexKill, bctest.Dst(texture, 0, bytecode.MaskXYZ)).
				Op(bytecode.OpMov, bctest.Dst(colorout, 0, all), bctest.Src(constant, 0)).
				End().Bytes(),
			want: []string{
				"void main(in float3 uv : TEXCOORD0, out float4 color : COLOR0) {",
				"    clip(uv);",
				"    color = c0;",
				"}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := compileString(t, decompile(t, tt.data), nil)
			expectSource(t, src, tt.want...)
		})
	}
}

func constantTableShader() []byte {
	all := bytecode.MaskAll
	table := &bctest.ConstantTable{
		Version: bytecode.Version{Kind: bytecode.KindPixel, Major: 2, Minor: 0},
		Constants: []bctest.Constant{
			{Name: "color", Set: bytecode.RegisterSetFloat4, Index: 0, Count: 1, Type: bctest.Float4(4), Default: []float32{1, 0, 0, 1}},
			{Name: "World", Set: bytecode.RegisterSetFloat4, Index: 1, Count: 4, Type: bctest.Type{
				Class: bytecode.ClassMatrixColumns, Type: bytecode.TypeFloat, Rows: 4, Columns: 4, Elements: 1,
			}},
			{Name: "Tex", Set: bytecode.RegisterSetSampler, Index: 0, Count: 1, Type: bctest.Sampler2D()},
		},
	}
	return bctest.Pixel(2, 0).
		Comment(table.Bytes()).
		Op(bytecode.OpTex, bctest.Dst(temp, 0, all), bctest.Src(texture, 0), bctest.Src(sampler, 0)).
		Op(bytecode.OpMul, bctest.Dst(temp, 0, all), bctest.Src(temp, 0), bctest.Src(constant, 0)).
		Op(bytecode.OpAdd, bctest.Dst(colorout, 0, all), bctest.Src(temp, 0), bctest.Src(constant, 2)).
		End().
		Bytes()
}

func TestCompileConstantNames(t *testing.T) {
	src, info := compileString(t, decompile(t, constantTableShader()), nil)
	expectSource(t, src,
		"void main(in float2 uv : TEXCOORD0, out float4 arg_color : COLOR0) {",
		"    arg_color = tex2D(Tex, uv) * color + World[1];",
		"}",
	)

	if len(info.Parameters) != 2 {
		t.Fatalf("len(Parameters) = %d, want 2", len(info.Parameters))
	}
	uv := info.Parameters[0]
	if uv.Direction != "in" || uv.Width != 2 || uv.Semantic != "TEXCOORD0" {
		t.Errorf("Parameters[0] = %+v", uv)
	}
	if got := info.RegisterNames[ir.RegisterKey{Type: constant, Index: 4}]; got != "World[3]" {
		t.Errorf("RegisterNames[c4] = %q, want \"World[3]\"", got)
	}
	if len(info.Locals) != 0 {
		t.Errorf("Locals = %v, want none", info.Locals)
	}
}

func TestCompileDeclarations(t *testing.T) {
	opts := DefaultOptions()
	opts.Declarations = true
	opts.EntryPoint = "ps_main"
	opts.Indent = "\t"

	src, info := compileString(t, decompile(t, constantTableShader()), opts)
	expectSource(t, src,
		"float4 color : register(c0) = { 1.0, 0.0, 0.0, 1.0 };",
		"sampler2D Tex : register(s0);",
		"float4x4 World : register(c1);",
		"",
		"void ps_main(in float2 uv : TEXCOORD0, out float4 arg_color : COLOR0) {",
		"\targ_color = tex2D(Tex, uv) * color + World[1];",
		"}",
	)
	if info.EntryPoint != "ps_main" {
		t.Errorf("EntryPoint = %q, want \"ps_main\"", info.EntryPoint)
	}
}

func TestCompileRelativeAddressing(t *testing.T) {
	table := &bctest.ConstantTable{
		Version: bytecode.Version{Kind: bytecode.KindVertex, Major: 2, Minor: 0},
		Constants: []bctest.Constant{
			{Name: "Bones", Set: bytecode.RegisterSetFloat4, Index: 10, Count: 8, Type: bctest.Type{
				Class: bytecode.ClassVector, Type: bytecode.TypeFloat, Rows: 1, Columns: 4, Elements: 8,
			}},
		},
	}
	addr := bctest.SrcSwizzle(bytecode.RegisterAddress, 0, bytecode.Replicate(bytecode.X), bytecode.ModNone)
	data := bctest.Vertex(2, 0).
		Comment(table.Bytes()).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterRastout, 0, bytecode.MaskAll),
			bctest.Relative(bctest.Src(constant, 12)), addr).
		End().
		Bytes()

	src, _ := compileString(t, decompile(t, data), nil)
	expectSource(t, src,
		"void main(out float4 pos : POSITION0) {",
		"    pos = Bones[a0 + 2];",
		"}",
	)
}

func TestExpressionRendering(t *testing.T) {
	p := &decompiler.Program{
		Shader: &bytecode.Shader{Version: bytecode.Version{Kind: bytecode.KindPixel, Major: 2}},
		Scan:   decompiler.Scan(&bytecode.Shader{}),
	}
	w := newWriter(p, DefaultOptions())

	c0 := &ir.ExprRegister{Type: constant, Index: 0, Slots: bytecode.MaskAll, Swizzle: bytecode.IdentitySwizzle}
	c1 := &ir.ExprRegister{Type: constant, Index: 1, Slots: bytecode.MaskAll, Swizzle: bytecode.IdentitySwizzle}
	tests := []struct {
		expr ir.Expression
		want string
	}{
		{ir.NewNegate(c0), "-c0"},
		{ir.NewNegate(ir.NewBinary(ir.BinaryAdd, c0, c1)), "-(c0 + c1)"},
		{ir.NewNegate(&ir.ExprConstant{Value: -2}), "-(-2.0)"},
		{ir.NewNegate(ir.NewCall("abs", c0)), "-abs(c0)"},
		{ir.NewBinary(ir.BinarySubtract, c0, ir.NewBinary(ir.BinarySubtract, c1, c0)), "c0 - (c1 - c0)"},
		{ir.NewBinary(ir.BinaryMultiply, ir.NewBinary(ir.BinaryAdd, c0, c1), c1), "(c0 + c1) * c1"},
		{ir.NewBinary(ir.BinaryDivide, c0, ir.NewBinary(ir.BinaryMultiply, c1, c1)), "c0 / (c1 * c1)"},
		{ir.NewBinary(ir.BinaryAdd, c0, ir.NewBinary(ir.BinaryAdd, c1, c0)), "c0 + c1 + c0"},
		{ir.NewCompose(&ir.ExprConstant{Value: 0.5}, &ir.ExprConstant{Value: 1}), "float2(0.5, 1.0)"},
	}
	for _, tt := range tests {
		got, err := w.expression(tt.expr)
		if err != nil {
			t.Fatalf("expression(%s) error = %v", ir.Format(tt.expr), err)
		}
		if got != tt.want {
			t.Errorf("expression(%s) = %q, want %q", ir.Format(tt.expr), got, tt.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	if _, _, err := Compile(nil, nil); err == nil {
		t.Error("Compile(nil) succeeded")
	}

	p := decompile(t, bctest.Pixel(2, 0).
		Op(bytecode.OpMov, bctest.Dst(colorout, 0, bytecode.MaskAll), bctest.Src(constant, 0)).
		End().Bytes())
	for _, name := range []string{"float4", "1main", "main()"} {
		_, _, err := Compile(p, &Options{EntryPoint: name})
		var herr *Error
		if err == nil || !errors.As(err, &herr) || herr.Kind != ErrInvalidEntryPoint {
			t.Errorf("Compile(EntryPoint=%q) error = %v, want InvalidEntryPoint", name, err)
		}
	}

	p.Statements = append(p.Statements, nil)
	_, _, err := Compile(p, nil)
	var herr *Error
	if !errors.As(err, &herr) || !herr.IsUnsupportedExpression() || herr.Statement != 1 {
		t.Errorf("Compile(nil statement) error = %v, want UnsupportedExpression at statement 1", err)
	}
}
