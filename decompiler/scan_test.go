package decompiler

import (
	"testing"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/bytecode/bctest"
	"github.com/gogpu/shaderdec/ir"
)

// colorScenario declares a position and a texture input, scales the
// texture input into r0 and writes two halves of oC0.
func colorScenario() []byte {
	xy := bytecode.MaskXY
	zw := bytecode.MaskZ | bytecode.MaskW
	return bctest.Pixel(3, 0).
		Dcl(uint32(UsagePosition), 0, bctest.Dst(input, 0, bytecode.MaskAll)).
		Dcl(uint32(UsagePosition), 0, bctest.Dst(texture, 0, xy)).
		Op(bytecode.OpMul, bctest.Dst(temp, 0, xy), bctest.Src(texture, 0), bctest.Src(constReg, 0)).
		Op(bytecode.OpMov, bctest.Dst(colorout, 0, xy), bctest.Src(temp, 0)).
		Op(bytecode.OpMov, bctest.Dst(colorout, 0, zw), bctest.Src(constReg, 1)).
		End().
		Bytes()
}

func TestScanDeclarations(t *testing.T) {
	scan := Scan(mustRead(t, colorScenario()))

	if len(scan.Arguments) != 3 {
		t.Fatalf("len(Arguments) = %d, want 3", len(scan.Arguments))
	}
	v0 := scan.Argument(ir.RegisterKey{Type: input, Index: 0})
	if v0 == nil || v0.Usage != UsageColor || !v0.Input || v0.Size != 4 {
		t.Errorf("v0 = %+v, want color input of size 4", v0)
	}
	t0 := scan.Argument(ir.RegisterKey{Type: texture, Index: 0})
	if t0 == nil || t0.Usage != UsageColor || t0.Size != 2 {
		t.Errorf("t0 = %+v, want color input of size 2", t0)
	}
	oc := scan.Argument(ir.RegisterKey{Type: colorout, Index: 0})
	if oc == nil || oc.Usage != UsageColor || oc.UsageIndex != 0 || !oc.Output {
		t.Errorf("oC0 = %+v, want color output 0", oc)
	}

	if got := len(scan.Group(oc)); got != 3 {
		t.Errorf("len(Group(oC0)) = %d, want 3", got)
	}
	if got := scan.Size(ir.RegisterKey{Type: colorout, Index: 0}); got != 4 {
		t.Errorf("Size(oC0) = %d, want 4", got)
	}
	if !scan.Accessed(ir.RegisterKey{Type: temp, Index: 0}, true) {
		t.Error("r0 write not recorded")
	}
	if scan.Accessed(ir.RegisterKey{Type: temp, Index: 0}, false) == false {
		t.Error("r0 read not recorded")
	}
}

func TestScanUsageIndexIgnoresBit19(t *testing.T) {
	data := bctest.Pixel(3, 0).
		Dcl(uint32(UsageTexcoord), 9, bctest.Dst(input, 2, bytecode.MaskXY)).
		Op(bytecode.OpMov, bctest.Dst(colorout, 0, bytecode.MaskAll), bctest.Src(input, 2)).
		End().
		Bytes()
	scan := Scan(mustRead(t, data))

	v2 := scan.Argument(ir.RegisterKey{Type: input, Index: 2})
	if v2 == nil || v2.Usage != UsageTexcoord || v2.UsageIndex != 1 {
		t.Errorf("v2 = %+v, want texcoord1", v2)
	}
}

func TestScanImplicitOutputs(t *testing.T) {
	data := bctest.Vertex(2, 0).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterRastout, 0, bytecode.MaskAll), bctest.Src(input, 0)).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterRastout, 1, bytecode.MaskX), bctest.Src(input, 1)).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterAttrout, 1, bytecode.MaskAll), bctest.Src(input, 2)).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterTexcrdout, 2, bytecode.MaskXY), bctest.Src(input, 3)).
		End().
		Bytes()
	scan := Scan(mustRead(t, data))

	tests := []struct {
		reg   ir.RegisterKey
		usage Usage
		index uint32
	}{
		{ir.RegisterKey{Type: bytecode.RegisterRastout, Index: 0}, UsagePosition, 0},
		{ir.RegisterKey{Type: bytecode.RegisterRastout, Index: 1}, UsageFog, 0},
		{ir.RegisterKey{Type: bytecode.RegisterAttrout, Index: 1}, UsageColor, 1},
		{ir.RegisterKey{Type: bytecode.RegisterTexcrdout, Index: 2}, UsageTexcoord, 2},
	}
	for _, tt := range tests {
		a := scan.Argument(tt.reg)
		if a == nil {
			t.Errorf("%s: no argument", tt.reg)
			continue
		}
		if a.Usage != tt.usage || a.UsageIndex != tt.index || !a.Output {
			t.Errorf("%s = %+v, want %s%d output", tt.reg, a, tt.usage, tt.index)
		}
	}

	// Undeclared inputs become Unknown arguments numbered in order.
	v2 := scan.Argument(ir.RegisterKey{Type: input, Index: 2})
	if v2 == nil || v2.Usage != UsageUnknown || !v2.Input {
		t.Fatalf("v2 = %+v, want unknown input", v2)
	}
	if v2.UsageIndex != 2 {
		t.Errorf("v2 usage index = %d, want 2", v2.UsageIndex)
	}
}

func TestScanShaderModel2Texture(t *testing.T) {
	data := bctest.Pixel(2, 0).
		Dcl(0, 0, bctest.Dst(texture, 1, bytecode.MaskXY)).
		Op(bytecode.OpTex, bctest.Dst(temp, 0, bytecode.MaskAll), bctest.Src(texture, 1), bctest.Src(sampler, 0)).
		Op(bytecode.OpTexKill, bctest.Dst(texture, 1, bytecode.MaskXYZ)).
		End().
		Bytes()
	scan := Scan(mustRead(t, data))

	a := scan.Argument(ir.RegisterKey{Type: texture, Index: 1})
	if a == nil || a.Usage != UsageTexcoord || a.UsageIndex != 1 || a.Size != 2 || !a.Input {
		t.Errorf("t1 = %+v, want texcoord1 input of size 2", a)
	}
	if scan.Accessed(ir.RegisterKey{Type: texture, Index: 1}, true) {
		t.Error("texkill recorded as a write")
	}
	if scan.Argument(ir.RegisterKey{Type: sampler, Index: 0}) != nil {
		t.Error("sampler became an argument")
	}
}

func TestScanDeclaredConstants(t *testing.T) {
	ctab := &bctest.ConstantTable{
		Version: bytecode.Version{Kind: bytecode.KindPixel, Major: 2, Minor: 0},
		Constants: []bctest.Constant{
			{Name: "World", Set: bytecode.RegisterSetFloat4, Index: 4, Count: 4,
				Type: bctest.Type{Class: bytecode.ClassMatrixColumns, Type: bytecode.TypeFloat, Rows: 4, Columns: 4, Elements: 1}},
			{Name: "Tex", Set: bytecode.RegisterSetSampler, Index: 0, Count: 1, Type: bctest.Sampler2D()},
		},
	}
	data := bctest.Pixel(2, 0).
		Comment(ctab.Bytes()).
		Op(bytecode.OpMov, bctest.Dst(colorout, 0, bytecode.MaskAll), bctest.Src(constReg, 4)).
		End().
		Bytes()
	scan := Scan(mustRead(t, data))

	for i := uint32(4); i < 8; i++ {
		if !scan.IsDeclaredConstant(ir.RegisterKey{Type: constReg, Index: i}) {
			t.Errorf("c%d not declared", i)
		}
	}
	if scan.IsDeclaredConstant(ir.RegisterKey{Type: constReg, Index: 8}) {
		t.Error("c8 declared")
	}
	if scan.IsDeclaredConstant(ir.RegisterKey{Type: sampler, Index: 0}) {
		t.Error("sampler counted as float constant")
	}
}

func TestScanRegistersSorted(t *testing.T) {
	scan := Scan(mustRead(t, colorScenario()))
	regs := scan.Registers()
	for i := 1; i < len(regs); i++ {
		a, b := regs[i-1], regs[i]
		if a.Type > b.Type || (a.Type == b.Type && a.Index >= b.Index) {
			t.Errorf("Registers() not sorted: %v before %v", a, b)
		}
	}
}

func TestUsageSemantic(t *testing.T) {
	if got := UsageTexcoord.Semantic(); got != "TEXCOORD" {
		t.Errorf("Semantic() = %q", got)
	}
	if got := UsagePointSize.Semantic(); got != "PSIZE" {
		t.Errorf("Semantic() = %q", got)
	}
	if got := Usage(200).String(); got != "Unknown" {
		t.Errorf("String() = %q", got)
	}
}
