package shaderdec

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/bytecode/bctest"
	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/hlsl"
)

func multiplyAdd() []byte {
	all := bytecode.MaskAll
	return bctest.Pixel(2, 0).
		Op(bytecode.OpMul, bctest.Dst(bytecode.RegisterTemp, 0, all),
			bctest.Src(bytecode.RegisterConst, 0), bctest.Src(bytecode.RegisterTemp, 1)).
		Op(bytecode.OpAdd, bctest.Dst(bytecode.RegisterTemp, 0, all),
			bctest.Src(bytecode.RegisterTemp, 0), bctest.Src(bytecode.RegisterTemp, 2)).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterColorout, 0, all),
			bctest.Src(bytecode.RegisterTemp, 0)).
		End().
		Bytes()
}

// logicalNot uses the one source modifier with no arithmetic equivalent.
func logicalNot() []byte {
	return bctest.Pixel(2, 0).
		Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterColorout, 0, bytecode.MaskAll),
			bctest.SrcSwizzle(bytecode.RegisterConst, 0, bytecode.IdentitySwizzle, bytecode.ModNot)).
		End().
		Bytes()
}

func read(t *testing.T, data []byte) *bytecode.Shader {
	t.Helper()
	s, err := bytecode.Read(data, nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return s
}

func TestDecompile(t *testing.T) {
	source, err := Decompile(multiplyAdd())
	if err != nil {
		t.Fatalf("Decompile() error = %v", err)
	}
	want := "void main(out float4 color : COLOR0) {\n    color = c0 * r1 + r2;\n}\n"
	if source != want {
		t.Errorf("Decompile() =\n%s\nwant\n%s", source, want)
	}
}

func TestDecompileWithOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.HLSL.EntryPoint = "ps_main"
	opts.HLSL.Indent = "\t"

	r, err := DecompileWithOptions(multiplyAdd(), opts)
	if err != nil {
		t.Fatalf("DecompileWithOptions() error = %v", err)
	}
	if !strings.HasPrefix(r.Source, "void ps_main(") {
		t.Errorf("Source = %q, want ps_main entry point", r.Source)
	}
	if !strings.Contains(r.Source, "\n\tcolor = ") {
		t.Errorf("Source = %q, want tab indentation", r.Source)
	}
	if r.Shader.Version.Kind != bytecode.KindPixel {
		t.Errorf("Shader kind = %v, want pixel", r.Shader.Version.Kind)
	}
	if r.Stats.Initial != 3 || r.Stats.Final != 1 {
		t.Errorf("Stats = %+v, want 3 statements reduced to 1", r.Stats)
	}
	if r.Info.EntryPoint != "ps_main" || len(r.Info.Parameters) != 1 {
		t.Errorf("Info = %+v", r.Info)
	}
}

func TestDecompileMinimumSimplifications(t *testing.T) {
	opts := Options{Decompiler: &decompiler.Options{MinimumSimplifications: true}}
	r, err := DecompileWithOptions(multiplyAdd(), opts)
	if err != nil {
		t.Fatalf("DecompileWithOptions() error = %v", err)
	}
	if r.Stats.Final != r.Stats.Initial {
		t.Errorf("Stats = %+v, want no statement removed", r.Stats)
	}
}

func TestDecompileErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, err := Decompile([]byte{0x00, 0x02})
		if !bytecode.IsTruncated(err) {
			t.Errorf("error = %v, want truncated", err)
		}
	})
	t.Run("unsupported modifier", func(t *testing.T) {
		_, err := Decompile(logicalNot())
		if !decompiler.IsUnsupportedModifier(err) {
			t.Errorf("error = %v, want unsupported modifier", err)
		}
	})
	t.Run("invalid entry point", func(t *testing.T) {
		opts := Options{HLSL: &hlsl.Options{EntryPoint: "float"}}
		_, err := DecompileWithOptions(multiplyAdd(), opts)
		var herr *hlsl.Error
		if !errors.As(err, &herr) || herr.Kind != hlsl.ErrInvalidEntryPoint {
			t.Errorf("error = %v, want invalid entry point", err)
		}
	})
}

func TestDecompileAll(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	shaders := []*bytecode.Shader{
		read(t, multiplyAdd()),
		read(t, logicalNot()),
		nil,
		read(t, multiplyAdd()),
	}
	results, err := DecompileAll(shaders, opts)
	if err == nil {
		t.Fatal("DecompileAll() succeeded, want errors")
	}

	if len(results) != len(shaders) {
		t.Fatalf("got %d results, want %d", len(results), len(shaders))
	}
	for i, ok := range []bool{true, false, false, true} {
		if (results[i] != nil) != ok {
			t.Errorf("results[%d] = %v, want present %v", i, results[i], ok)
		}
	}

	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	if !decompiler.IsUnsupportedModifier(errs[0]) || !strings.HasPrefix(errs[0].Error(), "shader 1:") {
		t.Errorf("errs[0] = %v", errs[0])
	}
	if !decompiler.IsInternal(errs[1]) || !strings.HasPrefix(errs[1].Error(), "shader 2:") {
		t.Errorf("errs[1] = %v", errs[1])
	}

	entries := logs.FilterMessage("shader decompilation failed").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if idx := entries[0].ContextMap()["index"]; idx != int64(1) {
		t.Errorf("index field = %v, want 1", idx)
	}
}

func TestDecompileAllMissingOperand(t *testing.T) {
	s := &bytecode.Shader{
		Version: bytecode.Version{Kind: bytecode.KindPixel, Major: 2, Minor: 0},
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpMov},
		},
	}
	results, err := DecompileAll([]*bytecode.Shader{s}, DefaultOptions())
	if !decompiler.IsInvalidInstruction(err) {
		t.Errorf("error = %v, want invalid instruction", err)
	}
	if results[0] != nil {
		t.Errorf("results[0] = %v, want nil", results[0])
	}
}
