package decompiler

import (
	"testing"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

const (
	temp     = bytecode.RegisterTemp
	input    = bytecode.RegisterInput
	constReg = bytecode.RegisterConst
	colorout = bytecode.RegisterColorout
	sampler  = bytecode.RegisterSampler
	texture  = bytecode.RegisterTexture
)

func mustRead(t *testing.T, data []byte) *bytecode.Shader {
	t.Helper()
	s, err := bytecode.Read(data, nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return s
}

func mustBuild(t *testing.T, data []byte) ([]ir.Expression, *ScanResult) {
	t.Helper()
	s := mustRead(t, data)
	scan := Scan(s)
	stmts, err := Build(s, scan)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return stmts, scan
}

func mustDecompile(t *testing.T, data []byte, opts *Options) *Program {
	t.Helper()
	p, err := Decompile(mustRead(t, data), opts)
	if err != nil {
		t.Fatalf("Decompile() error = %v", err)
	}
	return p
}

func formatAll(stmts []ir.Expression) []string {
	out := make([]string, 0, len(stmts))
	for _, e := range stmts {
		if e != nil {
			out = append(out, ir.Format(e))
		}
	}
	return out
}

func expectStatements(t *testing.T, stmts []ir.Expression, want ...string) {
	t.Helper()
	got := formatAll(stmts)
	if len(got) != len(want) {
		t.Fatalf("got %d statements %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}
}
