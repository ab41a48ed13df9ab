package decompiler

import (
	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

// Program is a simplified shader ready for code generation.
type Program struct {
	Shader *bytecode.Shader
	Scan   *ScanResult

	// Statements are the surviving statements in execution order.
	Statements []ir.Expression

	Stats Stats
}

// Decompile scans, builds and simplifies s. opts may be nil.
func Decompile(s *bytecode.Shader, opts *Options) (*Program, error) {
	scan := Scan(s)
	stmts, err := Build(s, scan)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(s, scan, stmts, opts)
	stats := ctx.Simplify()
	return &Program{
		Shader:     s,
		Scan:       scan,
		Statements: ctx.Live(),
		Stats:      stats,
	}, nil
}
