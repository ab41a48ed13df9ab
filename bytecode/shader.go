package bytecode

import (
	"fmt"
	"strings"
)

// Shader is a decoded shader program.
type Shader struct {
	Version      Version
	Instructions []Instruction

	// Constants is the constant table, sorted by register index.
	Constants []*Constant

	// Creator and Target come from the constant table header.
	Creator string
	Target  string

	// Types caches type descriptors by their offset in the constant table.
	Types map[uint32]*TypeInfo

	// Preshader is the attached preshader program, if any.
	Preshader *Preshader

	// Warnings lists the non-fatal problems found while decoding.
	Warnings []string
}

// Preshader is the CPU-side program deriving constant registers from
// uniform inputs.
type Preshader struct {
	Shader

	// Literals is the literal table indexed by PreshaderLiteral registers.
	Literals []float64
}

// Literal returns literal i and whether it exists.
func (p *Preshader) Literal(i uint32) (float64, bool) {
	if int(i) >= len(p.Literals) {
		return 0, false
	}
	return p.Literals[i], true
}

// ConstantAt returns the constant of the given register set covering
// register index, along with the register offset inside it.
func (s *Shader) ConstantAt(set RegisterSet, index uint32) (*Constant, uint32, bool) {
	for _, c := range s.Constants {
		if c.RegisterSet != set {
			continue
		}
		if index >= c.RegisterIndex && index < c.RegisterIndex+max(c.RegisterCount, 1) {
			return c, index - c.RegisterIndex, true
		}
	}
	return nil, 0, false
}

// Disassemble returns an assembly-like listing of the shader, preceded by
// the preshader listing when present.
func (s *Shader) Disassemble() string {
	var sb strings.Builder
	if s.Preshader != nil {
		sb.WriteString("preshader\n")
		writeListing(&sb, &s.Preshader.Shader, "    ")
		for i, lit := range s.Preshader.Literals {
			fmt.Fprintf(&sb, "    // lit%d = %g\n", i, lit)
		}
		sb.WriteString("\n")
	}
	writeListing(&sb, s, "")
	return sb.String()
}

func writeListing(sb *strings.Builder, s *Shader, indent string) {
	if s.Creator != "" {
		fmt.Fprintf(sb, "%s// creator: %s\n", indent, s.Creator)
	}
	if s.Target != "" {
		fmt.Fprintf(sb, "%s// target: %s\n", indent, s.Target)
	}
	for _, c := range s.Constants {
		fmt.Fprintf(sb, "%s// %s %s%d[%d] %s\n", indent, c.Name, c.RegisterSet.Prefix(),
			c.RegisterIndex, c.RegisterCount, c.Type)
	}
	fmt.Fprintf(sb, "%s%s\n", indent, s.Version.Profile())
	for i := range s.Instructions {
		fmt.Fprintf(sb, "%s%s\n", indent, s.Instructions[i].String())
	}
}
