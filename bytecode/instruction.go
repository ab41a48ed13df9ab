package bytecode

import (
	"fmt"
	"strings"
)

// Instruction is one decoded instruction.
type Instruction struct {
	Op Opcode

	// Length is the operand token count declared by the instruction
	// token (the operand count for preshader instructions).
	Length uint32

	// Dest is nil for instructions without a destination.
	Dest *DestParam

	// Sources holds the source operands in order. A nil entry keeps the
	// positional slot of an operand that is absent.
	Sources []*SourceParam

	// Immediate holds the inline values of def, defi and defb.
	Immediate *[4]float32

	// Extra is the declaration token of dcl.
	Extra *uint32

	// Comment holds the body of an opaque comment.
	Comment []byte
}

// Source returns source i, or nil when it is absent.
func (in *Instruction) Source(i int) *SourceParam {
	if i < 0 || i >= len(in.Sources) {
		return nil
	}
	return in.Sources[i]
}

// String returns the assembly form of the instruction.
func (in *Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	if in.Dest != nil && in.Dest.Result&ResultSaturate != 0 {
		sb.WriteString("_sat")
	}
	if in.Dest != nil && in.Dest.Result&ResultPartialPrecision != 0 {
		sb.WriteString("_pp")
	}
	if in.Op == OpComment {
		fmt.Fprintf(&sb, " (%d bytes)", len(in.Comment))
		return sb.String()
	}

	var operands []string
	if in.Dest != nil {
		operands = append(operands, in.Dest.String())
	}
	if in.Immediate != nil {
		for _, f := range in.Immediate {
			operands = append(operands, fmt.Sprintf("%g", f))
		}
	}
	for _, src := range in.Sources {
		if src == nil {
			operands = append(operands, "_")
			continue
		}
		operands = append(operands, src.String())
	}
	if len(operands) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(operands, ", "))
	}
	return sb.String()
}
