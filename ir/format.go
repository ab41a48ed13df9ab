package ir

import (
	"strconv"
	"strings"

	"github.com/gogpu/shaderdec/bytecode"
)

// Format renders e in a compact, fully parenthesized form using
// assembly register names, e.g. "r0.xy = (c0.xy * v1.xy)".
func Format(e Expression) string {
	var sb strings.Builder
	format(&sb, e)
	return sb.String()
}

func format(sb *strings.Builder, e Expression) {
	switch e := e.(type) {
	case *ExprConstant:
		sb.WriteString(strconv.FormatFloat(float64(e.Value), 'g', -1, 32))
	case *ExprRegister:
		sb.WriteString(bytecode.RegisterName(e.Type, e.Index))
		if e.Relative != nil {
			sb.WriteByte('[')
			format(sb, e.Relative)
			sb.WriteByte(']')
		}
		if !e.IsFull() {
			sb.WriteByte('.')
			for _, c := range e.Selectors() {
				sb.WriteString(c.String())
			}
		}
	case *ExprAssign:
		format(sb, e.Dest)
		sb.WriteString(" = ")
		format(sb, e.Source)
	case *ExprBinary:
		sb.WriteByte('(')
		format(sb, e.Left)
		sb.WriteString(" " + e.Op.String() + " ")
		format(sb, e.Right)
		sb.WriteByte(')')
	case *ExprNegate:
		sb.WriteByte('-')
		format(sb, e.Inner)
	case *ExprCall:
		sb.WriteString(e.Name)
		sb.WriteByte('(')
		formatList(sb, e.Args)
		sb.WriteByte(')')
	case *ExprCompose:
		sb.WriteByte('{')
		formatList(sb, e.Components)
		sb.WriteByte('}')
	case nil:
		sb.WriteString("<nil>")
	}
}

func formatList(sb *strings.Builder, list []Expression) {
	for i, e := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, e)
	}
}
