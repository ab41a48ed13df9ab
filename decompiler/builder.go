package decompiler

import (
	"slices"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

// Intrinsics named directly after a one-to-one opcode.
var intrinsicNames = map[bytecode.Opcode]string{
	bytecode.OpRsq:         "rsqrt",
	bytecode.OpFrc:         "frac",
	bytecode.OpExp:         "exp2",
	bytecode.OpExpP:        "exp2",
	bytecode.OpLog:         "log2",
	bytecode.OpLogP:        "log2",
	bytecode.OpMova:        "round",
	bytecode.OpMin:         "min",
	bytecode.OpMinScalar:   "min",
	bytecode.OpMax:         "max",
	bytecode.OpMaxScalar:   "max",
	bytecode.OpPow:         "pow",
	bytecode.OpAbs:         "abs",
	bytecode.OpSgn:         "sign",
	bytecode.OpDsx:         "ddx",
	bytecode.OpDsy:         "ddy",
	bytecode.OpSin:         "sin",
	bytecode.OpCos:         "cos",
	bytecode.OpAsin:        "asin",
	bytecode.OpAcos:        "acos",
	bytecode.OpAtan:        "atan",
	bytecode.OpAtan2:       "atan2",
	bytecode.OpAtan2Scalar: "atan2",
	bytecode.OpNoise:       "noise",
	bytecode.OpNoiseScalar: "noise",
}

// Matrix multiply opcodes: dot product width and column count.
var matrixOps = map[bytecode.Opcode][2]int{
	bytecode.OpM4x4: {4, 4},
	bytecode.OpM4x3: {4, 3},
	bytecode.OpM3x4: {3, 4},
	bytecode.OpM3x3: {3, 3},
	bytecode.OpM3x2: {3, 2},
}

type builder struct {
	shader     *bytecode.Shader
	scan       *ScanResult
	readWidths map[ir.RegisterKey]int

	// current instruction
	index int
	in    *bytecode.Instruction
}

// Build translates the preshader and main instructions of s into
// statements, then narrows every assignment source to its write mask
// and refreshes the register sizes in scan. Definitions are built last,
// limited to the channels the narrowed statements read.
func Build(s *bytecode.Shader, scan *ScanResult) ([]ir.Expression, error) {
	b := &builder{shader: s, scan: scan, readWidths: make(map[ir.RegisterKey]int)}
	ins := instructions(s)

	var (
		stmts []ir.Expression
		defs  [][2]int // statement position, instruction index
	)
	for i := range ins {
		if isDefinition(ins[i].Op) {
			defs = append(defs, [2]int{len(stmts), i})
			stmts = append(stmts, nil)
			continue
		}
		b.index, b.in = i, &ins[i]
		e, err := b.instruction()
		if err != nil {
			return nil, err
		}
		if e != nil {
			stmts = append(stmts, e)
		}
	}

	for _, e := range stmts {
		if a, ok := e.(*ir.ExprAssign); ok {
			ir.ApplyMask(a, a.Dest.Slots)
		}
	}
	for _, e := range stmts {
		for _, r := range ir.Reads(e) {
			for _, c := range r.Selectors() {
				b.readWidths[r.Key()] = max(b.readWidths[r.Key()], int(c)+1)
			}
		}
	}
	for _, d := range defs {
		b.index, b.in = d[1], &ins[d[1]]
		e, err := b.definition()
		if err != nil {
			return nil, err
		}
		stmts[d[0]] = e
	}
	stmts = slices.DeleteFunc(stmts, func(e ir.Expression) bool { return e == nil })

	scan.RecomputeSizes(stmts)
	return stmts, nil
}

func isDefinition(op bytecode.Opcode) bool {
	return op == bytecode.OpDef || op == bytecode.OpDefI || op == bytecode.OpDefB
}

func (b *builder) errorf(kind ErrorKind, format string, args ...any) error {
	return NewError(kind, b.index, format, args...)
}

func (b *builder) instruction() (ir.Expression, error) {
	in := b.in
	switch in.Op {
	case bytecode.OpNop, bytecode.OpEnd, bytecode.OpComment, bytecode.OpDcl, bytecode.OpPhase:
		return nil, nil
	case bytecode.OpTexKill:
		if in.Dest == nil {
			return nil, b.errorf(ErrInvalidInstruction, "texkill without operand")
		}
		reg := &ir.ExprRegister{
			Type:    in.Dest.Type,
			Index:   in.Dest.Index,
			Slots:   in.Dest.Mask,
			Swizzle: bytecode.IdentitySwizzle,
		}
		return ir.NewCall("clip", reg).WithArgMasks(in.Dest.Mask), nil
	}

	src, err := b.operation()
	if err != nil {
		return nil, err
	}
	if in.Dest == nil {
		return src, nil
	}
	if in.Dest.Result&bytecode.ResultSaturate != 0 {
		src = ir.NewCall("saturate", src)
	}
	return ir.NewAssign(ir.NewDestRegister(in.Dest), src), nil
}

// definition materializes def/defi/defb as a vector constructor limited
// to the channels the shader reads.
func (b *builder) definition() (ir.Expression, error) {
	in := b.in
	if in.Dest == nil || in.Immediate == nil {
		return nil, b.errorf(ErrInvalidInstruction, "%s without value", in.Op)
	}
	dest := ir.NewDestRegister(in.Dest)
	size := b.readWidths[dest.Key()]
	if size == 0 {
		size = 4
	}
	dest.Slots &= bytecode.PrefixMask(size)
	if dest.Slots == 0 {
		return nil, nil
	}

	n := dest.Slots.Width()
	values := make([]ir.Expression, n)
	for i := range n {
		values[i] = &ir.ExprConstant{Value: in.Immediate[i]}
	}
	if n == 1 {
		return ir.NewAssign(dest, values[0]), nil
	}
	return ir.NewAssign(dest, ir.NewCompose(values...)), nil
}

// operation returns the value computed by the current instruction.
func (b *builder) operation() (ir.Expression, error) {
	in := b.in
	if name, ok := intrinsicNames[in.Op]; ok {
		args, err := b.sources(arity(in.Op))
		if err != nil {
			return nil, err
		}
		return ir.NewCall(name, args...), nil
	}
	if dims, ok := matrixOps[in.Op]; ok {
		return b.matrix(dims[0], dims[1])
	}

	switch in.Op {
	case bytecode.OpMov:
		return b.source(0)

	case bytecode.OpAdd, bytecode.OpAddScalar:
		return b.binary(ir.BinaryAdd)
	case bytecode.OpSub:
		return b.binary(ir.BinarySubtract)
	case bytecode.OpMul, bytecode.OpMulScalar:
		return b.binary(ir.BinaryMultiply)
	case bytecode.OpDiv, bytecode.OpDivScalar:
		return b.binary(ir.BinaryDivide)

	case bytecode.OpRcp:
		x, err := b.source(0)
		if err != nil {
			return nil, err
		}
		return ir.NewBinary(ir.BinaryDivide, constant(1), x), nil

	case bytecode.OpMad:
		args, err := b.sources(3)
		if err != nil {
			return nil, err
		}
		return ir.NewBinary(ir.BinaryAdd, ir.NewBinary(ir.BinaryMultiply, args[0], args[1]), args[2]), nil

	case bytecode.OpNeg:
		x, err := b.source(0)
		if err != nil {
			return nil, err
		}
		return ir.NewNegate(x), nil

	case bytecode.OpLrp:
		// dst = s0 * s1 + (1 - s0) * s2
		args, err := b.sources(3)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("lerp", args[2], args[1], args[0]), nil

	case bytecode.OpSge, bytecode.OpGe, bytecode.OpGeScalar:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("step", args[1], args[0]), nil

	case bytecode.OpSlt, bytecode.OpLt, bytecode.OpLtScalar:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		return ir.NewBinary(ir.BinarySubtract, constant(1), ir.NewCall("step", args[1], args[0])), nil

	case bytecode.OpCmp:
		// dst = s0 >= 0 ? s1 : s2
		args, err := b.sources(3)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("lerp", args[2], args[1], ir.NewCall("step", constant(0), args[0])), nil

	case bytecode.OpDp3, bytecode.OpDp4:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		m := bytecode.MaskXYZ
		if in.Op == bytecode.OpDp4 {
			m = bytecode.MaskAll
		}
		return ir.NewCall("dot", args...).WithArgMasks(m, m), nil

	case bytecode.OpDot, bytecode.OpDotScalar:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("dot", args...), nil

	case bytecode.OpDp2Add:
		args, err := b.sources(3)
		if err != nil {
			return nil, err
		}
		dot := ir.NewCall("dot", args[0], args[1]).WithArgMasks(bytecode.MaskXY, bytecode.MaskXY)
		return ir.NewBinary(ir.BinaryAdd, dot, args[2]), nil

	case bytecode.OpNrm:
		x, err := b.source(0)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("normalize", x).WithArgMasks(bytecode.MaskXYZ), nil

	case bytecode.OpCrs:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("cross", args...).WithArgMasks(bytecode.MaskXYZ, bytecode.MaskXYZ), nil

	case bytecode.OpSinCos:
		return b.sinCos()

	case bytecode.OpTex:
		return b.sample()

	case bytecode.OpTexLdl:
		args, err := b.sources(2)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("tex2Dlod", args[1], args[0]).WithArgMasks(bytecode.MaskAll, bytecode.MaskAll), nil

	case bytecode.OpTexLdd:
		args, err := b.sources(4)
		if err != nil {
			return nil, err
		}
		return ir.NewCall("tex2Dgrad", args[1], args[0], args[2], args[3]).
			WithArgMasks(bytecode.MaskAll, bytecode.MaskXY, bytecode.MaskXY, bytecode.MaskXY), nil
	}

	args, err := b.sources(len(in.Sources))
	if err != nil {
		return nil, err
	}
	return ir.NewCall(in.Op.String(), args...), nil
}

func arity(op bytecode.Opcode) int {
	switch op {
	case bytecode.OpMin, bytecode.OpMinScalar, bytecode.OpMax, bytecode.OpMaxScalar,
		bytecode.OpPow, bytecode.OpAtan2, bytecode.OpAtan2Scalar:
		return 2
	}
	return 1
}

func (b *builder) binary(op ir.BinaryOperator) (ir.Expression, error) {
	args, err := b.sources(2)
	if err != nil {
		return nil, err
	}
	return ir.NewBinary(op, args[0], args[1]), nil
}

// sample translates texld. Shader model 1 forms omit the sampler, which
// then shares the destination register number.
func (b *builder) sample() (ir.Expression, error) {
	in := b.in
	var coord, sampler ir.Expression
	var err error
	switch len(in.Sources) {
	case 0:
		if in.Dest == nil {
			return nil, b.errorf(ErrInvalidInstruction, "tex without destination")
		}
		coord = texRegister(bytecode.RegisterTexture, in.Dest.Index)
		sampler = texRegister(bytecode.RegisterSampler, in.Dest.Index)
	case 1:
		if in.Dest == nil {
			return nil, b.errorf(ErrInvalidInstruction, "texld without destination")
		}
		if coord, err = b.source(0); err != nil {
			return nil, err
		}
		sampler = texRegister(bytecode.RegisterSampler, in.Dest.Index)
	default:
		if coord, err = b.source(0); err != nil {
			return nil, err
		}
		if sampler, err = b.source(1); err != nil {
			return nil, err
		}
	}
	return ir.NewCall("tex2D", sampler, coord).WithArgMasks(bytecode.MaskAll, bytecode.MaskXY), nil
}

func texRegister(t bytecode.RegisterType, index uint32) *ir.ExprRegister {
	return &ir.ExprRegister{Type: t, Index: index, Slots: bytecode.MaskAll, Swizzle: bytecode.IdentitySwizzle}
}

// sinCos writes the cosine to x and the sine to y.
func (b *builder) sinCos() (ir.Expression, error) {
	in := b.in
	if in.Dest == nil {
		return nil, b.errorf(ErrInvalidInstruction, "sincos without destination")
	}
	var parts []ir.Expression
	for _, c := range in.Dest.Mask.Components() {
		name := ""
		switch c {
		case bytecode.X:
			name = "cos"
		case bytecode.Y:
			name = "sin"
		default:
			return nil, b.errorf(ErrInvalidInstruction, "sincos writes .%s", c)
		}
		x, err := b.source(0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ir.NewCall(name, x).WithArgMasks(bytecode.MaskX))
	}
	if len(parts) == 0 {
		return nil, b.errorf(ErrInvalidInstruction, "sincos with empty write mask")
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return ir.NewCompose(parts...), nil
}

// matrix expands mNxM into one dot product per written column, reading
// consecutive registers of the matrix operand.
func (b *builder) matrix(width, columns int) (ir.Expression, error) {
	in := b.in
	if in.Dest == nil || len(in.Sources) < 2 || in.Sources[0] == nil || in.Sources[1] == nil {
		return nil, b.errorf(ErrInvalidInstruction, "%s needs a destination and two sources", in.Op)
	}
	m := bytecode.PrefixMask(width)
	var parts []ir.Expression
	for _, c := range in.Dest.Mask.Components() {
		if int(c) >= columns {
			return nil, b.errorf(ErrInvalidInstruction, "%s writes .%s", in.Op, c)
		}
		v, err := b.source(0)
		if err != nil {
			return nil, err
		}
		row := *in.Sources[1]
		row.Index += uint32(c)
		mat, err := b.modified(&row)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ir.NewCall("dot", v, mat).WithArgMasks(m, m))
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return ir.NewCompose(parts...), nil
}

func (b *builder) sources(n int) ([]ir.Expression, error) {
	out := make([]ir.Expression, n)
	for i := range n {
		e, err := b.source(i)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (b *builder) source(i int) (ir.Expression, error) {
	if i >= len(b.in.Sources) || b.in.Sources[i] == nil {
		return nil, b.errorf(ErrInvalidInstruction, "%s: missing source %d", b.in.Op, i)
	}
	return b.modified(b.in.Sources[i])
}

// modified applies the source modifier of p to its register.
func (b *builder) modified(p *bytecode.SourceParam) (ir.Expression, error) {
	reg := ir.NewSourceRegister(p)
	switch p.Modifier {
	case bytecode.ModNone:
		return reg, nil
	case bytecode.ModNegate:
		return ir.NewNegate(reg), nil
	case bytecode.ModBias:
		return bias(reg), nil
	case bytecode.ModBiasNegate:
		return ir.NewNegate(bias(reg)), nil
	case bytecode.ModSign:
		return ir.NewBinary(ir.BinaryMultiply, bias(reg), constant(2)), nil
	case bytecode.ModSignNegate:
		return ir.NewNegate(ir.NewBinary(ir.BinaryMultiply, bias(reg), constant(2))), nil
	case bytecode.ModComplement:
		return ir.NewBinary(ir.BinarySubtract, constant(1), reg), nil
	case bytecode.ModDouble:
		return ir.NewBinary(ir.BinaryMultiply, reg, constant(2)), nil
	case bytecode.ModDoubleNegate:
		return ir.NewBinary(ir.BinaryMultiply, reg, constant(-2)), nil
	case bytecode.ModDivideByZ, bytecode.ModDivideByW:
		c := bytecode.Z
		if p.Modifier == bytecode.ModDivideByW {
			c = bytecode.W
		}
		div := ir.NewSourceRegister(p)
		div.Swizzle = bytecode.Replicate(c)
		return ir.NewBinary(ir.BinaryDivide, reg, div), nil
	case bytecode.ModAbs:
		return ir.NewCall("abs", reg), nil
	case bytecode.ModAbsNegate:
		return ir.NewNegate(ir.NewCall("abs", reg)), nil
	}
	return nil, b.errorf(ErrUnsupportedModifier, "%s: source modifier %s", b.in.Op, p.Modifier)
}

func bias(x ir.Expression) ir.Expression {
	return ir.NewBinary(ir.BinarySubtract, x, constant(0.5))
}

func constant(v float32) *ir.ExprConstant {
	return &ir.ExprConstant{Value: v}
}
