package ir

import (
	"fmt"

	"github.com/gogpu/shaderdec/bytecode"
)

// Expression is a node of an expression tree. The set of implementations
// is closed: *ExprConstant, *ExprRegister, *ExprAssign, *ExprBinary,
// *ExprNegate, *ExprCall and *ExprCompose.
type Expression interface {
	expressionKind()
}

// ExprConstant is a float literal.
type ExprConstant struct {
	Value float32
}

func (*ExprConstant) expressionKind() {}

// RegisterKey identifies a register slot independent of channels.
type RegisterKey struct {
	Type  bytecode.RegisterType
	Index uint32
}

// String returns the assembly register name.
func (k RegisterKey) String() string {
	return bytecode.RegisterName(k.Type, k.Index)
}

// ExprRegister is a register reference.
type ExprRegister struct {
	Type  bytecode.RegisterType
	Index uint32

	// Slots marks the present component slots.
	Slots bytecode.Mask

	// Swizzle selects the register channel read by each present slot.
	Swizzle bytecode.Swizzle

	// Destination marks the written register of an ExprAssign.
	Destination bool

	// Relative is the address register of a relatively addressed read.
	Relative *ExprRegister
}

func (*ExprRegister) expressionKind() {}

// NewSourceRegister converts a decoded source operand, ignoring its
// modifier.
func NewSourceRegister(p *bytecode.SourceParam) *ExprRegister {
	r := &ExprRegister{
		Type:    p.Type,
		Index:   p.Index,
		Slots:   bytecode.MaskAll,
		Swizzle: p.Swizzle,
	}
	switch {
	case p.Address != nil:
		r.Relative = &ExprRegister{
			Type:    p.Address.Type,
			Index:   p.Address.Index,
			Slots:   bytecode.MaskX,
			Swizzle: bytecode.Replicate(p.Address.Swizzle[0]),
		}
	case p.Relative:
		r.Relative = &ExprRegister{
			Type:    bytecode.RegisterAddress,
			Slots:   bytecode.MaskX,
			Swizzle: bytecode.Replicate(bytecode.X),
		}
	}
	return r
}

// NewDestRegister converts a decoded destination operand.
func NewDestRegister(p *bytecode.DestParam) *ExprRegister {
	return &ExprRegister{
		Type:        p.Type,
		Index:       p.Index,
		Slots:       p.Mask,
		Swizzle:     bytecode.IdentitySwizzle,
		Destination: true,
	}
}

// Key returns the register identity.
func (r *ExprRegister) Key() RegisterKey {
	return RegisterKey{Type: r.Type, Index: r.Index}
}

// Selectors lists the channel read by each present slot, in slot order.
func (r *ExprRegister) Selectors() []bytecode.Component {
	out := make([]bytecode.Component, 0, 4)
	for _, slot := range r.Slots.Components() {
		out = append(out, r.Swizzle[slot])
	}
	return out
}

// UsageMask returns the register channels the reference touches.
func (r *ExprRegister) UsageMask() bytecode.Mask {
	var m bytecode.Mask
	for _, c := range r.Selectors() {
		m |= bytecode.MaskOf(c)
	}
	return m
}

// IsFull reports whether all four channels are referenced in order.
func (r *ExprRegister) IsFull() bool {
	return r.Slots == bytecode.MaskAll && r.Swizzle == bytecode.IdentitySwizzle
}

// IsOrdered reports whether the selectors are x, y, z, ... in sequence.
func (r *ExprRegister) IsOrdered() bool {
	sel := r.Selectors()
	if len(sel) == 0 {
		return false
	}
	for i, c := range sel {
		if int(c) != i {
			return false
		}
	}
	return true
}

// IsSingle reports whether every selector names the same channel.
func (r *ExprRegister) IsSingle() bool {
	sel := r.Selectors()
	if len(sel) == 0 {
		return false
	}
	for _, c := range sel[1:] {
		if c != sel[0] {
			return false
		}
	}
	return true
}

// ExprAssign writes Source into the channels of Dest.
type ExprAssign struct {
	Dest   *ExprRegister
	Source Expression
}

func (*ExprAssign) expressionKind() {}

// NewAssign builds an assignment. It panics unless dest is a destination
// register and src is non-nil.
func NewAssign(dest Expression, src Expression) *ExprAssign {
	reg, ok := dest.(*ExprRegister)
	if !ok || reg == nil || !reg.Destination {
		panic(fmt.Sprintf("ir: assignment destination must be a destination register, got %T", dest))
	}
	if src == nil {
		panic("ir: assignment without source")
	}
	return &ExprAssign{Dest: reg, Source: src}
}

// BinaryOperator is the operator of an ExprBinary.
type BinaryOperator uint8

const (
	BinaryAdd BinaryOperator = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
)

// String returns the HLSL operator token.
func (op BinaryOperator) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySubtract:
		return "-"
	case BinaryMultiply:
		return "*"
	case BinaryDivide:
		return "/"
	default:
		return "?"
	}
}

// Precedence returns the binding strength of the operator.
func (op BinaryOperator) Precedence() int {
	if op == BinaryMultiply || op == BinaryDivide {
		return 2
	}
	return 1
}

// Commutative reports whether operands may be swapped.
func (op BinaryOperator) Commutative() bool {
	return op == BinaryAdd || op == BinaryMultiply
}

// ExprBinary is an arithmetic operation.
type ExprBinary struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (*ExprBinary) expressionKind() {}

// NewBinary builds an arithmetic node. It panics on nil operands.
func NewBinary(op BinaryOperator, left, right Expression) *ExprBinary {
	if left == nil || right == nil {
		panic(fmt.Sprintf("ir: %s needs two operands", op))
	}
	return &ExprBinary{Op: op, Left: left, Right: right}
}

// ExprNegate is arithmetic negation.
type ExprNegate struct {
	Inner Expression
}

func (*ExprNegate) expressionKind() {}

// NewNegate builds a negation. It panics on a nil operand.
func NewNegate(inner Expression) *ExprNegate {
	if inner == nil {
		panic("ir: negation without operand")
	}
	return &ExprNegate{Inner: inner}
}

// ExprCall is an intrinsic function call.
type ExprCall struct {
	Name string
	Args []Expression

	// ArgMasks optionally fixes the channel mask of each argument; a zero
	// entry inherits the mask applied to the call.
	ArgMasks []bytecode.Mask
}

func (*ExprCall) expressionKind() {}

// NewCall builds a call. It panics on nil arguments.
func NewCall(name string, args ...Expression) *ExprCall {
	for i, a := range args {
		if a == nil {
			panic(fmt.Sprintf("ir: %s argument %d is nil", name, i))
		}
	}
	return &ExprCall{Name: name, Args: args}
}

// WithArgMasks sets fixed argument masks and returns c.
func (c *ExprCall) WithArgMasks(masks ...bytecode.Mask) *ExprCall {
	if len(masks) > len(c.Args) {
		panic(fmt.Sprintf("ir: %s has %d arguments, got %d masks", c.Name, len(c.Args), len(masks)))
	}
	c.ArgMasks = masks
	return c
}

func (c *ExprCall) argMask(i int) bytecode.Mask {
	if i < len(c.ArgMasks) {
		return c.ArgMasks[i]
	}
	return 0
}

// ExprCompose is a vector constructor of one to four components.
type ExprCompose struct {
	Components []Expression
}

func (*ExprCompose) expressionKind() {}

// NewCompose builds a vector constructor. It panics unless it receives
// one to four non-nil components.
func NewCompose(components ...Expression) *ExprCompose {
	if len(components) == 0 || len(components) > 4 {
		panic(fmt.Sprintf("ir: vector constructor needs 1 to 4 components, got %d", len(components)))
	}
	for i, c := range components {
		if c == nil {
			panic(fmt.Sprintf("ir: vector constructor component %d is nil", i))
		}
	}
	return &ExprCompose{Components: components}
}
