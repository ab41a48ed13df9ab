package ir

import (
	"slices"

	"github.com/gogpu/shaderdec/bytecode"
)

// Complexity returns the node count of e. Leaves count as one.
func Complexity(e Expression) int {
	switch e := e.(type) {
	case *ExprConstant, *ExprRegister:
		return 1
	case *ExprAssign:
		return 1 + Complexity(e.Dest) + Complexity(e.Source)
	case *ExprBinary:
		return 1 + Complexity(e.Left) + Complexity(e.Right)
	case *ExprNegate:
		return 1 + Complexity(e.Inner)
	case *ExprCall:
		n := 1
		for _, a := range e.Args {
			n += Complexity(a)
		}
		return n
	case *ExprCompose:
		n := 1
		for _, c := range e.Components {
			n += Complexity(c)
		}
		return n
	}
	return 0
}

// Clone returns a deep copy of e.
func Clone(e Expression) Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *ExprConstant:
		c := *e
		return &c
	case *ExprRegister:
		return cloneRegister(e)
	case *ExprAssign:
		return &ExprAssign{Dest: cloneRegister(e.Dest), Source: Clone(e.Source)}
	case *ExprBinary:
		return &ExprBinary{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right)}
	case *ExprNegate:
		return &ExprNegate{Inner: Clone(e.Inner)}
	case *ExprCall:
		args := make([]Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = Clone(a)
		}
		return &ExprCall{Name: e.Name, Args: args, ArgMasks: slices.Clone(e.ArgMasks)}
	case *ExprCompose:
		comps := make([]Expression, len(e.Components))
		for i, c := range e.Components {
			comps[i] = Clone(c)
		}
		return &ExprCompose{Components: comps}
	}
	panic("ir: unknown expression type")
}

func cloneRegister(r *ExprRegister) *ExprRegister {
	if r == nil {
		return nil
	}
	c := *r
	c.Relative = cloneRegister(r.Relative)
	return &c
}

// Equal reports whether a and b are structurally identical. Register
// references compare by the channels they select, not by unused swizzle
// slots.
func Equal(a, b Expression) bool {
	switch a := a.(type) {
	case *ExprConstant:
		b, ok := b.(*ExprConstant)
		return ok && a.Value == b.Value
	case *ExprRegister:
		b, ok := b.(*ExprRegister)
		return ok && registersEqual(a, b)
	case *ExprAssign:
		b, ok := b.(*ExprAssign)
		return ok && registersEqual(a.Dest, b.Dest) && Equal(a.Source, b.Source)
	case *ExprBinary:
		b, ok := b.(*ExprBinary)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *ExprNegate:
		b, ok := b.(*ExprNegate)
		return ok && Equal(a.Inner, b.Inner)
	case *ExprCall:
		b, ok := b.(*ExprCall)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *ExprCompose:
		b, ok := b.(*ExprCompose)
		if !ok || len(a.Components) != len(b.Components) {
			return false
		}
		for i := range a.Components {
			if !Equal(a.Components[i], b.Components[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func registersEqual(a, b *ExprRegister) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type == b.Type &&
		a.Index == b.Index &&
		a.Destination == b.Destination &&
		a.Slots == b.Slots &&
		slices.Equal(a.Selectors(), b.Selectors()) &&
		registersEqual(a.Relative, b.Relative)
}

// Children returns the direct operands of e.
func Children(e Expression) []Expression {
	switch e := e.(type) {
	case *ExprRegister:
		if e.Relative != nil {
			return []Expression{e.Relative}
		}
	case *ExprAssign:
		return []Expression{e.Dest, e.Source}
	case *ExprBinary:
		return []Expression{e.Left, e.Right}
	case *ExprNegate:
		return []Expression{e.Inner}
	case *ExprCall:
		return e.Args
	case *ExprCompose:
		return e.Components
	}
	return nil
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, fn)
	}
}

// Reads returns every register read in e, including address registers of
// relative reads. The destination of an assignment is not a read.
func Reads(e Expression) []*ExprRegister {
	var out []*ExprRegister
	Walk(e, func(n Expression) bool {
		if r, ok := n.(*ExprRegister); ok && !r.Destination {
			out = append(out, r)
		}
		return true
	})
	return out
}

// ReadMask returns the channels of key read anywhere in e.
func ReadMask(e Expression, key RegisterKey) bytecode.Mask {
	var m bytecode.Mask
	for _, r := range Reads(e) {
		if r.Key() == key {
			m |= r.UsageMask()
		}
	}
	return m
}

// CountReads returns how many reads of key in e touch a channel of mask.
func CountReads(e Expression, key RegisterKey, mask bytecode.Mask) int {
	n := 0
	for _, r := range Reads(e) {
		if r.Key() == key && r.UsageMask().Overlaps(mask) {
			n++
		}
	}
	return n
}

// Written returns the destination of e when e is an assignment.
func Written(e Expression) (*ExprRegister, bool) {
	if a, ok := e.(*ExprAssign); ok {
		return a.Dest, true
	}
	return nil, false
}

// WriteMask returns the channels of key written by e.
func WriteMask(e Expression, key RegisterKey) bytecode.Mask {
	if d, ok := Written(e); ok && d.Key() == key {
		return d.Slots
	}
	return 0
}

// ApplyMask narrows the register reads of e to the slots in m. An
// assignment applies its own write mask to its source; call arguments
// with a fixed mask use that mask instead of m.
func ApplyMask(e Expression, m bytecode.Mask) {
	switch e := e.(type) {
	case *ExprRegister:
		if !e.Destination {
			e.Slots &= m
		}
	case *ExprAssign:
		ApplyMask(e.Source, e.Dest.Slots)
	case *ExprBinary:
		ApplyMask(e.Left, m)
		ApplyMask(e.Right, m)
	case *ExprNegate:
		ApplyMask(e.Inner, m)
	case *ExprCall:
		for i, a := range e.Args {
			if fixed := e.argMask(i); fixed != 0 {
				ApplyMask(a, fixed)
			} else {
				ApplyMask(a, m)
			}
		}
	case *ExprCompose:
		for _, c := range e.Components {
			ApplyMask(c, m)
		}
	}
}
