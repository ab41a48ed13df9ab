package decompiler

import (
	"slices"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

// forward replaces a register read in the current statement with the
// value last assigned to it. It returns nil when the read must stay.
func (c *Context) forward(reg *ir.ExprRegister, allow bool) ir.Expression {
	if reg.Destination || reg.Relative != nil {
		return nil
	}
	if reg.Type == bytecode.RegisterPreshaderLiteral {
		return c.literal(reg)
	}
	key := reg.Key()
	if c.Scan.IsDeclaredConstant(key) {
		return nil
	}

	read := reg.UsageMask()
	if read == 0 {
		return nil
	}
	w, assign := c.lastWrite(key, read)
	if assign == nil || !assign.Dest.Slots.Covers(read) {
		return nil
	}

	// Constant values are copied and their definition kept for other
	// readers.
	switch src := assign.Source.(type) {
	case *ir.ExprConstant:
		if !c.withinBudget(src, allow) {
			return nil
		}
		return ir.Clone(src)
	case *ir.ExprCompose:
		if constantsOnly(src) {
			v := sliceCompose(src, assign.Dest, reg.Selectors())
			if v == nil || !c.withinBudget(v, allow) {
				return nil
			}
			return v
		}
	}

	if !c.safeToMove(w, assign, reg) || !c.withinBudget(assign.Source, allow) {
		return nil
	}
	v := ir.Clone(assign.Source)
	c.Statements[w] = nil
	return v
}

// literal resolves a preshader literal table entry.
func (c *Context) literal(reg *ir.ExprRegister) ir.Expression {
	if c.Shader == nil || c.Shader.Preshader == nil {
		return nil
	}
	v, ok := c.Shader.Preshader.Literal(reg.Index)
	if !ok {
		return nil
	}
	return &ir.ExprConstant{Value: float32(v)}
}

// lastWrite finds the nearest statement before the current one that
// writes a channel of mask to key.
func (c *Context) lastWrite(key ir.RegisterKey, mask bytecode.Mask) (int, *ir.ExprAssign) {
	for j := c.Current - 1; j >= 0; j-- {
		a, ok := c.Statements[j].(*ir.ExprAssign)
		if !ok {
			continue
		}
		if a.Dest.Key() == key && a.Dest.Slots.Overlaps(mask) {
			return j, a
		}
	}
	return -1, nil
}

// withinBudget reports whether replacing a leaf of the current statement
// with v respects the complexity threshold.
func (c *Context) withinBudget(v ir.Expression, allow bool) bool {
	size := ir.Complexity(v)
	if !allow && !(c.opts.LeafForwarding && size == 1) {
		return false
	}
	cur := ir.Complexity(c.Statements[c.Current])
	return cur-1+size <= c.opts.threshold()
}

// safeToMove reports whether the assignment at w can be moved into the
// current statement and eliminated.
func (c *Context) safeToMove(w int, assign *ir.ExprAssign, reg *ir.ExprRegister) bool {
	key := reg.Key()
	written := assign.Dest.Slots

	// The read must consume exactly the written channels in the order
	// they were produced, or broadcast a single channel.
	if reg.UsageMask() != written {
		return false
	}
	if written.Count() > 1 && !slices.Equal(reg.Selectors(), assign.Dest.Selectors()) {
		return false
	}

	if ir.CountReads(c.Statements[c.Current], key, written) != 1 {
		return false
	}

	sources := ir.Reads(assign.Source)
	for j := w + 1; j < c.Current; j++ {
		e := c.Statements[j]
		if e == nil {
			continue
		}
		if ir.CountReads(e, key, written) > 0 {
			return false
		}
		for _, s := range sources {
			if ir.WriteMask(e, s.Key()).Overlaps(s.UsageMask()) {
				return false
			}
		}
	}

	rest := written &^ ir.WriteMask(c.Statements[c.Current], key)
	return !c.readLater(key, rest, c.Current+1)
}

func constantsOnly(v *ir.ExprCompose) bool {
	for _, e := range v.Components {
		if _, ok := e.(*ir.ExprConstant); !ok {
			return false
		}
	}
	return true
}

// sliceCompose selects the components of a constant vector written to
// dest that a read with the given selectors observes.
func sliceCompose(v *ir.ExprCompose, dest *ir.ExprRegister, selectors []bytecode.Component) ir.Expression {
	channels := dest.Slots.Components()
	if len(channels) != len(v.Components) || len(selectors) == 0 {
		return nil
	}
	picked := make([]ir.Expression, 0, len(selectors))
	for _, sel := range selectors {
		k := slices.Index(channels, sel)
		if k < 0 {
			return nil
		}
		picked = append(picked, ir.Clone(v.Components[k]))
	}
	if len(picked) == 1 {
		return picked[0]
	}
	first := picked[0].(*ir.ExprConstant).Value
	for _, p := range picked[1:] {
		if p.(*ir.ExprConstant).Value != first {
			return ir.NewCompose(picked...)
		}
	}
	return picked[0]
}
