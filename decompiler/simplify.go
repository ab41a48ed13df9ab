package decompiler

import (
	"github.com/gogpu/shaderdec/ir"
	"go.uber.org/zap"
)

// Stats summarizes a simplification run.
type Stats struct {
	// Cycles counts full passes over the statements, including the last
	// unproductive one.
	Cycles int

	// Rewrites counts successful rewrites.
	Rewrites int

	// Removed counts statements eliminated as dead.
	Removed int

	// Initial and Final are the live statement counts before and after.
	Initial int
	Final   int
}

// Simplify rewrites the statements until a full cycle changes nothing,
// then removes dead assignments until none remain.
func (c *Context) Simplify() Stats {
	c.stats = Stats{Initial: c.liveCount()}

	for {
		c.stats.Cycles++
		c.Scan.RecomputeSizes(c.Statements)

		rewrites := c.stats.Rewrites
		for i, e := range c.Statements {
			if e == nil {
				continue
			}
			c.Current = i
			tooComplex := ir.Complexity(e) > c.opts.threshold()
			allow := !tooComplex && !c.opts.MinimumSimplifications
			c.simplify(e, allow, func(v ir.Expression) { c.Statements[i] = v })
		}
		c.stats.Removed += c.cleanup()

		progress := c.stats.Rewrites > rewrites
		c.log.Debug("simplification cycle",
			zap.Int("cycle", c.stats.Cycles),
			zap.Int("live", c.liveCount()),
			zap.Bool("progress", progress),
		)
		if !progress {
			break
		}
	}

	for {
		n := c.cleanup()
		if n == 0 {
			break
		}
		c.stats.Removed += n
	}
	c.Scan.RecomputeSizes(c.Statements)
	c.stats.Final = c.liveCount()
	return c.stats
}

// simplify rewrites e bottom-up. Children are simplified first; rules
// at e repeat until none applies. Each rewrite is attached with set
// before the next one runs, so forwarding always inspects the live
// statement.
func (c *Context) simplify(e ir.Expression, allow bool, set func(ir.Expression)) {
	for {
		c.simplifyChildren(e, allow)
		next := c.rewrite(e, allow)
		if next == nil {
			return
		}
		c.stats.Rewrites++
		e = next
		set(e)
	}
}

func (c *Context) simplifyChildren(parent ir.Expression, allow bool) {
	threshold := c.opts.threshold()
	child := func(x ir.Expression, set func(ir.Expression)) {
		ok := allow && ir.Complexity(parent) <= threshold-ir.Complexity(x)
		c.simplify(x, ok, set)
	}

	switch e := parent.(type) {
	case *ir.ExprAssign:
		child(e.Source, func(v ir.Expression) { e.Source = v })
	case *ir.ExprBinary:
		child(e.Left, func(v ir.Expression) { e.Left = v })
		child(e.Right, func(v ir.Expression) { e.Right = v })
	case *ir.ExprNegate:
		child(e.Inner, func(v ir.Expression) { e.Inner = v })
	case *ir.ExprCall:
		for i, a := range e.Args {
			child(a, func(v ir.Expression) { e.Args[i] = v })
		}
	case *ir.ExprCompose:
		for i, a := range e.Components {
			child(a, func(v ir.Expression) { e.Components[i] = v })
		}
	}
}
