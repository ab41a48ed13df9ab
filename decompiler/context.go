package decompiler

import (
	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
	"go.uber.org/zap"
)

// Context is the mutable state of one shader's simplification.
// Statements keep their positions; eliminated statements become nil.
type Context struct {
	Shader     *bytecode.Shader
	Scan       *ScanResult
	Statements []ir.Expression

	// Current is the index of the statement being rewritten. Rewrites
	// read other statements but only replace the current one or
	// eliminate earlier ones.
	Current int

	opts  *Options
	log   *zap.Logger
	stats Stats
}

// NewContext prepares stmts for simplification. opts may be nil.
func NewContext(s *bytecode.Shader, scan *ScanResult, stmts []ir.Expression, opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Context{
		Shader:     s,
		Scan:       scan,
		Statements: stmts,
		opts:       opts,
		log:        opts.logger(),
	}
}

// Live returns the statements that have not been eliminated.
func (c *Context) Live() []ir.Expression {
	out := make([]ir.Expression, 0, len(c.Statements))
	for _, e := range c.Statements {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (c *Context) liveCount() int {
	n := 0
	for _, e := range c.Statements {
		if e != nil {
			n++
		}
	}
	return n
}

// isObservable reports whether writes to key are visible after the
// shader returns.
func (c *Context) isObservable(key ir.RegisterKey) bool {
	if key.Type.IsOutput() {
		return true
	}
	a := c.Scan.Argument(key)
	return a != nil && a.Output
}

// readLater reports whether channels of mask written to key before
// statement from are read by a statement at or after from before being
// overwritten.
func (c *Context) readLater(key ir.RegisterKey, mask bytecode.Mask, from int) bool {
	for j := from; j < len(c.Statements) && mask != 0; j++ {
		e := c.Statements[j]
		if e == nil {
			continue
		}
		if ir.ReadMask(e, key).Overlaps(mask) {
			return true
		}
		mask &^= ir.WriteMask(e, key)
	}
	return false
}
