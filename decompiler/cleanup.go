package decompiler

import "github.com/gogpu/shaderdec/ir"

// cleanup eliminates assignments whose value is never observed and
// returns how many it removed.
func (c *Context) cleanup() int {
	removed := 0
	for i, e := range c.Statements {
		a, ok := e.(*ir.ExprAssign)
		if !ok {
			continue
		}
		key := a.Dest.Key()
		if c.isObservable(key) || c.readLater(key, a.Dest.Slots, i+1) {
			continue
		}
		c.Statements[i] = nil
		removed++
	}
	return removed
}
