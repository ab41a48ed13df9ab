package decompiler

import "github.com/gogpu/shaderdec/ir"

// rewrite applies the first matching rule at e. It returns nil when no
// rule applies.
func (c *Context) rewrite(e ir.Expression, allow bool) ir.Expression {
	switch e := e.(type) {
	case *ir.ExprRegister:
		return c.forward(e, allow)
	case *ir.ExprNegate:
		return rewriteNegate(e)
	case *ir.ExprBinary:
		switch e.Op {
		case ir.BinaryAdd:
			return rewriteAdd(e)
		case ir.BinaryMultiply:
			return rewriteMultiply(e)
		}
	}
	return nil
}

func rewriteNegate(e *ir.ExprNegate) ir.Expression {
	switch inner := e.Inner.(type) {
	case *ir.ExprNegate:
		// -(-a) = a
		return inner.Inner
	case *ir.ExprBinary:
		// -(a - b) = b - a
		if inner.Op == ir.BinarySubtract {
			return ir.NewBinary(ir.BinarySubtract, inner.Right, inner.Left)
		}
	case *ir.ExprConstant:
		return &ir.ExprConstant{Value: -inner.Value}
	}
	return nil
}

func rewriteAdd(e *ir.ExprBinary) ir.Expression {
	ln, lneg := e.Left.(*ir.ExprNegate)
	rn, rneg := e.Right.(*ir.ExprNegate)
	switch {
	case lneg && rneg:
		// (-a) + (-b) = -(a + b)
		return ir.NewNegate(ir.NewBinary(ir.BinaryAdd, ln.Inner, rn.Inner))
	case lneg:
		// (-a) + b = b - a
		return ir.NewBinary(ir.BinarySubtract, e.Right, ln.Inner)
	case rneg:
		return ir.NewBinary(ir.BinarySubtract, e.Left, rn.Inner)
	}

	if v := matchLerp(e.Left, e.Right); v != nil {
		return v
	}
	return matchLerp(e.Right, e.Left)
}

// matchLerp recognizes s * (b - a) + a.
func matchLerp(product, a ir.Expression) ir.Expression {
	mul, ok := product.(*ir.ExprBinary)
	if !ok || mul.Op != ir.BinaryMultiply {
		return nil
	}
	for _, pair := range [2][2]ir.Expression{{mul.Left, mul.Right}, {mul.Right, mul.Left}} {
		s, diff := pair[0], pair[1]
		sub, ok := diff.(*ir.ExprBinary)
		if !ok || sub.Op != ir.BinarySubtract {
			continue
		}
		if ir.Equal(sub.Right, a) {
			return ir.NewCall("lerp", a, sub.Left, s)
		}
	}
	return nil
}

func rewriteMultiply(e *ir.ExprBinary) ir.Expression {
	// 1 * a = a
	if isConstant(e.Left, 1) {
		return e.Right
	}
	if isConstant(e.Right, 1) {
		return e.Left
	}

	// (c / x) * y = (c * y) / x
	if v := distributeDivision(e.Left, e.Right); v != nil {
		return v
	}
	return distributeDivision(e.Right, e.Left)
}

func distributeDivision(quotient, factor ir.Expression) ir.Expression {
	div, ok := quotient.(*ir.ExprBinary)
	if !ok || div.Op != ir.BinaryDivide {
		return nil
	}
	if _, ok := div.Left.(*ir.ExprConstant); !ok {
		return nil
	}
	return ir.NewBinary(ir.BinaryDivide, ir.NewBinary(ir.BinaryMultiply, div.Left, factor), div.Right)
}

func isConstant(e ir.Expression, v float32) bool {
	c, ok := e.(*ir.ExprConstant)
	return ok && c.Value == v
}
