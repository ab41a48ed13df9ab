// Package decompiler turns a decoded shader into a simplified list of
// expression trees.
//
// Decompilation runs three stages:
//
//  1. Scan walks the instructions once and infers the shader arguments
//     (inputs and outputs with semantic bindings) and the channel width
//     of every register.
//  2. Build translates each instruction into an ir.Expression, usually an
//     assignment, and narrows every source to the channels its
//     destination writes.
//  3. Simplify rewrites the list to a fixpoint: register reads are
//     replaced by the expression that produced them, algebraic patterns
//     are folded and dead assignments are removed.
//
// Eliminated statements leave a nil slot so indices stay stable while a
// cycle is running.
package decompiler
