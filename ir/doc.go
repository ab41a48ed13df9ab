// Package ir defines the expression tree the decompiler rewrites.
//
// Every instruction of a shader becomes one tree, usually an ExprAssign
// whose destination is a register and whose source is built from
// constants, register reads, arithmetic, negation, intrinsic calls and
// vector constructors.
//
// # Ownership
//
// Trees never share nodes. Copying a subtree into another tree goes
// through Clone, so rewrites may mutate a tree in place without affecting
// any other.
//
// # Channels
//
// A register reference carries four component slots. Slots marks which of
// them are present and Swizzle names the register channel each present
// slot reads. A destination reference uses the identity swizzle and its
// slots are the write mask. ApplyMask narrows the slots of a source tree
// to the channels its destination actually writes.
package ir
