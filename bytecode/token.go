package bytecode

import "fmt"

// Token is a single 32-bit word of the instruction stream.
type Token uint32

// Bit reports whether bit i (0 = least significant) is set.
// Asking for a bit above 31 is a programming error and panics.
func (t Token) Bit(i uint) bool {
	if i > 31 {
		panic(fmt.Sprintf("bytecode: bit index %d out of range", i))
	}
	return t>>i&1 != 0
}

// Bits returns the inclusive bit range [lo, hi] right-aligned to bit 0.
// Ranges with lo > hi or hi > 31 are programming errors and panic.
func (t Token) Bits(lo, hi uint) uint32 {
	if lo > hi || hi > 31 {
		panic(fmt.Sprintf("bytecode: bit range [%d..%d] out of range", lo, hi))
	}
	width := hi - lo + 1
	if width == 32 {
		return uint32(t)
	}
	return uint32(t) >> lo & (1<<width - 1)
}
