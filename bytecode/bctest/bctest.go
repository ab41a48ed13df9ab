// Package bctest assembles shader bytecode blobs for tests.
//
// Programs are built token by token:
//
//	blob := bctest.Pixel(3, 0).
//	    Op(bytecode.OpMov, bctest.Dst(bytecode.RegisterColorout, 0, bytecode.MaskAll),
//	        bctest.Src(bytecode.RegisterConst, 0)).
//	    End().
//	    Bytes()
package bctest

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/shaderdec/bytecode"
)

// Program accumulates the tokens of a shader blob.
type Program struct {
	words []uint32
}

// New starts a program with the given version word.
func New(v bytecode.Version) *Program {
	return &Program{words: []uint32{uint32(v.Token())}}
}

// Pixel starts a pixel shader program.
func Pixel(major, minor uint8) *Program {
	return New(bytecode.Version{Kind: bytecode.KindPixel, Major: major, Minor: minor})
}

// Vertex starts a vertex shader program.
func Vertex(major, minor uint8) *Program {
	return New(bytecode.Version{Kind: bytecode.KindVertex, Major: major, Minor: minor})
}

// Words appends raw tokens.
func (p *Program) Words(w ...uint32) *Program {
	p.words = append(p.words, w...)
	return p
}

// Op appends an instruction whose length field counts the operands.
func (p *Program) Op(op bytecode.Opcode, operands ...uint32) *Program {
	p.words = append(p.words, uint32(op)|uint32(len(operands))<<24)
	p.words = append(p.words, operands...)
	return p
}

// Dcl appends a declaration of dst with the given usage and usage index.
func (p *Program) Dcl(usage, index uint32, dst uint32) *Program {
	extra := 1<<31 | usage&0x1F | (index&0xF)<<16
	return p.Op(bytecode.OpDcl, extra, dst)
}

// Def appends a float constant definition.
func (p *Program) Def(dst uint32, x, y, z, w float32) *Program {
	return p.Op(bytecode.OpDef, dst,
		math.Float32bits(x), math.Float32bits(y), math.Float32bits(z), math.Float32bits(w))
}

// Comment appends a comment instruction holding body, zero padded to a
// word boundary.
func (p *Program) Comment(body []byte) *Program {
	words := (len(body) + 3) / 4
	padded := make([]byte, words*4)
	copy(padded, body)
	p.words = append(p.words, uint32(bytecode.OpComment)|uint32(words)<<16)
	for i := 0; i < len(padded); i += 4 {
		p.words = append(p.words, binary.LittleEndian.Uint32(padded[i:]))
	}
	return p
}

// End appends the end token.
func (p *Program) End() *Program {
	p.words = append(p.words, uint32(bytecode.OpEnd))
	return p
}

// Bytes returns the little-endian encoding of the program.
func (p *Program) Bytes() []byte {
	out := make([]byte, len(p.words)*4)
	for i, w := range p.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func registerBits(rt bytecode.RegisterType) uint32 {
	t := uint32(rt)
	switch rt {
	case bytecode.RegisterTexture:
		t = uint32(bytecode.RegisterAddress)
	case bytecode.RegisterTexcrdout:
		t = uint32(bytecode.RegisterOutput)
	}
	return (t&7)<<28 | (t>>3&3)<<11
}

// Dst encodes a destination parameter token.
func Dst(rt bytecode.RegisterType, index uint32, mask bytecode.Mask) uint32 {
	return 1<<31 | registerBits(rt) | index&0x7FF | uint32(mask)<<16
}

// DstSat encodes a saturating destination parameter token.
func DstSat(rt bytecode.RegisterType, index uint32, mask bytecode.Mask) uint32 {
	return Dst(rt, index, mask) | uint32(bytecode.ResultSaturate)<<20
}

// Src encodes a source parameter token with the identity swizzle.
func Src(rt bytecode.RegisterType, index uint32) uint32 {
	return SrcSwizzle(rt, index, bytecode.IdentitySwizzle, bytecode.ModNone)
}

// Neg encodes a negated source parameter token with the identity swizzle.
func Neg(rt bytecode.RegisterType, index uint32) uint32 {
	return SrcSwizzle(rt, index, bytecode.IdentitySwizzle, bytecode.ModNegate)
}

// SrcSwizzle encodes a source parameter token.
func SrcSwizzle(rt bytecode.RegisterType, index uint32, sw bytecode.Swizzle, mod bytecode.SourceModifier) uint32 {
	tok := 1<<31 | registerBits(rt) | index&0x7FF | uint32(mod)<<24
	for slot, c := range sw {
		tok |= uint32(c) << (16 + uint(slot)*2)
	}
	return tok
}

// Relative marks a source token as relatively addressed.
func Relative(src uint32) uint32 {
	return src | 1<<13
}
