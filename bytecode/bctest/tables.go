package bctest

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/shaderdec/bytecode"
)

// Type describes a constant table type descriptor.
type Type struct {
	Class    bytecode.ObjectClass
	Type     bytecode.ObjectType
	Rows     uint16
	Columns  uint16
	Elements uint16
	Members  []Member
}

// Member describes a struct member.
type Member struct {
	Name string
	Type Type
}

// Constant describes a constant table record.
type Constant struct {
	Name    string
	Set     bytecode.RegisterSet
	Index   uint16
	Count   uint16
	Type    Type
	Default []float32
}

// ConstantTable describes a CTAB block.
type ConstantTable struct {
	Creator   string
	Target    string
	Version   bytecode.Version
	Size      uint32 // header size field; 0 writes the standard 28
	Constants []Constant
}

// Float4 returns a float vector type of n columns.
func Float4(n uint16) Type {
	return Type{Class: bytecode.ClassVector, Type: bytecode.TypeFloat, Rows: 1, Columns: n, Elements: 1}
}

// Sampler2D returns a 2D sampler type.
func Sampler2D() Type {
	return Type{Class: bytecode.ClassObject, Type: bytecode.TypeSampler2D, Rows: 1, Columns: 1, Elements: 1}
}

type buffer struct {
	b []byte
}

func (b *buffer) u16(v uint16) {
	b.b = binary.LittleEndian.AppendUint16(b.b, v)
}

func (b *buffer) u32(v uint32) {
	b.b = binary.LittleEndian.AppendUint32(b.b, v)
}

func (b *buffer) put32(off int, v uint32) {
	binary.LittleEndian.PutUint32(b.b[off:], v)
}

func (b *buffer) str(s string) uint32 {
	off := uint32(len(b.b))
	b.b = append(b.b, s...)
	b.b = append(b.b, 0)
	b.align()
	return off
}

func (b *buffer) align() {
	for len(b.b)%4 != 0 {
		b.b = append(b.b, 0)
	}
}

func (b *buffer) typ(t Type) uint32 {
	var members []uint32
	for _, m := range t.Members {
		members = append(members, b.str(m.Name), b.typ(m.Type))
	}
	var membersOff uint32
	if len(members) > 0 {
		membersOff = uint32(len(b.b))
		for _, w := range members {
			b.u32(w)
		}
	}
	off := uint32(len(b.b))
	b.u16(uint16(t.Class))
	b.u16(uint16(t.Type))
	b.u16(t.Rows)
	b.u16(t.Columns)
	b.u16(t.Elements)
	b.u16(uint16(len(t.Members)))
	b.u32(membersOff)
	return off
}

// Block returns the block body without its signature; offsets are
// relative to its first byte.
func (c *ConstantTable) Block() []byte {
	b := &buffer{}
	size := c.Size
	if size == 0 {
		size = 28
	}
	b.u32(size)
	b.u32(0) // creator
	b.u32(uint32(c.Version.Token()))
	b.u32(uint32(len(c.Constants)))
	b.u32(28)
	b.u32(0) // flags
	b.u32(0) // target

	records := len(b.b)
	for range c.Constants {
		for range 5 {
			b.u32(0)
		}
	}

	b.put32(4, b.str(c.Creator))
	b.put32(24, b.str(c.Target))
	for i, k := range c.Constants {
		rec := records + i*20
		b.put32(rec, b.str(k.Name))
		binary.LittleEndian.PutUint16(b.b[rec+4:], uint16(k.Set))
		binary.LittleEndian.PutUint16(b.b[rec+6:], k.Index)
		binary.LittleEndian.PutUint16(b.b[rec+8:], k.Count)
		b.put32(rec+12, b.typ(k.Type))
		if k.Default != nil {
			off := uint32(len(b.b))
			for _, f := range k.Default {
				b.u32(math.Float32bits(f))
			}
			b.put32(rec+16, off)
		}
	}
	return b.b
}

// Bytes returns the CTAB comment body including the signature.
func (c *ConstantTable) Bytes() []byte {
	return append([]byte("CTAB"), c.Block()...)
}

// Operand is a preshader operand.
type Operand struct {
	Type    uint32 // 1 literal, 2 input, 4 const, 7 temp
	Item    uint32
	Indices [][2]uint32
}

// Lit returns a literal table operand.
func Lit(i uint32) Operand { return Operand{Type: 1, Item: i} }

// In returns an input operand.
func In(reg uint32, c bytecode.Component) Operand {
	return Operand{Type: 2, Item: reg*4 + uint32(c)}
}

// Const returns a main shader constant register operand.
func Const(reg uint32, c bytecode.Component) Operand {
	return Operand{Type: 4, Item: reg*4 + uint32(c)}
}

// Temp returns a preshader temporary operand.
func Temp(reg uint32, c bytecode.Component) Operand {
	return Operand{Type: 7, Item: reg*4 + uint32(c)}
}

// PreshaderOp is one FXLC instruction; the last operand is the
// destination.
type PreshaderOp struct {
	Family   uint32
	Operands []Operand
}

// Preshader describes a PRES block.
type Preshader struct {
	Constants *ConstantTable
	Literals  []float64
	Code      []PreshaderOp
}

// Bytes returns the PRES comment body including the signature.
func (p *Preshader) Bytes() []byte {
	inner := New(bytecode.Version{Kind: bytecode.KindPreshader, Major: 2, Minor: 0})
	if p.Constants != nil {
		inner.Comment(p.Constants.Bytes())
	}
	if p.Literals != nil {
		b := &buffer{b: []byte("CLIT")}
		b.u32(uint32(len(p.Literals)))
		for _, l := range p.Literals {
			b.b = binary.LittleEndian.AppendUint64(b.b, math.Float64bits(l))
		}
		inner.Comment(b.b)
	}
	b := &buffer{b: []byte("FXLC")}
	b.u32(uint32(len(p.Code)))
	for _, op := range p.Code {
		b.u32(op.Family<<16 | 1)
		b.u32(uint32(len(op.Operands) - 1))
		for _, o := range op.Operands {
			b.u32(uint32(len(o.Indices)))
			b.u32(o.Type)
			b.u32(o.Item)
			for _, idx := range o.Indices {
				b.u32(idx[0])
				b.u32(idx[1])
			}
		}
	}
	inner.Comment(b.b)
	inner.End()
	return append([]byte("PRES"), inner.Bytes()...)
}
