package bytecode

import "fmt"

// SourceModifier is applied to a source operand before use.
type SourceModifier uint8

const (
	ModNone SourceModifier = iota
	ModNegate
	ModBias
	ModBiasNegate
	ModSign
	ModSignNegate
	ModComplement
	ModDouble
	ModDoubleNegate
	ModDivideByZ
	ModDivideByW
	ModAbs
	ModAbsNegate
	ModNot
)

var sourceModifierNames = [...]string{
	ModNone:         "none",
	ModNegate:       "negate",
	ModBias:         "bias",
	ModBiasNegate:   "biasnegate",
	ModSign:         "sign",
	ModSignNegate:   "signnegate",
	ModComplement:   "complement",
	ModDouble:       "x2",
	ModDoubleNegate: "x2negate",
	ModDivideByZ:    "dz",
	ModDivideByW:    "dw",
	ModAbs:          "abs",
	ModAbsNegate:    "absnegate",
	ModNot:          "not",
}

// String returns the modifier name.
func (m SourceModifier) String() string {
	if int(m) < len(sourceModifierNames) {
		return sourceModifierNames[m]
	}
	return fmt.Sprintf("modifier(%d)", uint8(m))
}

// ResultModifier flags are applied to a destination write.
type ResultModifier uint8

const (
	ResultSaturate         ResultModifier = 1
	ResultPartialPrecision ResultModifier = 2
	ResultCentroid         ResultModifier = 4
)

// DestParam is a decoded destination operand.
type DestParam struct {
	Type     RegisterType
	Index    uint32
	Mask     Mask
	Result   ResultModifier
	Relative bool
}

// SourceParam is a decoded source operand.
type SourceParam struct {
	Type     RegisterType
	Index    uint32
	Swizzle  Swizzle
	Modifier SourceModifier
	Relative bool

	// Address is the relative addressing register, when encoded in an
	// extra token (shader model 2 and later).
	Address *SourceParam
}

func decodeRegisterType(t Token, v Version) RegisterType {
	rt := RegisterType(t.Bits(11, 12)<<3 | t.Bits(28, 30))
	switch {
	case rt == RegisterAddress && v.Kind == KindPixel:
		rt = RegisterTexture
	case rt == RegisterOutput && v.Below(KindVertex, 3, 0):
		rt = RegisterTexcrdout
	}
	return rt
}

// DecodeDest decodes a destination parameter token for a shader of
// version v.
func DecodeDest(t Token, v Version) DestParam {
	var mask Mask
	for c := X; c <= W; c++ {
		if t.Bit(16 + uint(c)) {
			mask |= MaskOf(c)
		}
	}
	return DestParam{
		Type:     decodeRegisterType(t, v),
		Index:    t.Bits(0, 10),
		Mask:     mask,
		Result:   ResultModifier(t.Bits(20, 23)),
		Relative: t.Bit(13),
	}
}

// DecodeSource decodes a source parameter token for a shader of version v.
func DecodeSource(t Token, v Version) SourceParam {
	var sw Swizzle
	for slot := range sw {
		lo := 16 + uint(slot)*2
		sw[slot] = Component(t.Bits(lo, lo+1))
	}
	return SourceParam{
		Type:     decodeRegisterType(t, v),
		Index:    t.Bits(0, 10),
		Swizzle:  sw,
		Modifier: SourceModifier(t.Bits(24, 27)),
		Relative: t.Bit(13),
	}
}

// UsedMask returns the channels the swizzle reads.
func (p *SourceParam) UsedMask() Mask {
	var m Mask
	for _, c := range p.Swizzle {
		m |= MaskOf(c)
	}
	return m
}

// String returns the assembly form of the destination, e.g. "r0.xy".
func (p DestParam) String() string {
	name := RegisterName(p.Type, p.Index)
	if p.Mask == MaskAll || p.Mask == 0 {
		return name
	}
	return name + "." + p.Mask.String()
}

// String returns the assembly form of the source, e.g. "-c2.zw" or
// "r1_bx2".
func (p SourceParam) String() string {
	reg := RegisterName(p.Type, p.Index)
	if p.Address != nil {
		reg = fmt.Sprintf("%s[%s]", reg, p.Address)
	}
	if sw := p.Swizzle.String(); sw != "" {
		reg += "." + sw
	}
	switch p.Modifier {
	case ModNegate:
		return "-" + reg
	case ModBias:
		return reg + "_bias"
	case ModBiasNegate:
		return "-" + reg + "_bias"
	case ModSign:
		return reg + "_bx2"
	case ModSignNegate:
		return "-" + reg + "_bx2"
	case ModComplement:
		return "1-" + reg
	case ModDouble:
		return reg + "_x2"
	case ModDoubleNegate:
		return "-" + reg + "_x2"
	case ModDivideByZ:
		return reg + "_dz"
	case ModDivideByW:
		return reg + "_dw"
	case ModAbs:
		return reg + "_abs"
	case ModAbsNegate:
		return "-" + reg + "_abs"
	case ModNot:
		return "!" + reg
	}
	return reg
}
