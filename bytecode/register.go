package bytecode

import (
	"fmt"
	"strings"
)

// RegisterType classifies a register slot. Registers of different types
// never alias.
type RegisterType uint8

const (
	RegisterTemp        RegisterType = 0
	RegisterInput       RegisterType = 1
	RegisterConst       RegisterType = 2
	RegisterAddress     RegisterType = 3
	RegisterRastout     RegisterType = 4
	RegisterAttrout     RegisterType = 5
	RegisterOutput      RegisterType = 6
	RegisterConstInt    RegisterType = 7
	RegisterColorout    RegisterType = 8
	RegisterDepthout    RegisterType = 9
	RegisterSampler     RegisterType = 10
	RegisterConst2      RegisterType = 11
	RegisterConst3      RegisterType = 12
	RegisterConst4      RegisterType = 13
	RegisterConstBool   RegisterType = 14
	RegisterLoop        RegisterType = 15
	RegisterTempFloat16 RegisterType = 16
	RegisterMiscType    RegisterType = 17
	RegisterLabel       RegisterType = 18
	RegisterPredicate   RegisterType = 19

	// Remapped encodings. Address is reinterpreted as Texture inside pixel
	// shaders and Output as Texcrdout inside vertex shaders below 3.0.
	RegisterTexcrdout RegisterType = 100
	RegisterTexture   RegisterType = 101

	// Preshader operands.
	RegisterPreshaderLiteral RegisterType = 200
	RegisterPreshaderInput   RegisterType = 201
	RegisterPreshaderTemp    RegisterType = 202
)

var registerTypeNames = map[RegisterType]string{
	RegisterTemp:             "temp",
	RegisterInput:            "input",
	RegisterConst:            "const",
	RegisterAddress:          "address",
	RegisterRastout:          "rastout",
	RegisterAttrout:          "attrout",
	RegisterOutput:           "output",
	RegisterConstInt:         "constint",
	RegisterColorout:         "colorout",
	RegisterDepthout:         "depthout",
	RegisterSampler:          "sampler",
	RegisterConst2:           "const2",
	RegisterConst3:           "const3",
	RegisterConst4:           "const4",
	RegisterConstBool:        "constbool",
	RegisterLoop:             "loop",
	RegisterTempFloat16:      "tempfloat16",
	RegisterMiscType:         "misctype",
	RegisterLabel:            "label",
	RegisterPredicate:        "predicate",
	RegisterTexcrdout:        "texcrdout",
	RegisterTexture:          "texture",
	RegisterPreshaderLiteral: "preshaderliteral",
	RegisterPreshaderInput:   "preshaderinput",
	RegisterPreshaderTemp:    "preshadertemp",
}

// String returns the lowercase register type name.
func (r RegisterType) String() string {
	if name, ok := registerTypeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("register(%d)", uint8(r))
}

// IsOutput reports whether writes to the register type are observable
// outside the shader.
func (r RegisterType) IsOutput() bool {
	switch r {
	case RegisterRastout, RegisterAttrout, RegisterOutput, RegisterTexcrdout,
		RegisterColorout, RegisterDepthout:
		return true
	}
	return false
}

var registerPrefixes = map[RegisterType]string{
	RegisterTemp:             "r",
	RegisterInput:            "v",
	RegisterConst:            "c",
	RegisterAddress:          "a",
	RegisterAttrout:          "oD",
	RegisterOutput:           "o",
	RegisterConstInt:         "i",
	RegisterColorout:         "oC",
	RegisterSampler:          "s",
	RegisterConst2:           "c",
	RegisterConst3:           "c",
	RegisterConst4:           "c",
	RegisterConstBool:        "b",
	RegisterTempFloat16:      "h",
	RegisterLabel:            "l",
	RegisterPredicate:        "p",
	RegisterTexcrdout:        "oT",
	RegisterTexture:          "t",
	RegisterPreshaderLiteral: "lit",
	RegisterPreshaderInput:   "pc",
	RegisterPreshaderTemp:    "pr",
}

// RegisterPrefix returns the assembly prefix of a register file, e.g.
// "c" for constants. Registers without a prefix use their type name.
func RegisterPrefix(t RegisterType) string {
	if prefix, ok := registerPrefixes[t]; ok {
		return prefix
	}
	return t.String()
}

// RegisterName returns the assembly name of a register, e.g. "r0", "oC1"
// or "oPos".
func RegisterName(t RegisterType, index uint32) string {
	switch t {
	case RegisterRastout:
		switch index {
		case 0:
			return "oPos"
		case 1:
			return "oFog"
		case 2:
			return "oPts"
		}
	case RegisterDepthout:
		return "oDepth"
	case RegisterLoop:
		return "aL"
	case RegisterMiscType:
		switch index {
		case 0:
			return "vPos"
		case 1:
			return "vFace"
		}
	}
	return fmt.Sprintf("%s%d", RegisterPrefix(t), index)
}

// Component selects one channel of a four-component register.
type Component uint8

const (
	X Component = iota
	Y
	Z
	W
)

// String returns the channel letter.
func (c Component) String() string {
	return string("xyzw"[c&3])
}

// Mask is a set of channels, bit i standing for Component(i).
type Mask uint8

const (
	MaskX   Mask = 1 << X
	MaskY   Mask = 1 << Y
	MaskZ   Mask = 1 << Z
	MaskW   Mask = 1 << W
	MaskXY       = MaskX | MaskY
	MaskXYZ      = MaskXY | MaskZ
	MaskAll      = MaskXYZ | MaskW
)

// MaskOf returns the mask holding exactly c.
func MaskOf(c Component) Mask {
	return 1 << (c & 3)
}

// PrefixMask returns the mask of the first n channels (x, xy, xyz, xyzw).
func PrefixMask(n int) Mask {
	if n <= 0 {
		return 0
	}
	if n >= 4 {
		return MaskAll
	}
	return Mask(1<<n - 1)
}

// Has reports whether c is in the mask.
func (m Mask) Has(c Component) bool {
	return m&MaskOf(c) != 0
}

// Overlaps reports whether the masks share a channel.
func (m Mask) Overlaps(o Mask) bool {
	return m&o != 0
}

// Covers reports whether every channel of o is in m.
func (m Mask) Covers(o Mask) bool {
	return m&o == o
}

// Count returns the number of channels in the mask.
func (m Mask) Count() int {
	n := 0
	for c := X; c <= W; c++ {
		if m.Has(c) {
			n++
		}
	}
	return n
}

// Width returns one past the highest channel in the mask, or 0 when empty.
func (m Mask) Width() int {
	for c := W; ; c-- {
		if m.Has(c) {
			return int(c) + 1
		}
		if c == X {
			return 0
		}
	}
}

// Components lists the channels of the mask in x, y, z, w order.
func (m Mask) Components() []Component {
	out := make([]Component, 0, 4)
	for c := X; c <= W; c++ {
		if m.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the channel letters, e.g. "xz".
func (m Mask) String() string {
	var sb strings.Builder
	for _, c := range m.Components() {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Swizzle selects a source channel for each of the four result slots.
type Swizzle [4]Component

// IdentitySwizzle is the swizzle .xyzw.
var IdentitySwizzle = Swizzle{X, Y, Z, W}

// Replicate returns a swizzle selecting c in every slot.
func Replicate(c Component) Swizzle {
	return Swizzle{c, c, c, c}
}

// String returns the assembly form: empty for the identity, trailing
// repeats trimmed otherwise (".xyyy" becomes "xy").
func (s Swizzle) String() string {
	if s == IdentitySwizzle {
		return ""
	}
	n := 4
	for n > 1 && s[n-1] == s[n-2] {
		n--
	}
	var sb strings.Builder
	for _, c := range s[:n] {
		sb.WriteString(c.String())
	}
	return sb.String()
}
