package bytecode

import "fmt"

// ShaderKind identifies the program type encoded in the version word.
type ShaderKind uint16

const (
	KindUnknown   ShaderKind = 0
	KindPreshader ShaderKind = 0x4658 // "FX"
	KindVertex    ShaderKind = 0xFFFE
	KindPixel     ShaderKind = 0xFFFF
)

// String returns the kind name.
func (k ShaderKind) String() string {
	switch k {
	case KindPixel:
		return "PixelShader"
	case KindVertex:
		return "VertexShader"
	case KindPreshader:
		return "Preshader"
	default:
		return "Unknown"
	}
}

// Version is the decoded version word of a shader or preshader.
type Version struct {
	Kind  ShaderKind
	Major uint8
	Minor uint8
}

// ParseVersion decodes a version token. Unrecognized kinds map to KindUnknown.
func ParseVersion(t Token) Version {
	kind := ShaderKind(t.Bits(16, 31))
	switch kind {
	case KindPixel, KindVertex, KindPreshader:
	default:
		kind = KindUnknown
	}
	return Version{
		Kind:  kind,
		Major: uint8(t.Bits(8, 15)),
		Minor: uint8(t.Bits(0, 7)),
	}
}

// Token re-encodes the version word.
func (v Version) Token() Token {
	return Token(uint32(v.Kind)<<16 | uint32(v.Major)<<8 | uint32(v.Minor))
}

// AtLeast reports whether v is of the given kind with version >= major.minor.
func (v Version) AtLeast(kind ShaderKind, major, minor uint8) bool {
	if v.Kind != kind {
		return false
	}
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// Below reports whether v is of the given kind with version < major.minor.
func (v Version) Below(kind ShaderKind, major, minor uint8) bool {
	return v.Kind == kind && !v.AtLeast(kind, major, minor)
}

// Profile returns the compiler profile name, e.g. "ps_3_0".
func (v Version) Profile() string {
	prefix := "unknown"
	switch v.Kind {
	case KindPixel:
		prefix = "ps"
	case KindVertex:
		prefix = "vs"
	case KindPreshader:
		prefix = "fx"
	}
	return fmt.Sprintf("%s_%d_%d", prefix, v.Major, v.Minor)
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%s v%d.%d", v.Kind, v.Major, v.Minor)
}
