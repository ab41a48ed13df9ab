package bytecode

import "testing"

func TestDecodeDest(t *testing.T) {
	ps := Version{KindPixel, 3, 0}
	vs2 := Version{KindVertex, 2, 0}
	vs3 := Version{KindVertex, 3, 0}

	tests := []struct {
		name string
		tok  Token
		v    Version
		want DestParam
	}{
		{
			name: "temp xy",
			tok:  0x80030000 | 5,
			v:    ps,
			want: DestParam{Type: RegisterTemp, Index: 5, Mask: MaskXY},
		},
		{
			name: "colorout uses high type bits",
			tok:  0x80000000 | 0x0800 | 0x0F0000,
			v:    ps,
			want: DestParam{Type: RegisterColorout, Index: 0, Mask: MaskAll},
		},
		{
			name: "address becomes texture in pixel shaders",
			tok:  0xB00F0002,
			v:    ps,
			want: DestParam{Type: RegisterTexture, Index: 2, Mask: MaskAll},
		},
		{
			name: "address stays address in vertex shaders",
			tok:  0xB0010000,
			v:    vs2,
			want: DestParam{Type: RegisterAddress, Index: 0, Mask: MaskX},
		},
		{
			name: "output becomes texcrdout below vs 3.0",
			tok:  0xE00F0001,
			v:    vs2,
			want: DestParam{Type: RegisterTexcrdout, Index: 1, Mask: MaskAll},
		},
		{
			name: "output stays output on vs 3.0",
			tok:  0xE00F0001,
			v:    vs3,
			want: DestParam{Type: RegisterOutput, Index: 1, Mask: MaskAll},
		},
		{
			name: "saturate",
			tok:  0x801F0000,
			v:    ps,
			want: DestParam{Type: RegisterTemp, Mask: MaskAll, Result: ResultSaturate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeDest(tt.tok, tt.v); got != tt.want {
				t.Errorf("DecodeDest(%#x) = %+v, want %+v", uint32(tt.tok), got, tt.want)
			}
		})
	}
}

func TestDecodeSource(t *testing.T) {
	ps := Version{KindPixel, 2, 0}

	// c3.wzyx negated
	tok := Token(0x80000000 | 2<<28 | 3 | 0x1B<<16 | uint32(ModNegate)<<24)
	got := DecodeSource(tok, ps)
	want := SourceParam{
		Type:     RegisterConst,
		Index:    3,
		Swizzle:  Swizzle{W, Z, Y, X},
		Modifier: ModNegate,
	}
	if got.Type != want.Type || got.Index != want.Index || got.Swizzle != want.Swizzle ||
		got.Modifier != want.Modifier || got.Relative != want.Relative {
		t.Errorf("DecodeSource = %+v, want %+v", got, want)
	}
	if s := got.String(); s != "-c3.wzyx" {
		t.Errorf("String() = %q, want %q", s, "-c3.wzyx")
	}

	// t1 in a pixel shader reads as texture with identity swizzle
	tex := DecodeSource(Token(0x80000000|3<<28|1|0xE4<<16), ps)
	if tex.Type != RegisterTexture || tex.Swizzle != IdentitySwizzle {
		t.Errorf("texture source = %+v", tex)
	}
	if tex.UsedMask() != MaskAll {
		t.Errorf("UsedMask() = %v, want xyzw", tex.UsedMask())
	}

	rel := DecodeSource(Token(0x80000000|2<<28|0x2000|0xE4<<16), ps)
	if !rel.Relative {
		t.Error("relative addressing bit not decoded")
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		mask  Mask
		count int
		width int
		str   string
	}{
		{0, 0, 0, ""},
		{MaskX, 1, 1, "x"},
		{MaskXY, 2, 2, "xy"},
		{MaskZ | MaskW, 2, 4, "zw"},
		{MaskX | MaskZ, 2, 3, "xz"},
		{MaskAll, 4, 4, "xyzw"},
	}
	for _, tt := range tests {
		if got := tt.mask.Count(); got != tt.count {
			t.Errorf("%v.Count() = %d, want %d", tt.mask, got, tt.count)
		}
		if got := tt.mask.Width(); got != tt.width {
			t.Errorf("%v.Width() = %d, want %d", tt.mask, got, tt.width)
		}
		if got := tt.mask.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
	if !MaskAll.Covers(MaskXY) || MaskXY.Covers(MaskXYZ) {
		t.Error("Covers")
	}
	if PrefixMask(3) != MaskXYZ || PrefixMask(0) != 0 || PrefixMask(7) != MaskAll {
		t.Error("PrefixMask")
	}
}

func TestSwizzleString(t *testing.T) {
	tests := []struct {
		sw   Swizzle
		want string
	}{
		{IdentitySwizzle, ""},
		{Replicate(X), "x"},
		{Swizzle{X, Y, Y, Y}, "xy"},
		{Swizzle{W, Z, Y, X}, "wzyx"},
		{Swizzle{Z, W, W, W}, "zw"},
	}
	for _, tt := range tests {
		if got := tt.sw.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", [4]Component(tt.sw), got, tt.want)
		}
	}
}

func TestRegisterName(t *testing.T) {
	tests := []struct {
		rt    RegisterType
		index uint32
		want  string
	}{
		{RegisterTemp, 3, "r3"},
		{RegisterColorout, 1, "oC1"},
		{RegisterRastout, 0, "oPos"},
		{RegisterRastout, 1, "oFog"},
		{RegisterDepthout, 0, "oDepth"},
		{RegisterTexcrdout, 2, "oT2"},
		{RegisterTexture, 0, "t0"},
		{RegisterSampler, 4, "s4"},
		{RegisterMiscType, 1, "vFace"},
	}
	for _, tt := range tests {
		if got := RegisterName(tt.rt, tt.index); got != tt.want {
			t.Errorf("RegisterName(%v, %d) = %q, want %q", tt.rt, tt.index, got, tt.want)
		}
	}
}

func TestOpcodeTable(t *testing.T) {
	if OpMov.String() != "mov" || OpTex.String() != "texld" {
		t.Error("mnemonics")
	}
	if OpIf.HasDest() || OpRet.HasDest() || !OpAdd.HasDest() {
		t.Error("HasDest")
	}
	if PreshaderOpcode(0x2040) != OpAdd || PreshaderOpcode(0xA050) != OpMulScalar {
		t.Error("preshader family mapping")
	}
	if PreshaderOpcode(0x7777) != OpUnknown {
		t.Error("unknown family should map to OpUnknown")
	}
}
