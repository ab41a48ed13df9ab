package bytecode

import "fmt"

// Opcode identifies an instruction. Values below 0x10000 are the native
// shader opcodes; preshader-only operations are numbered above them.
type Opcode uint32

const (
	OpNop          Opcode = 0
	OpMov          Opcode = 1
	OpAdd          Opcode = 2
	OpSub          Opcode = 3
	OpMad          Opcode = 4
	OpMul          Opcode = 5
	OpRcp          Opcode = 6
	OpRsq          Opcode = 7
	OpDp3          Opcode = 8
	OpDp4          Opcode = 9
	OpMin          Opcode = 10
	OpMax          Opcode = 11
	OpSlt          Opcode = 12
	OpSge          Opcode = 13
	OpExp          Opcode = 14
	OpLog          Opcode = 15
	OpLit          Opcode = 16
	OpDst          Opcode = 17
	OpLrp          Opcode = 18
	OpFrc          Opcode = 19
	OpM4x4         Opcode = 20
	OpM4x3         Opcode = 21
	OpM3x4         Opcode = 22
	OpM3x3         Opcode = 23
	OpM3x2         Opcode = 24
	OpCall         Opcode = 25
	OpCallNz       Opcode = 26
	OpLoop         Opcode = 27
	OpRet          Opcode = 28
	OpEndLoop      Opcode = 29
	OpLabel        Opcode = 30
	OpDcl          Opcode = 31
	OpPow          Opcode = 32
	OpCrs          Opcode = 33
	OpSgn          Opcode = 34
	OpAbs          Opcode = 35
	OpNrm          Opcode = 36
	OpSinCos       Opcode = 37
	OpRep          Opcode = 38
	OpEndRep       Opcode = 39
	OpIf           Opcode = 40
	OpIfC          Opcode = 41
	OpElse         Opcode = 42
	OpEndIf        Opcode = 43
	OpBreak        Opcode = 44
	OpBreakC       Opcode = 45
	OpMova         Opcode = 46
	OpDefB         Opcode = 47
	OpDefI         Opcode = 48
	OpTexCoord     Opcode = 64
	OpTexKill      Opcode = 65
	OpTex          Opcode = 66
	OpTexBem       Opcode = 67
	OpTexBemL      Opcode = 68
	OpTexReg2AR    Opcode = 69
	OpTexReg2GB    Opcode = 70
	OpTexM3x2Pad   Opcode = 71
	OpTexM3x2Tex   Opcode = 72
	OpTexM3x3Pad   Opcode = 73
	OpTexM3x3Tex   Opcode = 74
	OpTexM3x3Spec  Opcode = 76
	OpTexM3x3VSpec Opcode = 77
	OpExpP         Opcode = 78
	OpLogP         Opcode = 79
	OpCnd          Opcode = 80
	OpDef          Opcode = 81
	OpTexReg2RGB   Opcode = 82
	OpTexDp3Tex    Opcode = 83
	OpTexM3x2Depth Opcode = 84
	OpTexDp3       Opcode = 85
	OpTexM3x3      Opcode = 86
	OpTexDepth     Opcode = 87
	OpCmp          Opcode = 88
	OpBem          Opcode = 89
	OpDp2Add       Opcode = 90
	OpDsx          Opcode = 91
	OpDsy          Opcode = 92
	OpTexLdd       Opcode = 93
	OpSetP         Opcode = 94
	OpTexLdl       Opcode = 95
	OpBreakP       Opcode = 96
	OpPhase        Opcode = 0xFFFD
	OpComment      Opcode = 0xFFFE
	OpEnd          Opcode = 0xFFFF
)

// Preshader-only operations.
const (
	OpNeg Opcode = 0x10000 + iota
	OpSin
	OpCos
	OpAsin
	OpAcos
	OpAtan
	OpAtan2
	OpLt
	OpGe
	OpDiv
	OpMovC
	OpDot
	OpNoise
	OpMinScalar
	OpMaxScalar
	OpLtScalar
	OpGeScalar
	OpAddScalar
	OpMulScalar
	OpAtan2Scalar
	OpDivScalar
	OpDotScalar
	OpNoiseScalar
	OpUnknown
)

type opcodeInfo struct {
	name   string
	noDest bool
}

var opcodeTable = map[Opcode]opcodeInfo{
	OpNop:          {"nop", true},
	OpMov:          {"mov", false},
	OpAdd:          {"add", false},
	OpSub:          {"sub", false},
	OpMad:          {"mad", false},
	OpMul:          {"mul", false},
	OpRcp:          {"rcp", false},
	OpRsq:          {"rsq", false},
	OpDp3:          {"dp3", false},
	OpDp4:          {"dp4", false},
	OpMin:          {"min", false},
	OpMax:          {"max", false},
	OpSlt:          {"slt", false},
	OpSge:          {"sge", false},
	OpExp:          {"exp", false},
	OpLog:          {"log", false},
	OpLit:          {"lit", false},
	OpDst:          {"dst", false},
	OpLrp:          {"lrp", false},
	OpFrc:          {"frc", false},
	OpM4x4:         {"m4x4", false},
	OpM4x3:         {"m4x3", false},
	OpM3x4:         {"m3x4", false},
	OpM3x3:         {"m3x3", false},
	OpM3x2:         {"m3x2", false},
	OpCall:         {"call", true},
	OpCallNz:       {"callnz", true},
	OpLoop:         {"loop", true},
	OpRet:          {"ret", true},
	OpEndLoop:      {"endloop", true},
	OpLabel:        {"label", true},
	OpDcl:          {"dcl", false},
	OpPow:          {"pow", false},
	OpCrs:          {"crs", false},
	OpSgn:          {"sgn", false},
	OpAbs:          {"abs", false},
	OpNrm:          {"nrm", false},
	OpSinCos:       {"sincos", false},
	OpRep:          {"rep", true},
	OpEndRep:       {"endrep", true},
	OpIf:           {"if", true},
	OpIfC:          {"ifc", true},
	OpElse:         {"else", true},
	OpEndIf:        {"endif", true},
	OpBreak:        {"break", true},
	OpBreakC:       {"breakc", true},
	OpMova:         {"mova", false},
	OpDefB:         {"defb", false},
	OpDefI:         {"defi", false},
	OpTexCoord:     {"texcoord", false},
	OpTexKill:      {"texkill", false},
	OpTex:          {"texld", false},
	OpTexBem:       {"texbem", false},
	OpTexBemL:      {"texbeml", false},
	OpTexReg2AR:    {"texreg2ar", false},
	OpTexReg2GB:    {"texreg2gb", false},
	OpTexM3x2Pad:   {"texm3x2pad", false},
	OpTexM3x2Tex:   {"texm3x2tex", false},
	OpTexM3x3Pad:   {"texm3x3pad", false},
	OpTexM3x3Tex:   {"texm3x3tex", false},
	OpTexM3x3Spec:  {"texm3x3spec", false},
	OpTexM3x3VSpec: {"texm3x3vspec", false},
	OpExpP:         {"expp", false},
	OpLogP:         {"logp", false},
	OpCnd:          {"cnd", false},
	OpDef:          {"def", false},
	OpTexReg2RGB:   {"texreg2rgb", false},
	OpTexDp3Tex:    {"texdp3tex", false},
	OpTexM3x2Depth: {"texm3x2depth", false},
	OpTexDp3:       {"texdp3", false},
	OpTexM3x3:      {"texm3x3", false},
	OpTexDepth:     {"texdepth", false},
	OpCmp:          {"cmp", false},
	OpBem:          {"bem", false},
	OpDp2Add:       {"dp2add", false},
	OpDsx:          {"dsx", false},
	OpDsy:          {"dsy", false},
	OpTexLdd:       {"texldd", false},
	OpSetP:         {"setp", false},
	OpTexLdl:       {"texldl", false},
	OpBreakP:       {"breakp", true},
	OpPhase:        {"phase", true},
	OpComment:      {"comment", true},
	OpEnd:          {"end", true},

	OpNeg:         {"neg", false},
	OpSin:         {"sin", false},
	OpCos:         {"cos", false},
	OpAsin:        {"asin", false},
	OpAcos:        {"acos", false},
	OpAtan:        {"atan", false},
	OpAtan2:       {"atan2", false},
	OpLt:          {"lt", false},
	OpGe:          {"ge", false},
	OpDiv:         {"div", false},
	OpMovC:        {"movc", false},
	OpDot:         {"dot", false},
	OpNoise:       {"noise", false},
	OpMinScalar:   {"minscalar", false},
	OpMaxScalar:   {"maxscalar", false},
	OpLtScalar:    {"ltscalar", false},
	OpGeScalar:    {"gescalar", false},
	OpAddScalar:   {"addscalar", false},
	OpMulScalar:   {"mulscalar", false},
	OpAtan2Scalar: {"atan2scalar", false},
	OpDivScalar:   {"divscalar", false},
	OpDotScalar:   {"dotscalar", false},
	OpNoiseScalar: {"noisescalar", false},
	OpUnknown:     {"unknown", false},
}

// String returns the lowercase mnemonic.
func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("op(0x%x)", uint32(op))
}

// HasDest reports whether the instruction encodes a destination operand.
// Flow-control instructions do not.
func (op Opcode) HasDest() bool {
	info, ok := opcodeTable[op]
	return ok && !info.noDest
}

// Known reports whether op is a recognized opcode.
func (op Opcode) Known() bool {
	_, ok := opcodeTable[op]
	return ok
}

// preshaderOpcodes maps preshader op family codes (bits 16..31 of an FXLC
// op token) to opcodes.
var preshaderOpcodes = map[uint32]Opcode{
	0x1000: OpMov,
	0x1010: OpNeg,
	0x1030: OpRcp,
	0x1040: OpFrc,
	0x1050: OpExp,
	0x1060: OpLog,
	0x1070: OpRsq,
	0x1080: OpSin,
	0x1090: OpCos,
	0x10A0: OpAsin,
	0x10B0: OpAcos,
	0x10C0: OpAtan,
	0x2000: OpMin,
	0x2010: OpMax,
	0x2020: OpLt,
	0x2030: OpGe,
	0x2040: OpAdd,
	0x2050: OpMul,
	0x2060: OpAtan2,
	0x2080: OpDiv,
	0x3000: OpCmp,
	0x3010: OpMovC,
	0x5000: OpDot,
	0x5020: OpNoise,
	0xA000: OpMinScalar,
	0xA010: OpMaxScalar,
	0xA020: OpLtScalar,
	0xA030: OpGeScalar,
	0xA040: OpAddScalar,
	0xA050: OpMulScalar,
	0xA060: OpAtan2Scalar,
	0xA080: OpDivScalar,
	0xD000: OpDotScalar,
	0xD020: OpNoiseScalar,
}

// PreshaderOpcode maps a preshader op family code to an opcode, returning
// OpUnknown for unrecognized codes.
func PreshaderOpcode(family uint32) Opcode {
	if op, ok := preshaderOpcodes[family]; ok {
		return op
	}
	return OpUnknown
}
