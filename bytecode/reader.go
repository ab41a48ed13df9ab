package bytecode

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"
)

// Embedded comment block signatures, as little-endian words.
const (
	fourCCCTAB = 0x42415443 // "CTAB"
	fourCCPRES = 0x53455250 // "PRES"
	fourCCCLIT = 0x54494C43 // "CLIT"
	fourCCFXLC = 0x434C5846 // "FXLC"
	fourCCPRSI = 0x49535250 // "PRSI"
)

// ctabHeaderSize is the expected size field of a constant table header.
const ctabHeaderSize = 28

// ReadOptions configures decoding.
type ReadOptions struct {
	// Logger receives decoding warnings. Nil discards them.
	Logger *zap.Logger
}

// Read decodes a shader blob. opts may be nil.
func Read(data []byte, opts *ReadOptions) (*Shader, error) {
	log := zap.NewNop()
	if opts != nil && opts.Logger != nil {
		log = opts.Logger
	}

	r := &reader{data: data, log: log}
	s := &Shader{Types: make(map[uint32]*TypeInfo)}
	r.warnings = &s.Warnings

	tok, err := r.token()
	if err != nil {
		return nil, err
	}
	s.Version = ParseVersion(tok)
	if s.Version.Kind != KindPixel && s.Version.Kind != KindVertex {
		return nil, NewError(ErrUnknownShaderKind, 0, "version token 0x%08x", uint32(tok))
	}

	if err := r.readInstructions(s, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// reader walks a little-endian word stream. Offsets in errors are
// relative to the start of the outermost blob.
type reader struct {
	data     []byte
	pos      int
	base     int
	log      *zap.Logger
	warnings *[]string
}

// sub returns a reader over data[start:end] of r.
func (r *reader) sub(start, end int) *reader {
	return &reader{
		data:     r.data[start:end],
		base:     r.base + start,
		log:      r.log,
		warnings: r.warnings,
	}
}

func (r *reader) offset() int {
	return r.base + r.pos
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) need(n int, what string) error {
	if r.remaining() < n {
		return NewError(ErrTruncated, r.offset(), "need %d bytes for %s, have %d", n, what, r.remaining())
	}
	return nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4, "word"); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) token() (Token, error) {
	v, err := r.u32()
	return Token(v), err
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	return math.Float32frombits(v), err
}

func (r *reader) f64() (float64, error) {
	if err := r.need(8, "double"); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return math.Float64frombits(v), nil
}

func (r *reader) warn(msg string, fields ...zap.Field) {
	r.log.Warn(msg, fields...)
	if r.warnings != nil {
		*r.warnings = append(*r.warnings, msg)
	}
}

// readInstructions runs the instruction loop until an end token. pre is
// non-nil while decoding the body of a preshader.
func (r *reader) readInstructions(s *Shader, pre *Preshader) error {
	for {
		start := r.offset()
		tok, err := r.token()
		if err != nil {
			return err
		}
		op := Opcode(tok.Bits(0, 15))

		switch op {
		case OpEnd:
			return nil
		case OpComment:
			if err := r.readComment(tok, s, pre); err != nil {
				return err
			}
			continue
		}

		in, err := r.readInstruction(op, tok, s.Version)
		if err != nil {
			if e, ok := err.(*Error); ok && e.Kind == ErrUnsupportedOpcode {
				e.Offset = start
			}
			return err
		}
		s.Instructions = append(s.Instructions, in)
	}
}

// readComment consumes a comment instruction, parsing known embedded
// blocks in place. The stream always advances by the declared length.
func (r *reader) readComment(tok Token, s *Shader, pre *Preshader) error {
	size := int(tok.Bits(16, 30)) * 4
	if err := r.need(size, "comment"); err != nil {
		return err
	}
	start := r.pos
	r.pos += size

	body := r.sub(start, start+size)
	if size >= 4 {
		sig, _ := body.u32()
		block := body.sub(4, size)
		handled := true
		var err error
		switch {
		case sig == fourCCCTAB && pre == nil:
			err = block.readConstantTable(s)
		case sig == fourCCCTAB:
			err = block.readConstantTable(&pre.Shader)
		case sig == fourCCPRES && pre == nil:
			s.Preshader, err = block.readPreshader()
		case sig == fourCCCLIT && pre != nil:
			pre.Literals, err = block.readLiterals()
		case sig == fourCCFXLC && pre != nil:
			err = block.readPreshaderCode(pre)
		case sig == fourCCPRSI && pre != nil:
		default:
			handled = false
		}
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	comment := make([]byte, size)
	copy(comment, r.data[start:start+size])
	s.Instructions = append(s.Instructions, Instruction{
		Op:      OpComment,
		Length:  uint32(size / 4),
		Comment: comment,
	})
	return nil
}

// operandCount returns the number of operand tokens following an
// instruction token. Shader model 1 does not encode the length, so the
// parameter tokens (bit 31 set) are counted instead.
func (r *reader) operandCount(tok Token, v Version) int {
	if v.Major >= 2 {
		return int(tok.Bits(24, 27))
	}
	n := 0
	for off := r.pos; off+4 <= len(r.data); off += 4 {
		if !Token(binary.LittleEndian.Uint32(r.data[off:])).Bit(31) {
			break
		}
		n++
	}
	return n
}

func (r *reader) readDest(v Version) (*DestParam, error) {
	tok, err := r.token()
	if err != nil {
		return nil, err
	}
	d := DecodeDest(tok, v)
	return &d, nil
}

func (r *reader) readInstruction(op Opcode, tok Token, v Version) (Instruction, error) {
	in := Instruction{Op: op}
	length := r.operandCount(tok, v)
	in.Length = uint32(length)

	var err error
	switch op {
	case OpCall, OpCallNz:
		return in, NewError(ErrUnsupportedOpcode, r.offset(), "%s: label parameters are not supported", op)

	case OpDef:
		if in.Dest, err = r.readDest(v); err != nil {
			return in, err
		}
		var imm [4]float32
		for i := range imm {
			if imm[i], err = r.f32(); err != nil {
				return in, err
			}
		}
		in.Immediate = &imm

	case OpDefI:
		if in.Dest, err = r.readDest(v); err != nil {
			return in, err
		}
		var imm [4]float32
		for i := range imm {
			w, err := r.u32()
			if err != nil {
				return in, err
			}
			imm[i] = float32(int32(w))
		}
		in.Immediate = &imm

	case OpDefB:
		if in.Dest, err = r.readDest(v); err != nil {
			return in, err
		}
		w, err := r.u32()
		if err != nil {
			return in, err
		}
		var imm [4]float32
		if w != 0 {
			imm[0] = 1
		}
		in.Immediate = &imm

	case OpDcl:
		extra, err := r.u32()
		if err != nil {
			return in, err
		}
		in.Extra = &extra
		if in.Dest, err = r.readDest(v); err != nil {
			return in, err
		}

	default:
		remaining := length
		if op.HasDest() && remaining > 0 {
			if in.Dest, err = r.readDest(v); err != nil {
				return in, err
			}
			remaining--
		}
		for remaining > 0 {
			src, err := r.token()
			if err != nil {
				return in, err
			}
			remaining--
			p := DecodeSource(src, v)
			if p.Relative && v.Major >= 2 && remaining > 0 {
				addr, err := r.token()
				if err != nil {
					return in, err
				}
				remaining--
				a := DecodeSource(addr, v)
				p.Address = &a
			}
			in.Sources = append(in.Sources, &p)
		}
	}
	return in, nil
}

// readLiterals decodes a CLIT block.
func (r *reader) readLiterals() ([]float64, error) {
	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(count)*8, "literal table"); err != nil {
		return nil, err
	}
	lits := make([]float64, count)
	for i := range lits {
		if lits[i], err = r.f64(); err != nil {
			return nil, err
		}
	}
	return lits, nil
}
