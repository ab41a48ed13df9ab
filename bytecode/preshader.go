package bytecode

// Preshader operand type tags.
const (
	operandLiteral = 1
	operandInput   = 2
	operandConst   = 4
	operandTemp    = 7
)

// readPreshader decodes a PRES block: a version word followed by an
// instruction stream whose comments carry the preshader tables.
func (r *reader) readPreshader() (*Preshader, error) {
	tok, err := r.token()
	if err != nil {
		return nil, err
	}
	p := &Preshader{}
	p.Version = ParseVersion(tok)
	p.Types = make(map[uint32]*TypeInfo)
	if err := r.readInstructions(&p.Shader, p); err != nil {
		return nil, err
	}
	return p, nil
}

// readPreshaderCode decodes an FXLC block into p.Instructions.
func (r *reader) readPreshaderCode(p *Preshader) error {
	count, err := r.u32()
	if err != nil {
		return err
	}
	for range count {
		in, err := r.readPreshaderInstruction()
		if err != nil {
			return err
		}
		p.Instructions = append(p.Instructions, in)
	}
	return nil
}

func (r *reader) readPreshaderInstruction() (Instruction, error) {
	tok, err := r.token()
	if err != nil {
		return Instruction{}, err
	}
	sources, err := r.u32()
	if err != nil {
		return Instruction{}, err
	}
	in := Instruction{
		Op:     PreshaderOpcode(tok.Bits(16, 31)),
		Length: sources + 1,
	}

	for i := uint32(0); i <= sources; i++ {
		regType, index, comp, err := r.readPreshaderOperand()
		if err != nil {
			return in, err
		}
		if i == sources {
			in.Dest = &DestParam{Type: regType, Index: index, Mask: MaskOf(comp)}
			break
		}
		in.Sources = append(in.Sources, &SourceParam{
			Type:    regType,
			Index:   index,
			Swizzle: Replicate(comp),
		})
	}
	return in, nil
}

func (r *reader) readPreshaderOperand() (RegisterType, uint32, Component, error) {
	start := r.offset()
	arrayCount, err := r.u32()
	if err != nil {
		return 0, 0, 0, err
	}
	kind, err := r.u32()
	if err != nil {
		return 0, 0, 0, err
	}
	item, err := r.u32()
	if err != nil {
		return 0, 0, 0, err
	}

	var regType RegisterType
	switch kind {
	case operandLiteral:
		return RegisterPreshaderLiteral, item, X, nil
	case operandInput:
		regType = RegisterPreshaderInput
		// Relative indices: pairs of (operand type, item).
		if err := r.need(int(arrayCount)*8, "preshader operand indices"); err != nil {
			return 0, 0, 0, err
		}
		r.pos += int(arrayCount) * 8
	case operandConst:
		regType = RegisterConst
	case operandTemp:
		regType = RegisterPreshaderTemp
	default:
		return 0, 0, 0, NewError(ErrMalformed, start, "unknown preshader operand type %d", kind)
	}
	return regType, item / 4, Component(item % 4), nil
}
