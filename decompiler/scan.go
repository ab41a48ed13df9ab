package decompiler

import (
	"cmp"
	"slices"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/ir"
)

// Argument is an input or output of the shader entry point.
type Argument struct {
	Register   ir.RegisterKey
	Usage      Usage
	UsageIndex uint32

	// Size is the declared channel count.
	Size int

	Input  bool
	Output bool
}

// Access records that a register was read or written.
type Access struct {
	Register    ir.RegisterKey
	Destination bool
}

// ScanResult holds the shader-level facts inferred from the
// instructions. Sizes are refreshed while simplifying.
type ScanResult struct {
	// Arguments in discovery order.
	Arguments []*Argument

	// Accesses holds every register slot ever read or written.
	Accesses map[Access]struct{}

	// Sizes maps a register to the highest channel count observed.
	Sizes map[ir.RegisterKey]int

	// DeclaredConstants holds the float constant registers named by the
	// constant table.
	DeclaredConstants map[uint32]struct{}
}

func newScanResult() *ScanResult {
	return &ScanResult{
		Accesses:          make(map[Access]struct{}),
		Sizes:             make(map[ir.RegisterKey]int),
		DeclaredConstants: make(map[uint32]struct{}),
	}
}

// Argument returns the argument bound to key, or nil.
func (r *ScanResult) Argument(key ir.RegisterKey) *Argument {
	for _, a := range r.Arguments {
		if a.Register == key {
			return a
		}
	}
	return nil
}

// argument returns the argument bound to key, creating an Unknown one.
func (r *ScanResult) argument(key ir.RegisterKey) *Argument {
	if a := r.Argument(key); a != nil {
		return a
	}
	unknown := 0
	for _, a := range r.Arguments {
		if a.Usage == UsageUnknown {
			unknown++
		}
	}
	a := &Argument{
		Register:   key,
		Usage:      UsageUnknown,
		UsageIndex: uint32(unknown),
		Size:       1,
	}
	r.Arguments = append(r.Arguments, a)
	return a
}

// Size returns the channel count of key, or 0 when never referenced.
func (r *ScanResult) Size(key ir.RegisterKey) int {
	return r.Sizes[key]
}

func (r *ScanResult) updateSize(key ir.RegisterKey, size int) {
	if size > r.Sizes[key] {
		r.Sizes[key] = size
	}
}

// Accessed reports whether key was read, or written when dest is set.
func (r *ScanResult) Accessed(key ir.RegisterKey, dest bool) bool {
	_, ok := r.Accesses[Access{Register: key, Destination: dest}]
	return ok
}

// IsDeclaredConstant reports whether key is a constant table register.
func (r *ScanResult) IsDeclaredConstant(key ir.RegisterKey) bool {
	if key.Type != bytecode.RegisterConst {
		return false
	}
	_, ok := r.DeclaredConstants[key.Index]
	return ok
}

// Group returns the arguments sharing the usage and usage index of a.
func (r *ScanResult) Group(a *Argument) []*Argument {
	var out []*Argument
	for _, b := range r.Arguments {
		if b.Usage == a.Usage && b.UsageIndex == a.UsageIndex {
			out = append(out, b)
		}
	}
	return out
}

// Registers returns every accessed register in type and index order.
func (r *ScanResult) Registers() []ir.RegisterKey {
	seen := make(map[ir.RegisterKey]struct{}, len(r.Accesses))
	var out []ir.RegisterKey
	for acc := range r.Accesses {
		if _, ok := seen[acc.Register]; ok {
			continue
		}
		seen[acc.Register] = struct{}{}
		out = append(out, acc.Register)
	}
	slices.SortFunc(out, func(a, b ir.RegisterKey) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// RecomputeSizes replaces the size map with the widths referenced by
// the live statements.
func (r *ScanResult) RecomputeSizes(stmts []ir.Expression) {
	clear(r.Sizes)
	for _, e := range stmts {
		if e == nil {
			continue
		}
		ir.Walk(e, func(n ir.Expression) bool {
			reg, ok := n.(*ir.ExprRegister)
			if !ok {
				return true
			}
			if reg.Destination {
				r.updateSize(reg.Key(), reg.Slots.Width())
			} else {
				r.updateSize(reg.Key(), reg.UsageMask().Width())
			}
			return true
		})
	}
}

// Scan infers arguments, accesses and register widths from the
// preshader instructions followed by the main instructions.
func Scan(s *bytecode.Shader) *ScanResult {
	r := newScanResult()
	pixel := s.Version.Kind == bytecode.KindPixel

	for _, in := range instructions(s) {
		if in.Op == bytecode.OpDcl {
			r.scanDeclaration(&in, s.Version)
			continue
		}

		if in.Dest != nil {
			key := ir.RegisterKey{Type: in.Dest.Type, Index: in.Dest.Index}
			if in.Op == bytecode.OpTexKill {
				r.read(key, in.Dest.Mask.Width(), pixel)
				continue
			}
			r.Accesses[Access{Register: key, Destination: true}] = struct{}{}
			size := in.Dest.Mask.Width()
			if key.Type.IsOutput() {
				a := r.argument(key)
				a.Output = true
				a.Size = max(a.Size, size)
				implicitUsage(a)
			}
			r.updateSize(key, size)
		}

		for _, src := range in.Sources {
			if src == nil {
				continue
			}
			key := ir.RegisterKey{Type: src.Type, Index: src.Index}
			r.read(key, maxChannel(src.Swizzle)+1, pixel)
			if src.Address != nil {
				addr := ir.RegisterKey{Type: src.Address.Type, Index: src.Address.Index}
				r.read(addr, maxChannel(src.Address.Swizzle)+1, pixel)
			}
		}
	}

	for _, c := range s.Constants {
		if c.RegisterSet != bytecode.RegisterSetFloat4 {
			continue
		}
		for i := range c.RegisterCount {
			r.DeclaredConstants[c.RegisterIndex+i] = struct{}{}
		}
	}
	return r
}

func (r *ScanResult) read(key ir.RegisterKey, size int, pixel bool) {
	r.Accesses[Access{Register: key}] = struct{}{}
	switch {
	case key.Type == bytecode.RegisterInput:
		r.argument(key).Input = true
	case key.Type == bytecode.RegisterTexture && pixel:
		a := r.argument(key)
		a.Input = true
		implicitUsage(a)
	}
	r.updateSize(key, size)
}

func (r *ScanResult) scanDeclaration(in *bytecode.Instruction, v bytecode.Version) {
	if in.Dest == nil || in.Extra == nil {
		return
	}
	dcl := bytecode.Token(*in.Extra)
	key := ir.RegisterKey{Type: in.Dest.Type, Index: in.Dest.Index}
	size := in.Dest.Mask.Width()
	pixel := v.Kind == bytecode.KindPixel

	switch {
	case key.Type == bytecode.RegisterInput,
		key.Type == bytecode.RegisterTexture && v.AtLeast(bytecode.KindPixel, 3, 0):
		a := r.argument(key)
		a.Usage = Usage(dcl.Bits(0, 3))
		a.UsageIndex = dcl.Bits(16, 18)
		a.Size = size
		a.Input = true
		if pixel && a.Usage == UsagePosition {
			a.Usage = UsageColor
		}

	case key.Type == bytecode.RegisterOutput:
		a := r.argument(key)
		a.Usage = Usage(dcl.Bits(0, 3))
		a.UsageIndex = dcl.Bits(16, 18)
		a.Output = true

	case key.Type == bytecode.RegisterTexture:
		a := r.argument(key)
		a.Usage = UsageTexcoord
		a.UsageIndex = key.Index
		a.Size = size
		a.Input = true
	}
}

// implicitUsage binds registers whose role follows from their type.
func implicitUsage(a *Argument) {
	if a.Usage != UsageUnknown {
		return
	}
	idx := a.Register.Index
	switch a.Register.Type {
	case bytecode.RegisterColorout, bytecode.RegisterAttrout:
		a.Usage, a.UsageIndex = UsageColor, idx
	case bytecode.RegisterTexcrdout, bytecode.RegisterTexture:
		a.Usage, a.UsageIndex = UsageTexcoord, idx
	case bytecode.RegisterDepthout:
		a.Usage, a.UsageIndex = UsageDepth, 0
	case bytecode.RegisterRastout:
		switch idx {
		case 0:
			a.Usage, a.UsageIndex = UsagePosition, 0
		case 1:
			a.Usage, a.UsageIndex = UsageFog, 0
		case 2:
			a.Usage, a.UsageIndex = UsagePointSize, 0
		}
	}
}

func maxChannel(sw bytecode.Swizzle) int {
	m := 0
	for _, c := range sw {
		m = max(m, int(c))
	}
	return m
}

// instructions returns the preshader instructions followed by the main
// instructions.
func instructions(s *bytecode.Shader) []bytecode.Instruction {
	if s.Preshader == nil {
		return s.Instructions
	}
	out := make([]bytecode.Instruction, 0, len(s.Preshader.Instructions)+len(s.Instructions))
	out = append(out, s.Preshader.Instructions...)
	return append(out, s.Instructions...)
}
