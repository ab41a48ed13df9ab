package bytecode

import (
	"cmp"
	"encoding/binary"
	"slices"

	"go.uber.org/zap"
)

// constantRecordSize is the size of one constant info record.
const constantRecordSize = 20

// readConstantTable decodes a CTAB block into s. Offsets inside the block
// are relative to its first byte.
func (r *reader) readConstantTable(s *Shader) error {
	size, err := r.u32()
	if err != nil {
		return err
	}
	if size != ctabHeaderSize {
		r.warn("constant table size mismatch", zap.Uint32("size", size))
	}
	creator, err := r.u32()
	if err != nil {
		return err
	}
	version, err := r.u32()
	if err != nil {
		return err
	}
	count, err := r.u32()
	if err != nil {
		return err
	}
	info, err := r.u32()
	if err != nil {
		return err
	}
	if _, err := r.u32(); err != nil { // flags
		return err
	}
	target, err := r.u32()
	if err != nil {
		return err
	}

	if Token(version) != s.Version.Token() {
		r.warn("constant table version mismatch",
			zap.String("table", ParseVersion(Token(version)).Profile()),
			zap.String("shader", s.Version.Profile()))
	}
	s.Creator = r.stringAt(creator)
	s.Target = r.stringAt(target)
	if s.Types == nil {
		s.Types = make(map[uint32]*TypeInfo)
	}

	for i := range count {
		rec := r.at(int(info) + int(i)*constantRecordSize)
		c, err := rec.readConstant(s)
		if err != nil {
			return err
		}
		s.Constants = append(s.Constants, c)
	}
	slices.SortStableFunc(s.Constants, func(a, b *Constant) int {
		return cmp.Compare(a.RegisterIndex, b.RegisterIndex)
	})
	return nil
}

// at returns a reader over the same block positioned at off.
func (r *reader) at(off int) *reader {
	c := *r
	c.pos = off
	if off < 0 || off > len(r.data) {
		c.pos = len(r.data)
	}
	return &c
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2, "half word"); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// stringAt returns the NUL-terminated string at off, or "" when off lies
// outside the block.
func (r *reader) stringAt(off uint32) string {
	if int(off) >= len(r.data) {
		return ""
	}
	end := int(off)
	for end < len(r.data) && r.data[end] != 0 {
		end++
	}
	return string(r.data[off:end])
}

func (r *reader) readConstant(s *Shader) (*Constant, error) {
	name, err := r.u32()
	if err != nil {
		return nil, err
	}
	set, err := r.u16()
	if err != nil {
		return nil, err
	}
	index, err := r.u16()
	if err != nil {
		return nil, err
	}
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	if _, err := r.u16(); err != nil { // reserved
		return nil, err
	}
	typeOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	defOff, err := r.u32()
	if err != nil {
		return nil, err
	}

	c := &Constant{
		Name:          r.stringAt(name),
		RegisterSet:   RegisterSet(set),
		RegisterIndex: uint32(index),
		RegisterCount: uint32(count),
	}
	if c.Type, err = r.typeAt(s, typeOff); err != nil {
		return nil, err
	}
	if defOff != 0 {
		if c.DefaultValue, err = r.at(int(defOff)).readDefaultValue(c.Type); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// typeAt decodes the type descriptor at off, reusing s.Types.
func (r *reader) typeAt(s *Shader, off uint32) (*TypeInfo, error) {
	if t, ok := s.Types[off]; ok {
		return t, nil
	}
	tr := r.at(int(off))
	var fields [6]uint16
	for i := range fields {
		v, err := tr.u16()
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	membersOff, err := tr.u32()
	if err != nil {
		return nil, err
	}
	t := &TypeInfo{
		Class:    ObjectClass(fields[0]),
		Type:     ObjectType(fields[1]),
		Rows:     fields[2],
		Columns:  fields[3],
		Elements: fields[4],
	}
	// Cache before resolving members so self-referencing offsets terminate.
	s.Types[off] = t

	memberCount := int(fields[5])
	if memberCount > 0 {
		mr := r.at(int(membersOff))
		t.Members = make([]Member, memberCount)
		for i := range t.Members {
			nameOff, err := mr.u32()
			if err != nil {
				return nil, err
			}
			typeOff, err := mr.u32()
			if err != nil {
				return nil, err
			}
			mt, err := r.typeAt(s, typeOff)
			if err != nil {
				return nil, err
			}
			t.Members[i] = Member{Name: r.stringAt(nameOff), Type: mt}
		}
	}
	return t, nil
}

// readDefaultValue reads the packed default value of t and flattens it.
func (r *reader) readDefaultValue(t *TypeInfo) ([]float32, error) {
	packed := t.PackedSize()
	values := make([]float32, t.Size())
	for pos := range packed {
		f, err := r.f32()
		if err != nil {
			return nil, err
		}
		if i := t.FlatIndex(pos); i >= 0 && i < len(values) {
			values[i] = f
		}
	}
	return values, nil
}
