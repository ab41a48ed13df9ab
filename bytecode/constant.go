package bytecode

import (
	"fmt"
	"strings"
)

// RegisterSet is the register file a constant is bound to.
type RegisterSet uint16

const (
	RegisterSetBool RegisterSet = iota
	RegisterSetInt4
	RegisterSetFloat4
	RegisterSetSampler
)

// String returns the register set name.
func (r RegisterSet) String() string {
	switch r {
	case RegisterSetBool:
		return "Bool"
	case RegisterSetInt4:
		return "Int4"
	case RegisterSetFloat4:
		return "Float4"
	case RegisterSetSampler:
		return "Sampler"
	default:
		return fmt.Sprintf("RegisterSet(%d)", uint16(r))
	}
}

// Prefix returns the HLSL register binding letter ("b", "i", "c", "s").
func (r RegisterSet) Prefix() string {
	switch r {
	case RegisterSetBool:
		return "b"
	case RegisterSetInt4:
		return "i"
	case RegisterSetSampler:
		return "s"
	default:
		return "c"
	}
}

// RegisterType returns the shader register type the set binds to.
func (r RegisterSet) RegisterType() RegisterType {
	switch r {
	case RegisterSetBool:
		return RegisterConstBool
	case RegisterSetInt4:
		return RegisterConstInt
	case RegisterSetSampler:
		return RegisterSampler
	default:
		return RegisterConst
	}
}

// Constant is a constant table entry.
type Constant struct {
	Name          string
	RegisterSet   RegisterSet
	RegisterIndex uint32
	RegisterCount uint32
	Type          *TypeInfo

	// DefaultValue is the flattened default value, nil when absent.
	DefaultValue []float32
}

// Covers reports whether the constant occupies register index of its set.
func (c *Constant) Covers(index uint32) bool {
	return index >= c.RegisterIndex && index < c.RegisterIndex+max(c.RegisterCount, 1)
}

// ObjectClass is the structural class of a type descriptor.
type ObjectClass uint16

const (
	ClassScalar ObjectClass = iota
	ClassVector
	ClassMatrixRows
	ClassMatrixColumns
	ClassObject
	ClassStruct
)

// ObjectType is the element type of a type descriptor.
type ObjectType uint16

const (
	TypeVoid ObjectType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeTexture
	TypeTexture1D
	TypeTexture2D
	TypeTexture3D
	TypeTextureCube
	TypeSampler
	TypeSampler1D
	TypeSampler2D
	TypeSampler3D
	TypeSamplerCube
	TypePixelShader
	TypeVertexShader
	TypePixelFragment
	TypeVertexFragment
	TypeUnsupported
)

var objectTypeNames = [...]string{
	TypeVoid:           "void",
	TypeBool:           "bool",
	TypeInt:            "int",
	TypeFloat:          "float",
	TypeString:         "string",
	TypeTexture:        "texture",
	TypeTexture1D:      "texture1D",
	TypeTexture2D:      "texture2D",
	TypeTexture3D:      "texture3D",
	TypeTextureCube:    "textureCUBE",
	TypeSampler:        "sampler",
	TypeSampler1D:      "sampler1D",
	TypeSampler2D:      "sampler2D",
	TypeSampler3D:      "sampler3D",
	TypeSamplerCube:    "samplerCUBE",
	TypePixelShader:    "pixelshader",
	TypeVertexShader:   "vertexshader",
	TypePixelFragment:  "pixelfragment",
	TypeVertexFragment: "vertexfragment",
	TypeUnsupported:    "unsupported",
}

// String returns the HLSL spelling of the type.
func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint16(t))
}

// TypeInfo is a structured type descriptor from the constant table.
type TypeInfo struct {
	Class    ObjectClass
	Type     ObjectType
	Rows     uint16
	Columns  uint16
	Elements uint16
	Members  []Member
}

// Member is a struct field.
type Member struct {
	Name string
	Type *TypeInfo
}

func (t *TypeInfo) elementCount() int {
	return max(1, int(t.Elements))
}

// elementPackedSize is the number of floats one element occupies in a
// default value blob.
func (t *TypeInfo) elementPackedSize() int {
	switch t.Class {
	case ClassMatrixRows:
		return 4 * int(t.Rows)
	case ClassMatrixColumns:
		return 4 * int(t.Columns)
	case ClassStruct:
		n := 0
		for _, m := range t.Members {
			n += max(4, m.Type.PackedSize())
		}
		return n
	case ClassScalar:
		return 1
	case ClassVector:
		return int(t.Columns)
	default:
		return 0
	}
}

// elementSize is the number of values in one flattened element.
func (t *TypeInfo) elementSize() int {
	switch t.Class {
	case ClassMatrixRows, ClassMatrixColumns:
		return int(t.Rows) * int(t.Columns)
	case ClassStruct:
		n := 0
		for _, m := range t.Members {
			n += m.Type.Size()
		}
		return n
	case ClassScalar:
		return 1
	case ClassVector:
		return int(t.Columns)
	default:
		return 0
	}
}

func (t *TypeInfo) elementStride() int {
	return (t.elementPackedSize() + 3) &^ 3
}

// PackedSize returns the number of floats the type occupies in a default
// value blob. Array elements start on register boundaries.
func (t *TypeInfo) PackedSize() int {
	n := t.elementCount()
	if n == 1 {
		return t.elementPackedSize()
	}
	return t.elementStride()*(n-1) + t.elementPackedSize()
}

// Size returns the number of values of the flattened type.
func (t *TypeInfo) Size() int {
	return t.elementSize() * t.elementCount()
}

// FlatIndex maps a position in the packed default value blob to an index
// in the flattened value array. It returns -1 for padding positions.
func (t *TypeInfo) FlatIndex(pos int) int {
	if pos < 0 {
		return -1
	}
	n := t.elementCount()
	if n == 1 {
		return t.elementFlatIndex(pos)
	}
	stride := t.elementStride()
	if stride == 0 {
		return -1
	}
	e := pos / stride
	if e >= n {
		return -1
	}
	inner := t.elementFlatIndex(pos % stride)
	if inner < 0 {
		return -1
	}
	return e*t.elementSize() + inner
}

func (t *TypeInfo) elementFlatIndex(pos int) int {
	rows, cols := int(t.Rows), int(t.Columns)
	switch t.Class {
	case ClassScalar:
		if pos == 0 {
			return 0
		}
	case ClassVector:
		if pos < cols {
			return pos
		}
	case ClassMatrixRows:
		row, col := pos/4, pos%4
		if row < rows && col < cols {
			return row*cols + col
		}
	case ClassMatrixColumns:
		col, row := pos/4, pos%4
		if row < rows && col < cols {
			return row*cols + col
		}
	case ClassStruct:
		offset, flat := 0, 0
		for _, m := range t.Members {
			packed := max(4, m.Type.PackedSize())
			if pos < offset+packed {
				inner := m.Type.FlatIndex(pos - offset)
				if inner < 0 {
					return -1
				}
				return flat + inner
			}
			offset += packed
			flat += m.Type.Size()
		}
	}
	return -1
}

// BaseString returns the HLSL type without the array suffix.
func (t *TypeInfo) BaseString() string {
	switch t.Class {
	case ClassScalar:
		return t.Type.String()
	case ClassVector:
		return fmt.Sprintf("%s%d", t.Type, t.Columns)
	case ClassMatrixRows:
		return fmt.Sprintf("row_major %s%dx%d", t.Type, t.Rows, t.Columns)
	case ClassMatrixColumns:
		return fmt.Sprintf("%s%dx%d", t.Type, t.Rows, t.Columns)
	case ClassStruct:
		var sb strings.Builder
		sb.WriteString("struct {")
		for _, m := range t.Members {
			fmt.Fprintf(&sb, " %s %s", m.Type.BaseString(), m.Name)
			if m.Type.Elements > 1 {
				fmt.Fprintf(&sb, "[%d]", m.Type.Elements)
			}
			sb.WriteByte(';')
		}
		sb.WriteString(" }")
		return sb.String()
	default:
		return t.Type.String()
	}
}

// String returns the HLSL type, with an "[N]" suffix for arrays.
func (t *TypeInfo) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Elements > 1 {
		return fmt.Sprintf("%s[%d]", t.BaseString(), t.Elements)
	}
	return t.BaseString()
}
