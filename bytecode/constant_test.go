package bytecode

import "testing"

func TestTypeInfoSizes(t *testing.T) {
	scalar := &TypeInfo{Class: ClassScalar, Type: TypeFloat, Rows: 1, Columns: 1, Elements: 1}
	float3 := &TypeInfo{Class: ClassVector, Type: TypeFloat, Rows: 1, Columns: 3, Elements: 1}
	tests := []struct {
		name   string
		typ    *TypeInfo
		packed int
		size   int
		str    string
	}{
		{"scalar", scalar, 1, 1, "float"},
		{"vector", float3, 3, 3, "float3"},
		{"matrix columns", &TypeInfo{Class: ClassMatrixColumns, Type: TypeFloat, Rows: 4, Columns: 3, Elements: 1}, 12, 12, "float4x3"},
		{"scalar array", &TypeInfo{Class: ClassScalar, Type: TypeFloat, Rows: 1, Columns: 1, Elements: 3}, 9, 3, "float[3]"},
		{"vector array", &TypeInfo{Class: ClassVector, Type: TypeInt, Rows: 1, Columns: 2, Elements: 2}, 6, 4, "int2[2]"},
		{"object", &TypeInfo{Class: ClassObject, Type: TypeTexture2D, Elements: 1}, 0, 0, "texture2D"},
		{"struct", &TypeInfo{Class: ClassStruct, Members: []Member{{"a", scalar}, {"b", float3}}}, 8, 4, "struct { float a; float3 b; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.PackedSize(); got != tt.packed {
				t.Errorf("PackedSize() = %d, want %d", got, tt.packed)
			}
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.typ.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestTypeInfoFlatIndex(t *testing.T) {
	cols := &TypeInfo{Class: ClassMatrixColumns, Type: TypeFloat, Rows: 2, Columns: 2, Elements: 1}
	// Column major: register k holds column k.
	tests := []struct {
		pos  int
		want int
	}{
		{0, 0}, // row 0 col 0
		{1, 2}, // row 1 col 0
		{2, -1},
		{4, 1}, // row 0 col 1
		{5, 3}, // row 1 col 1
		{8, -1},
	}
	for _, tt := range tests {
		if got := cols.FlatIndex(tt.pos); got != tt.want {
			t.Errorf("FlatIndex(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	arr := &TypeInfo{Class: ClassScalar, Type: TypeFloat, Rows: 1, Columns: 1, Elements: 3}
	for pos, want := range map[int]int{0: 0, 1: -1, 4: 1, 8: 2, 12: -1, -1: -1} {
		if got := arr.FlatIndex(pos); got != want {
			t.Errorf("array FlatIndex(%d) = %d, want %d", pos, got, want)
		}
	}
}
