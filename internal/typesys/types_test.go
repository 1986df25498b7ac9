package typesys

import "testing"

func TestIsGround(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want bool
	}{
		{"scalar", Scalar(Int32), true},
		{"fixed array", NewArray(Scalar(Double), 8), true},
		{"polymorphic array", NewArrayVar(Scalar(Double), "n"), false},
		{"nested ground array", NewArray(NewArray(Scalar(Bit), 4), 4), true},
		{"nested polymorphic array", NewArray(NewArrayVar(Scalar(Bit), "n"), 4), false},
		{"ground struct", NewStruct("point", Field{Name: "x", Type: Scalar(Int32)}, Field{Name: "y", Type: Scalar(Int32)}), true},
		{"struct with polymorphic field", NewStruct("buf", Field{Name: "data", Type: NewArrayVar(Scalar(Bit), "n")}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.IsGround(); got != tt.want {
				t.Errorf("IsGround() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeEqual(t *testing.T) {
	a := NewArray(Scalar(Int16), 4)
	b := NewArray(Scalar(Int16), 4)
	c := NewArray(Scalar(Int16), 8)
	d := NewArray(Scalar(Int32), 4)
	if !a.Equal(b) {
		t.Error("identical array types should be equal")
	}
	if a.Equal(c) {
		t.Error("array types with different lengths should not be equal")
	}
	if a.Equal(d) {
		t.Error("array types with different element types should not be equal")
	}

	s1 := NewStruct("pt", Field{Name: "x", Type: Scalar(Int32)})
	s2 := NewStruct("pt", Field{Name: "x", Type: Scalar(Int32)})
	s3 := NewStruct("pt", Field{Name: "x", Type: Scalar(Int64)})
	s4 := NewStruct("other", Field{Name: "x", Type: Scalar(Int32)})
	if !s1.Equal(s2) {
		t.Error("identical struct types should be equal")
	}
	if s1.Equal(s3) {
		t.Error("structs with differing field types should not be equal")
	}
	if s1.Equal(s4) {
		t.Error("structs with differing names should not be equal")
	}

	if !Scalar(Bool).Equal(Scalar(Bool)) {
		t.Error("identical scalar kinds should be equal")
	}
	if Scalar(Bool).Equal(Scalar(Bit)) {
		t.Error("different scalar kinds should not be equal")
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []Kind{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64} {
		if !k.IsInteger() {
			t.Errorf("%s should be an integer kind", k)
		}
	}
	for _, k := range []Kind{Bit, Bool, Double, String, Unit} {
		if k.IsInteger() {
			t.Errorf("%s should not be an integer kind", k)
		}
	}
	for _, k := range []Kind{Int8, Int16, Int32, Int64} {
		if !k.IsSigned() {
			t.Errorf("%s should be signed", k)
		}
	}
	for _, k := range []Kind{Uint8, Uint16, Uint32, Uint64} {
		if k.IsSigned() {
			t.Errorf("%s should not report signed", k)
		}
	}
	widths := map[Kind]int{Int8: 8, Uint8: 8, Complex8: 8, Int16: 16, Complex16: 16, Int32: 32, Complex32: 32, Int64: 64, Complex64: 64}
	for k, w := range widths {
		if got := k.BitWidth(); got != w {
			t.Errorf("%s.BitWidth() = %d, want %d", k, got, w)
		}
	}
	for _, k := range []Kind{Complex8, Complex16, Complex32, Complex64} {
		if !k.IsComplex() {
			t.Errorf("%s should be complex", k)
		}
	}
	if Scalar(Int32).Kind.IsComplex() {
		t.Error("int32 should not be complex")
	}
}

func TestComplexComponentKind(t *testing.T) {
	tests := []struct {
		complex Kind
		want    Kind
	}{
		{Complex8, Int8},
		{Complex16, Int16},
		{Complex32, Int32},
		{Complex64, Int64},
	}
	for _, tt := range tests {
		if got := tt.complex.ComplexComponentKind(); got != tt.want {
			t.Errorf("%s.ComplexComponentKind() = %s, want %s", tt.complex, got, tt.want)
		}
	}
}

func TestComplexComponentKindPanicsOnNonComplex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-complex kind")
		}
	}()
	Scalar(Int32).Kind.ComplexComponentKind()
}

func TestComplexKindForStructName(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"complex8", Complex8, true},
		{"complex16", Complex16, true},
		{"complex32", Complex32, true},
		{"complex64", Complex64, true},
		{"point", 0, false},
	}
	for _, tt := range tests {
		got, ok := ComplexKindForStructName(tt.name)
		if ok != tt.ok {
			t.Errorf("ComplexKindForStructName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Errorf("ComplexKindForStructName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := NewArray(Scalar(Double), 4).String(); got != "array[4] of double" {
		t.Errorf("String() = %q", got)
	}
	if got := NewArrayVar(Scalar(Bit), "n").String(); got != "array[n] of bit" {
		t.Errorf("String() = %q", got)
	}
	if got := NewStruct("point").String(); got != "point" {
		t.Errorf("String() = %q", got)
	}
}
