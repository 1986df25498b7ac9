package value

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

func TestNewStructSpecialCasesComplexNames(t *testing.T) {
	fields := []FieldVal{
		{Name: "re", Value: NewInt(srcpos.None, typesys.Int16, 3)},
		{Name: "im", Value: NewInt(srcpos.None, typesys.Int16, -4)},
	}
	v := NewStruct(srcpos.None, "complex16", fields)
	c, ok := v.(*Complex)
	if !ok {
		t.Fatalf("NewStruct(\"complex16\", ...) = %T, want *Complex", v)
	}
	if c.Re != 3 || c.Im != -4 {
		t.Errorf("complex components = (%d, %d), want (3, -4)", c.Re, c.Im)
	}
}

func TestStructSizeSumsFields(t *testing.T) {
	fields := []FieldVal{
		{Name: "a", Value: NewInt(srcpos.None, typesys.Int32, 1)},
		{Name: "b", Value: NewFloat(srcpos.None, 2.0)},
	}
	v := NewStruct(srcpos.None, "pair", fields)
	s, ok := v.(*Struct)
	if !ok {
		t.Fatalf("expected *Struct, got %T", v)
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2", s.Size())
	}
}

func TestStructWithFieldReplacesNamedField(t *testing.T) {
	fields := []FieldVal{
		{Name: "a", Value: NewInt(srcpos.None, typesys.Int32, 1)},
		{Name: "b", Value: NewInt(srcpos.None, typesys.Int32, 2)},
	}
	v := NewStruct(srcpos.None, "pair", fields).(*Struct)
	next := v.WithField("b", NewInt(srcpos.None, typesys.Int32, 99))

	got, ok := next.Field("b")
	if !ok || !got.Equal(NewInt(srcpos.None, typesys.Int32, 99)) {
		t.Errorf("WithField did not update field b, got %v", got)
	}
	orig, _ := v.Field("b")
	if !orig.Equal(NewInt(srcpos.None, typesys.Int32, 2)) {
		t.Error("WithField mutated the receiver's field slice")
	}
}
