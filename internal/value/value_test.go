package value

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

func TestTruncateTo(t *testing.T) {
	tests := []struct {
		kind typesys.Kind
		in   int64
		want int64
	}{
		{typesys.Int8, 255, -1},
		{typesys.Int8, 128, -128},
		{typesys.Uint8, -1, 255},
		{typesys.Int16, 65535, -1},
		{typesys.Bool, 5, 1},
		{typesys.Bool, 0, 0},
		{typesys.Int64, 1 << 40, 1 << 40},
	}
	for _, tt := range tests {
		if got := TruncateTo(tt.kind, tt.in); got != tt.want {
			t.Errorf("TruncateTo(%s, %d) = %d, want %d", tt.kind, tt.in, got, tt.want)
		}
	}
}

func TestIntToExpRoundTrip(t *testing.T) {
	v := NewInt(srcpos.None, typesys.Int32, -7)
	lit, ok := v.ToExp().(*ast.Literal)
	if !ok {
		t.Fatalf("ToExp() returned %T, want *ast.Literal", v.ToExp())
	}
	got := FromLiteral(lit)
	if !got.Equal(v) {
		t.Errorf("round trip through ToExp/FromLiteral changed the value: got %v, want %v", got, v)
	}
}

func TestFloatAndComplexToExpRoundTrip(t *testing.T) {
	f := NewFloat(srcpos.None, 3.5)
	gotF := FromLiteral(f.ToExp().(*ast.Literal))
	if !gotF.Equal(f) {
		t.Errorf("float round trip: got %v, want %v", gotF, f)
	}

	c := NewComplex(srcpos.None, typesys.Complex32, 1, -2)
	gotC := FromLiteral(c.ToExp().(*ast.Literal))
	if !gotC.Equal(c) {
		t.Errorf("complex round trip: got %v, want %v", gotC, c)
	}
}

func TestValueEqualityIgnoresPosition(t *testing.T) {
	a := NewInt(srcpos.Position{File: "a.flowc", Line: 1}, typesys.Int32, 5)
	b := NewInt(srcpos.Position{File: "b.flowc", Line: 9}, typesys.Int32, 5)
	if !a.Equal(b) {
		t.Error("values with same kind/Val but different positions should be equal")
	}
}

func TestComplexTruncatesComponentsToBitWidth(t *testing.T) {
	c := NewComplex(srcpos.None, typesys.Complex8, 200, -200)
	// Wrapped to int8: 200-256 = -56 and -200+256 = 56.
	if c.Re != -56 || c.Im != 56 {
		t.Errorf("complex8 components not truncated: got (%d, %d)", c.Re, c.Im)
	}
}

func TestArraySizeCountsOnlyOverrides(t *testing.T) {
	def := NewInt(srcpos.None, typesys.Int32, 0)
	arr := NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 10, def)
	if arr.Size() != 0 {
		t.Fatalf("fresh array should have Size 0, got %d", arr.Size())
	}
	arr = arr.Set(3, NewInt(srcpos.None, typesys.Int32, 99))
	if arr.Size() != 1 {
		t.Errorf("one override should give Size 1, got %d", arr.Size())
	}
	if arr.NonDefaultCount() != 1 {
		t.Errorf("NonDefaultCount = %d, want 1", arr.NonDefaultCount())
	}
}

func TestArraySetBackToDefaultRemovesOverride(t *testing.T) {
	def := NewInt(srcpos.None, typesys.Int32, 0)
	arr := NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 4, def)
	arr = arr.Set(1, NewInt(srcpos.None, typesys.Int32, 5))
	arr = arr.Set(1, NewInt(srcpos.None, typesys.Int32, 0))
	if arr.NonDefaultCount() != 0 {
		t.Errorf("setting an override back to the default should drop it, got count %d", arr.NonDefaultCount())
	}
}

func TestArraySliceCopiesOverridesInRange(t *testing.T) {
	def := NewInt(srcpos.None, typesys.Int32, 0)
	arr := NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 10, def)
	arr = arr.Set(5, NewInt(srcpos.None, typesys.Int32, 42))
	sub := arr.Slice(4, 3)
	if sub.Length != 3 {
		t.Fatalf("slice length = %d, want 3", sub.Length)
	}
	if !sub.Get(1).Equal(NewInt(srcpos.None, typesys.Int32, 42)) {
		t.Errorf("slice did not carry the override at the shifted index")
	}
}

func TestArrayEqualityComparesLogicalContents(t *testing.T) {
	def := NewInt(srcpos.None, typesys.Int32, 0)
	a := NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 3, def).Set(0, NewInt(srcpos.None, typesys.Int32, 1))
	b := NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 3, def).Set(0, NewInt(srcpos.None, typesys.Int32, 1)).Set(1, NewInt(srcpos.None, typesys.Int32, 0))
	if !a.Equal(b) {
		t.Error("arrays with an override re-written back to the default should still compare equal")
	}
}

func TestTooLargeForEagerInit(t *testing.T) {
	if TooLargeForEagerInit(MaxEagerInit) {
		t.Error("exactly MaxEagerInit should still be eager-initialisable")
	}
	if !TooLargeForEagerInit(MaxEagerInit + 1) {
		t.Error("MaxEagerInit+1 should not be eager-initialisable")
	}
}
