package ops

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

func i32(v int64) value.Value { return value.NewInt(srcpos.None, typesys.Int32, v) }

func TestBinaryArithmetic(t *testing.T) {
	tests := []struct {
		op   ast.BinaryOp
		l, r int64
		want int64
	}{
		{ast.Add, 2, 3, 5},
		{ast.Sub, 5, 3, 2},
		{ast.Mul, 4, 3, 12},
		{ast.Div, 7, 2, 3},
		{ast.Rem, 7, 2, 1},
		{ast.Div, -7, 2, -3}, // truncation toward zero, not floor
	}
	for _, tt := range tests {
		got, err := Binary(tt.op, i32(tt.l), i32(tt.r), srcpos.None)
		if err != nil {
			t.Fatalf("Binary(%s, %d, %d): %v", tt.op, tt.l, tt.r, err)
		}
		if !got.Equal(i32(tt.want)) {
			t.Errorf("Binary(%s, %d, %d) = %v, want %d", tt.op, tt.l, tt.r, got, tt.want)
		}
	}
}

func TestComplexDivisionFormula(t *testing.T) {
	l := value.NewComplex(srcpos.None, typesys.Complex32, 1, 2)
	r := value.NewComplex(srcpos.None, typesys.Complex32, 3, -4)
	got, err := Binary(ast.Div, l, r, srcpos.None)
	if err != nil {
		t.Fatalf("complex division: %v", err)
	}
	// (1*3 + 2*-4) / (9+16) = -5/25 = 0 (truncated)
	// (2*3 - 1*-4) / 25 = 10/25 = 0 (truncated)
	want := value.NewComplex(srcpos.None, typesys.Complex32, 0, 0)
	if !got.Equal(want) {
		t.Errorf("complex division = %v, want %v", got, want)
	}
}

func TestComplexDivisionByZeroErrors(t *testing.T) {
	l := value.NewComplex(srcpos.None, typesys.Complex32, 1, 2)
	zero := value.NewComplex(srcpos.None, typesys.Complex32, 0, 0)
	if _, err := Binary(ast.Div, l, zero, srcpos.None); err == nil {
		t.Error("dividing by a zero complex value should error")
	}
}

func TestShiftWithNegativeAmountFlips(t *testing.T) {
	got, err := Binary(ast.Shr, i32(1), i32(-3), srcpos.None)
	if err != nil {
		t.Fatalf("shift: %v", err)
	}
	if !got.Equal(i32(8)) {
		t.Errorf("1 >> -3 = %v, want 8 (negative shr becomes shl)", got)
	}
}

func TestCompareEqualityAndOrdering(t *testing.T) {
	eq, err := Binary(ast.Eq, i32(5), i32(5), srcpos.None)
	if err != nil || !eq.Equal(value.NewInt(srcpos.None, typesys.Bool, 1)) {
		t.Errorf("5 = 5 should be true, got %v, err %v", eq, err)
	}
	lt, err := Binary(ast.Lt, i32(3), i32(5), srcpos.None)
	if err != nil || !lt.Equal(value.NewInt(srcpos.None, typesys.Bool, 1)) {
		t.Errorf("3 < 5 should be true, got %v, err %v", lt, err)
	}
}

func TestIntegerCastRoundTrip(t *testing.T) {
	x := i32(42)
	c1, err := Cast(typesys.Scalar(typesys.Int16), x, srcpos.None)
	if err != nil {
		t.Fatalf("cast to int16: %v", err)
	}
	c2, err := Cast(typesys.Scalar(typesys.Int16), c1, srcpos.None)
	if err != nil {
		t.Fatalf("second cast to int16: %v", err)
	}
	if !c1.Equal(c2) {
		t.Errorf("cast<T>(cast<T>(x)) != cast<T>(x): %v vs %v", c2, c1)
	}
}

func TestWideningCastRoundTrip(t *testing.T) {
	x := value.NewInt(srcpos.None, typesys.Int8, -5)
	narrow, err := Cast(typesys.Scalar(typesys.Int8), x, srcpos.None)
	if err != nil {
		t.Fatalf("cast to int8: %v", err)
	}
	widenedDirect, err := Cast(typesys.Scalar(typesys.Int32), x, srcpos.None)
	if err != nil {
		t.Fatalf("direct widen: %v", err)
	}
	widenedFromNarrow, err := Cast(typesys.Scalar(typesys.Int32), narrow, srcpos.None)
	if err != nil {
		t.Fatalf("widen from narrow: %v", err)
	}
	if !widenedDirect.Equal(widenedFromNarrow) {
		t.Errorf("cast<Wider>(cast<T>(x)) != cast<Wider>(x): %v vs %v", widenedFromNarrow, widenedDirect)
	}
}

func TestCastTruncatesOnNarrowing(t *testing.T) {
	x := i32(300)
	got, err := Cast(typesys.Scalar(typesys.Int8), x, srcpos.None)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	// 300 = 0x12C; keeping the low 8 bits gives 0x2C = 44.
	if !got.Equal(value.NewInt(srcpos.None, typesys.Int8, 44)) {
		t.Errorf("narrowing cast = %v, want two's-complement truncation", got)
	}
}

func TestUnaryNegate(t *testing.T) {
	got, err := Unary(ast.Neg, i32(5), srcpos.None)
	if err != nil || !got.Equal(i32(-5)) {
		t.Errorf("negate(5) = %v, err %v", got, err)
	}
}

func TestUnaryLength(t *testing.T) {
	arr := value.NewArray(srcpos.None, typesys.Scalar(typesys.Int32), 7, i32(0))
	got, err := Unary(ast.Length, arr, srcpos.None)
	if err != nil {
		t.Fatalf("length: %v", err)
	}
	if !got.Equal(value.NewInt(srcpos.None, typesys.Int32, 7)) {
		t.Errorf("length(arr) = %v, want 7", got)
	}
}
