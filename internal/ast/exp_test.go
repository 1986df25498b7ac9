package ast

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

func intLit(v int64) *Literal {
	return &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.Int32)}, Int: v}
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		lit  *Literal
		want string
	}{
		{"int", intLit(7), "7"},
		{"double", &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.Double)}, Flt: 1.5}, "1.5"},
		{"string", &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.String)}, Str: "hi"}, `"hi"`},
		{"bool true", &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.Bool)}, Int: 1}, "true"},
		{"bool false", &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.Bool)}, Int: 0}, "false"},
		{"complex", &Literal{Meta: Meta{Typ: typesys.Scalar(typesys.Complex16)}, Re: 2, Im: -3}, "(2+-3i)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lit.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLiteralPosAndType(t *testing.T) {
	pos := srcpos.Position{File: "f.phy", Line: 3, Column: 5}
	lit := NewLiteral(pos, typesys.Scalar(typesys.Int16))
	if lit.Pos() != pos {
		t.Errorf("Pos() = %v, want %v", lit.Pos(), pos)
	}
	if lit.Type().Kind != typesys.Int16 {
		t.Errorf("Type().Kind = %v, want Int16", lit.Type().Kind)
	}
}

func TestArrayReadAndSliceString(t *testing.T) {
	arr := &VarRef{Name: "buf"}
	idx := intLit(3)
	read := &ArrayRead{Base: arr, Index: idx}
	if got, want := read.String(), "buf[3]"; got != want {
		t.Errorf("ArrayRead.String() = %q, want %q", got, want)
	}

	slice := &ArraySlice{Base: arr, Start: intLit(0), Length: 4}
	if got, want := slice.String(), "buf[0, len:4]"; got != want {
		t.Errorf("ArraySlice.String() = %q, want %q", got, want)
	}

	sliceVar := &ArraySliceVar{Base: arr, Start: intLit(0), LenVar: "n"}
	if got, want := sliceVar.String(), "buf[0, len:n]"; got != want {
		t.Errorf("ArraySliceVar.String() = %q, want %q", got, want)
	}
}

func TestBinaryAndUnaryExprString(t *testing.T) {
	bin := &BinaryExpr{Op: Add, L: intLit(1), R: intLit(2)}
	if got, want := bin.String(), "(1 + 2)"; got != want {
		t.Errorf("BinaryExpr.String() = %q, want %q", got, want)
	}

	neg := &UnaryExpr{Op: Neg, X: intLit(5)}
	if got, want := neg.String(), "-(5)"; got != want {
		t.Errorf("UnaryExpr.String() = %q, want %q", got, want)
	}

	cast := &UnaryExpr{Op: Cast, X: intLit(5), CastTo: typesys.Scalar(typesys.Double)}
	if got, want := cast.String(), "cast<double>(5)"; got != want {
		t.Errorf("UnaryExpr.String() (cast) = %q, want %q", got, want)
	}
}

func TestStructLitAndFieldAccessString(t *testing.T) {
	s := &StructLit{TypeName: "point", Fields: []FieldInit{{Name: "x", Value: intLit(1)}, {Name: "y", Value: intLit(2)}}}
	if got, want := s.String(), "point{x: 1, y: 2}"; got != want {
		t.Errorf("StructLit.String() = %q, want %q", got, want)
	}
	fa := &FieldAccess{Base: &VarRef{Name: "p"}, Field: "x"}
	if got, want := fa.String(), "p.x"; got != want {
		t.Errorf("FieldAccess.String() = %q, want %q", got, want)
	}
}

func TestInlineModeString(t *testing.T) {
	tests := map[InlineMode]string{
		AutoInline:  "auto",
		ForceInline: "inline",
		NoInline:    "noinline",
	}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("InlineMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

func TestLValueAndAssignString(t *testing.T) {
	lv := LValue{Name: "arr", UniqueID: "arr#1", Selectors: []Selector{IndexSelector{Index: intLit(2)}, FieldSelector{Field: "re"}}}
	if got, want := lv.String(), "arr[2].re"; got != want {
		t.Errorf("LValue.String() = %q, want %q", got, want)
	}
	assign := &Assign{Target: lv, Value: intLit(9)}
	if got, want := assign.String(), "arr[2].re := 9"; got != want {
		t.Errorf("Assign.String() = %q, want %q", got, want)
	}
}
