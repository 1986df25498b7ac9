package ops

import (
	"fmt"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

// Unary evaluates a unary operator over an already-reduced value. Cast is
// handled by the separate Cast entry point (UnaryExpr.CastTo carries the
// destination type, which this function does not have access to).
func Unary(op ast.UnaryOp, x value.Value, pos srcpos.Position) (value.Value, error) {
	switch op {
	case ast.Neg:
		return negate(x, pos)
	case ast.Not:
		return logicalNot(x, pos)
	case ast.BitNot:
		return bitNot(x, pos)
	case ast.Length:
		return lengthOf(x, pos)
	default:
		return nil, fmt.Errorf("ops: unary operator %v requires Cast", op)
	}
}

func negate(x value.Value, pos srcpos.Position) (value.Value, error) {
	switch v := x.(type) {
	case *value.Int:
		return value.NewInt(pos, v.Typ.Kind, -v.Val), nil
	case *value.Float:
		return value.NewFloat(pos, -v.Val), nil
	case *value.Complex:
		return value.NewComplex(pos, v.Typ.Kind, -v.Re, -v.Im), nil
	default:
		return nil, fmt.Errorf("negation not applicable to %s", x.Type())
	}
}

func logicalNot(x value.Value, pos srcpos.Position) (value.Value, error) {
	v, ok := x.(*value.Int)
	if !ok || (v.Typ.Kind != typesys.Bool && v.Typ.Kind != typesys.Bit) {
		return nil, fmt.Errorf("'not' not applicable to %s", x.Type())
	}
	return value.NewInt(pos, v.Typ.Kind, boolToInt(v.Val == 0)), nil
}

func bitNot(x value.Value, pos srcpos.Position) (value.Value, error) {
	v, ok := x.(*value.Int)
	if !ok || !v.Typ.Kind.IsInteger() {
		return nil, fmt.Errorf("bitwise not not applicable to %s", x.Type())
	}
	return value.NewInt(pos, v.Typ.Kind, ^v.Val), nil
}

// lengthOf folds `length(arr)` to an integer literal when arr's length is
// statically known; callers with a polymorphic length never reach here
// because the evaluator residualises first (see eval's handling of
// UnaryExpr with Op==Length).
func lengthOf(x value.Value, pos srcpos.Position) (value.Value, error) {
	arr, ok := x.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("length not applicable to %s", x.Type())
	}
	return value.NewInt(pos, typesys.Int32, int64(arr.Length)), nil
}
