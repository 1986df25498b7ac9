// Package ops implements the pure operator semantics: every
// unary/binary operator and cast as a partial function over the value
// model, dispatched on the tagged value variant. Failure means "type
// mismatch, not applicable here" — callers (the evaluator) classify that as
// a compiler bug, since the type checker upstream should have ruled it out.
package ops

import (
	"fmt"
	"math"
	"strings"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

// Binary evaluates a binary operator over two already-reduced values.
func Binary(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	switch op {
	case ast.Add, ast.Sub, ast.Mul:
		return arith(op, l, r, pos)
	case ast.Div, ast.Rem:
		return intDivRem(op, l, r, pos)
	case ast.FDiv:
		return floatDiv(l, r, pos)
	case ast.Pow:
		return power(l, r, pos)
	case ast.Shl, ast.Shr:
		return shift(op, l, r, pos)
	case ast.BitAnd, ast.BitOr, ast.BitXor:
		return bitwise(op, l, r, pos)
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return compare(op, l, r, pos)
	case ast.And, ast.Or:
		return boolean(op, l, r, pos)
	default:
		return nil, fmt.Errorf("ops: unknown binary operator %v", op)
	}
}

func mismatch(op fmt.Stringer, l, r value.Value) error {
	return fmt.Errorf("operator %s not applicable to %s and %s", op, l.Type(), r.Type())
}

// asInt extracts an Int payload, or ok=false if v is not an Int.
func asInt(v value.Value) (*value.Int, bool) {
	iv, ok := v.(*value.Int)
	return iv, ok
}

func asFloat(v value.Value) (*value.Float, bool) {
	fv, ok := v.(*value.Float)
	return fv, ok
}

func asComplex(v value.Value) (*value.Complex, bool) {
	cv, ok := v.(*value.Complex)
	return cv, ok
}

func arith(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	if lc, ok := asComplex(l); ok {
		rc, ok := asComplex(r)
		if !ok || rc.Typ.Kind != lc.Typ.Kind {
			return nil, mismatch(op, l, r)
		}
		var re, im int64
		switch op {
		case ast.Add:
			re, im = lc.Re+rc.Re, lc.Im+rc.Im
		case ast.Sub:
			re, im = lc.Re-rc.Re, lc.Im-rc.Im
		case ast.Mul:
			re, im = lc.Re*rc.Re-lc.Im*rc.Im, lc.Re*rc.Im+lc.Im*rc.Re
		}
		return value.NewComplex(pos, lc.Typ.Kind, re, im), nil
	}
	if lf, ok := asFloat(l); ok {
		rf, ok := asFloat(r)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		var v float64
		switch op {
		case ast.Add:
			v = lf.Val + rf.Val
		case ast.Sub:
			v = lf.Val - rf.Val
		case ast.Mul:
			v = lf.Val * rf.Val
		}
		return value.NewFloat(pos, v), nil
	}
	li, ok := asInt(l)
	if !ok {
		return nil, mismatch(op, l, r)
	}
	ri, ok := asInt(r)
	if !ok || ri.Typ.Kind != li.Typ.Kind {
		return nil, mismatch(op, l, r)
	}
	var v int64
	switch op {
	case ast.Add:
		v = li.Val + ri.Val
	case ast.Sub:
		v = li.Val - ri.Val
	case ast.Mul:
		v = li.Val * ri.Val
	}
	// NewInt wraps overflow at the operand width, as the generated C does.
	return value.NewInt(pos, li.Typ.Kind, v), nil
}

// intDivRem implements truncating integer div/rem, including the
// complex-division formula (ac+bd)/(c^2+d^2) + ((bc-ad)/(c^2+d^2))i,
// both components truncated toward zero.
func intDivRem(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	if lc, ok := asComplex(l); ok {
		rc, ok := asComplex(r)
		if !ok || rc.Typ.Kind != lc.Typ.Kind {
			return nil, mismatch(op, l, r)
		}
		if op == ast.Rem {
			return nil, fmt.Errorf("rem not defined on complex values")
		}
		denom := rc.Re*rc.Re + rc.Im*rc.Im
		if denom == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		re := (lc.Re*rc.Re + lc.Im*rc.Im) / denom
		im := (lc.Im*rc.Re - lc.Re*rc.Im) / denom
		return value.NewComplex(pos, lc.Typ.Kind, re, im), nil
	}
	li, ok := asInt(l)
	if !ok {
		return nil, mismatch(op, l, r)
	}
	ri, ok := asInt(r)
	if !ok || ri.Typ.Kind != li.Typ.Kind {
		return nil, mismatch(op, l, r)
	}
	if ri.Val == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	var v int64
	if op == ast.Div {
		v = li.Val / ri.Val // Go's / truncates toward zero for ints
	} else {
		v = li.Val % ri.Val
	}
	return value.NewInt(pos, li.Typ.Kind, v), nil
}

func floatDiv(l, r value.Value, pos srcpos.Position) (value.Value, error) {
	lf, ok := asFloat(l)
	if !ok {
		return nil, mismatch(ast.FDiv, l, r)
	}
	rf, ok := asFloat(r)
	if !ok {
		return nil, mismatch(ast.FDiv, l, r)
	}
	return value.NewFloat(pos, lf.Val/rf.Val), nil
}

func power(l, r value.Value, pos srcpos.Position) (value.Value, error) {
	lf, ok := asFloat(l)
	if !ok {
		return nil, mismatch(ast.Pow, l, r)
	}
	rf, ok := asFloat(r)
	if !ok {
		return nil, mismatch(ast.Pow, l, r)
	}
	return value.NewFloat(pos, math.Pow(lf.Val, rf.Val)), nil
}

// shift: result width follows the left operand's width, the
// shift amount is read as an integer regardless of its own width, and a
// negative amount reverses the direction: a negative right-shift shifts left
// by the absolute value, and a negative left-shift shifts right by it.
func shift(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	li, ok := asInt(l)
	if !ok {
		return nil, mismatch(op, l, r)
	}
	ri, ok := asInt(r)
	if !ok {
		return nil, mismatch(op, l, r)
	}
	n := ri.Val
	effectiveOp := op
	if op == ast.Shr && n < 0 {
		effectiveOp = ast.Shl
		n = -n
	} else if op == ast.Shl && n < 0 {
		effectiveOp = ast.Shr
		n = -n
	}
	var v int64
	if effectiveOp == ast.Shl {
		v = li.Val << uint(n)
	} else {
		v = li.Val >> uint(n)
	}
	return value.NewInt(pos, li.Typ.Kind, v), nil
}

// bitwise covers and/or/xor on all integer widths and on bit/bool.
func bitwise(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	li, ok := asInt(l)
	if !ok {
		return nil, mismatch(op, l, r)
	}
	ri, ok := asInt(r)
	if !ok || ri.Typ.Kind != li.Typ.Kind {
		return nil, mismatch(op, l, r)
	}
	var v int64
	switch op {
	case ast.BitAnd:
		v = li.Val & ri.Val
	case ast.BitOr:
		v = li.Val | ri.Val
	case ast.BitXor:
		v = li.Val ^ ri.Val
	}
	return value.NewInt(pos, li.Typ.Kind, v), nil
}

// compare implements ordering over every comparable scalar type, plus
// equality over arrays/structs/complex values. Strings compare
// lexicographically.
func compare(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	if op == ast.Eq || op == ast.Ne {
		eq := l.Equal(r)
		if op == ast.Ne {
			eq = !eq
		}
		return boolValue(pos, eq), nil
	}

	switch lv := l.(type) {
	case *value.Int:
		rv, ok := asInt(r)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return boolValue(pos, orderInt(op, lv.Val, rv.Val)), nil
	case *value.Float:
		rv, ok := asFloat(r)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return boolValue(pos, orderFloat(op, lv.Val, rv.Val)), nil
	case *value.Str:
		rv, ok := r.(*value.Str)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return boolValue(pos, orderInt(op, int64(strings.Compare(lv.Val, rv.Val)), 0)), nil
	default:
		return nil, mismatch(op, l, r)
	}
}

func orderInt(op ast.BinaryOp, l, r int64) bool {
	switch op {
	case ast.Lt:
		return l < r
	case ast.Le:
		return l <= r
	case ast.Gt:
		return l > r
	case ast.Ge:
		return l >= r
	default:
		return false
	}
}

func orderFloat(op ast.BinaryOp, l, r float64) bool {
	switch op {
	case ast.Lt:
		return l < r
	case ast.Le:
		return l <= r
	case ast.Gt:
		return l > r
	case ast.Ge:
		return l >= r
	default:
		return false
	}
}

func boolean(op ast.BinaryOp, l, r value.Value, pos srcpos.Position) (value.Value, error) {
	lb, ok := asInt(l)
	if !ok || (lb.Typ.Kind != typesys.Bool && lb.Typ.Kind != typesys.Bit) {
		return nil, mismatch(op, l, r)
	}
	rb, ok := asInt(r)
	if !ok || rb.Typ.Kind != lb.Typ.Kind {
		return nil, mismatch(op, l, r)
	}
	var v bool
	switch op {
	case ast.And:
		v = lb.Val != 0 && rb.Val != 0
	case ast.Or:
		v = lb.Val != 0 || rb.Val != 0
	}
	return value.NewInt(pos, lb.Typ.Kind, boolToInt(v)), nil
}

func boolValue(pos srcpos.Position, b bool) value.Value {
	return value.NewInt(pos, typesys.Bool, boolToInt(b))
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
