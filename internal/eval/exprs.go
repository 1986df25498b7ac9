package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/ops"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

func (ev *Evaluator) interpretLiteral(n *ast.Literal) (Evald, error) {
	return Full(value.FromLiteral(n)), nil
}

// interpretVarRef looks the variable up first in the immutable scope, then
// in the mutable store ("produce a full value when the variable is
// present in scope; otherwise residualise").
func (ev *Evaluator) interpretVarRef(scope *Scope, n *ast.VarRef) (Evald, error) {
	if v, ok := scope.Lookup(n.UniqueID); ok {
		return Full(v), nil
	}
	if rs := ev.mutable.Get(n.UniqueID); rs != nil {
		if rs.Known {
			return Full(rs.Value), nil
		}
	}
	return ev.residualiseOrFail(n, ResidualExp(n))
}

// interpretArrayLit: "Array literals with all-full elements become array
// values; otherwise residualise to an array-literal AST with
// partially-reduced children."
func (ev *Evaluator) interpretArrayLit(scope *Scope, n *ast.ArrayLit) (Evald, error) {
	elemVals := make([]Evald, len(n.Elems))
	allFull := true
	for i, e := range n.Elems {
		ev2, err := ev.interpret(scope, e)
		if err != nil {
			return Evald{}, err
		}
		elemVals[i] = ev2
		if !ev2.IsFull() {
			allFull = false
		}
	}
	if allFull {
		elemType := typesys.Scalar(typesys.Unit)
		if n.Typ.Elem != nil {
			elemType = *n.Typ.Elem
		}
		arr := value.NewArray(n.At, elemType, len(n.Elems), nil)
		for i, ev2 := range elemVals {
			arr = arr.Set(i, ev2.Value)
		}
		return Full(arr), nil
	}
	if ev.mode == ModeFull {
		for i, ev2 := range elemVals {
			if !ev2.IsFull() {
				return Evald{}, freeVariable(n.Elems[i])
			}
		}
	}
	residual := make([]ast.Exp, len(elemVals))
	for i, ev2 := range elemVals {
		residual[i] = ev2.AsExp()
	}
	return ResidualExp(&ast.ArrayLit{Meta: n.Meta, Elems: residual}), nil
}

// interpretArrayRead implements the bounds-checked read and the special
// whole-array [0..n) fold.
func (ev *Evaluator) interpretArrayRead(scope *Scope, n *ast.ArrayRead) (Evald, error) {
	base, err := ev.interpret(scope, n.Base)
	if err != nil {
		return Evald{}, err
	}
	idx, err := ev.interpret(scope, n.Index)
	if err != nil {
		return Evald{}, err
	}
	if !base.IsFull() || !idx.IsFull() {
		return ev.residualiseOrFail(n, ResidualExp(&ast.ArrayRead{Meta: n.Meta, Base: base.AsExp(), Index: idx.AsExp()}))
	}
	arr, ok := base.Value.(*value.Array)
	iv, iok := idx.Value.(*value.Int)
	if !ok || !iok {
		return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "array read applied to non-array or non-integer index")
	}
	i := int(iv.Val)
	if !arr.InBounds(i) {
		return Evald{}, diag.New(diag.KindOutOfBounds, n.Pos(), "array index %d out of bounds for length %d", i, arr.Length)
	}
	return Full(arr.Get(i)), nil
}

// interpretArraySlice: a read covering [0..n) of an array typed array[n] T
// folds to the array expression itself.
func (ev *Evaluator) interpretArraySlice(scope *Scope, n *ast.ArraySlice) (Evald, error) {
	base, err := ev.interpret(scope, n.Base)
	if err != nil {
		return Evald{}, err
	}
	start, err := ev.interpret(scope, n.Start)
	if err != nil {
		return Evald{}, err
	}
	if !base.IsFull() || !start.IsFull() {
		return ev.residualiseOrFail(n, ResidualExp(&ast.ArraySlice{Meta: n.Meta, Base: base.AsExp(), Start: start.AsExp(), Length: n.Length}))
	}
	arr, ok := base.Value.(*value.Array)
	si, iok := start.Value.(*value.Int)
	if !ok || !iok {
		return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "slice applied to non-array or non-integer start")
	}
	s := int(si.Val)
	if s == 0 && n.Length == arr.Length {
		return Full(arr), nil
	}
	if s < 0 || s+n.Length > arr.Length {
		return Evald{}, diag.New(diag.KindOutOfBounds, n.Pos(), "slice [%d, len:%d] out of bounds for length %d", s, n.Length, arr.Length)
	}
	return Full(arr.Slice(s, n.Length)), nil
}

// interpretArraySliceVar handles a slice whose length is a meta-variable
// resolved at the enclosing function's call site; the core cannot resolve
// LenVar on its own (that binding lives with an external collaborator), so
// this always residualises.
func (ev *Evaluator) interpretArraySliceVar(scope *Scope, n *ast.ArraySliceVar) (Evald, error) {
	base, err := ev.interpret(scope, n.Base)
	if err != nil {
		return Evald{}, err
	}
	start, err := ev.interpret(scope, n.Start)
	if err != nil {
		return Evald{}, err
	}
	residual := &ast.ArraySliceVar{Meta: n.Meta, Base: base.AsExp(), Start: start.AsExp(), LenVar: n.LenVar}
	return ev.residualiseOrFail(n, ResidualExp(residual))
}

// interpretStructLit builds a struct (or, for the four dedicated names, a
// Complex) value when every field reduces.
func (ev *Evaluator) interpretStructLit(scope *Scope, n *ast.StructLit) (Evald, error) {
	fieldVals := make([]Evald, len(n.Fields))
	allFull := true
	for i, f := range n.Fields {
		fv, err := ev.interpret(scope, f.Value)
		if err != nil {
			return Evald{}, err
		}
		fieldVals[i] = fv
		if !fv.IsFull() {
			allFull = false
		}
	}
	if allFull {
		fields := make([]value.FieldVal, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = value.FieldVal{Name: f.Name, Value: fieldVals[i].Value}
		}
		return Full(value.NewStruct(n.At, n.TypeName, fields)), nil
	}
	if ev.mode == ModeFull {
		for i, fv := range fieldVals {
			if !fv.IsFull() {
				return Evald{}, freeVariable(n.Fields[i].Value)
			}
		}
	}
	residualFields := make([]ast.FieldInit, len(n.Fields))
	for i, f := range n.Fields {
		residualFields[i] = ast.FieldInit{Name: f.Name, Value: fieldVals[i].AsExp()}
	}
	return ResidualExp(&ast.StructLit{Meta: n.Meta, TypeName: n.TypeName, Fields: residualFields}), nil
}

// interpretFieldAccess: complex-struct projection on re/im dispatches to the
// complex variant's component.
func (ev *Evaluator) interpretFieldAccess(scope *Scope, n *ast.FieldAccess) (Evald, error) {
	base, err := ev.interpret(scope, n.Base)
	if err != nil {
		return Evald{}, err
	}
	if !base.IsFull() {
		return ev.residualiseOrFail(n, ResidualExp(&ast.FieldAccess{Meta: n.Meta, Base: base.AsExp(), Field: n.Field}))
	}
	switch v := base.Value.(type) {
	case *value.Complex:
		comp, ok := value.ComplexComponent(v, n.Field)
		if !ok {
			return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "complex value has no field %q", n.Field)
		}
		return Full(comp), nil
	case *value.Struct:
		f, ok := v.Field(n.Field)
		if !ok {
			return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "struct %s has no field %q", v.TypeName, n.Field)
		}
		return Full(f), nil
	default:
		return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "field access on non-struct value")
	}
}

// interpretUnary dispatches to the ops package. `length` of an
// array with a statically known length folds immediately even on a
// residual base, since the length is carried in the type annotation, not
// the value.
func (ev *Evaluator) interpretUnary(scope *Scope, n *ast.UnaryExpr) (Evald, error) {
	if n.Op == ast.Length {
		if n.X.Type().Kind == typesys.Array && n.X.Type().Length >= 0 {
			return Full(value.NewInt(n.At, typesys.Int32, int64(n.X.Type().Length))), nil
		}
	}
	x, err := ev.interpret(scope, n.X)
	if err != nil {
		return Evald{}, err
	}
	if !x.IsFull() {
		return ev.residualiseOrFail(n, ResidualExp(&ast.UnaryExpr{Meta: n.Meta, Op: n.Op, X: x.AsExp(), CastTo: n.CastTo}))
	}
	var result value.Value
	if n.Op == ast.Cast {
		result, err = ops.Cast(n.CastTo, x.Value, n.At)
		if err != nil && ev.mode != ModeFull {
			// An unsupported (source, target) pair stays a residual cast.
			return ResidualExp(&ast.UnaryExpr{Meta: n.Meta, Op: n.Op, X: x.AsExp(), CastTo: n.CastTo}), nil
		}
	} else {
		result, err = ops.Unary(n.Op, x.Value, n.At)
	}
	if err != nil {
		return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "%s", err)
	}
	return Full(result), nil
}

// interpretBinary implements operator dispatch plus the algebraic identities
// that must fire even when one operand is residual: x+0->x, x*1->x,
// 0+y->y, 1*y->y.
func (ev *Evaluator) interpretBinary(scope *Scope, n *ast.BinaryExpr) (Evald, error) {
	l, err := ev.interpret(scope, n.L)
	if err != nil {
		return Evald{}, err
	}
	r, err := ev.interpret(scope, n.R)
	if err != nil {
		return Evald{}, err
	}

	if l.IsFull() && r.IsFull() {
		result, err := ops.Binary(n.Op, l.Value, r.Value, n.At)
		if err != nil {
			return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "%s", err)
		}
		return Full(result), nil
	}

	if id, ok := algebraicIdentity(n.Op, l, r); ok {
		return id, nil
	}

	if ev.mode == ModeFull {
		if !l.IsFull() {
			return Evald{}, freeVariable(n.L)
		}
		return Evald{}, freeVariable(n.R)
	}
	return ResidualExp(&ast.BinaryExpr{Meta: n.Meta, Op: n.Op, L: l.AsExp(), R: r.AsExp()}), nil
}

// algebraicIdentity recognizes x+0, 0+y, x*1, 1*y where the non-identity
// side may still be residual.
func algebraicIdentity(op ast.BinaryOp, l, r Evald) (Evald, bool) {
	switch op {
	case ast.Add:
		if isZero(l) {
			return r, true
		}
		if isZero(r) {
			return l, true
		}
	case ast.Mul:
		if isOne(l) {
			return r, true
		}
		if isOne(r) {
			return l, true
		}
	}
	return Evald{}, false
}

func isZero(e Evald) bool {
	if !e.IsFull() {
		return false
	}
	switch v := e.Value.(type) {
	case *value.Int:
		return v.Val == 0
	case *value.Float:
		return v.Val == 0
	default:
		return false
	}
}

func isOne(e Evald) bool {
	if !e.IsFull() {
		return false
	}
	switch v := e.Value.(type) {
	case *value.Int:
		return v.Val == 1
	case *value.Float:
		return v.Val == 1
	default:
		return false
	}
}
