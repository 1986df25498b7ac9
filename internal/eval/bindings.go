package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

// interpretLet implements the three Let behaviors:
//   - ForceInline: substitute Init into Body textually before interpreting,
//     since the programmer has asserted Init is safe to duplicate or skip.
//   - otherwise: evaluate Init eagerly; bind and evaluate Body on success,
//     or evaluate Body unbound (Name stays free) and rebuild the let node
//     on residualisation.
func (ev *Evaluator) interpretLet(scope *Scope, n *ast.Let) (Evald, error) {
	if n.Mode == ast.ForceInline {
		body := substituteExp(n.Body, n.UniqueID, n.Init)
		return ev.interpret(scope, body)
	}

	init, err := ev.interpret(scope, n.Init)
	if err != nil {
		return Evald{}, err
	}
	if init.IsFull() {
		ev.stats.Record(n.UniqueID, init.Value.Size())
		bodyScope := scope.Bind(n.UniqueID, init.Value)
		return ev.interpret(bodyScope, n.Body)
	}
	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n.Init)
	}
	body, err := ev.interpret(scope, n.Body)
	if err != nil {
		return Evald{}, err
	}
	return ResidualExp(&ast.Let{
		Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, Mode: n.Mode,
		Init: init.AsExp(), Body: body.AsExp(),
	}), nil
}

// substituteExp replaces every VarRef matching uniqueID with replacement
// throughout e, rebuilding nodes as needed. Only the node kinds that can
// appear below a Let's body in this grammar need handling; this is a
// textual substitution, not a capture-avoiding one, since unique-ids are
// already globally distinct by construction.
func substituteExp(e ast.Exp, uniqueID string, replacement ast.Exp) ast.Exp {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.VarRef:
		if n.UniqueID == uniqueID {
			return replacement
		}
		return n
	case *ast.ArrayLit:
		elems := make([]ast.Exp, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = substituteExp(el, uniqueID, replacement)
		}
		return &ast.ArrayLit{Meta: n.Meta, Elems: elems}
	case *ast.ArrayRead:
		return &ast.ArrayRead{Meta: n.Meta, Base: substituteExp(n.Base, uniqueID, replacement), Index: substituteExp(n.Index, uniqueID, replacement)}
	case *ast.ArraySlice:
		return &ast.ArraySlice{Meta: n.Meta, Base: substituteExp(n.Base, uniqueID, replacement), Start: substituteExp(n.Start, uniqueID, replacement), Length: n.Length}
	case *ast.ArraySliceVar:
		return &ast.ArraySliceVar{Meta: n.Meta, Base: substituteExp(n.Base, uniqueID, replacement), Start: substituteExp(n.Start, uniqueID, replacement), LenVar: n.LenVar}
	case *ast.StructLit:
		fields := make([]ast.FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.FieldInit{Name: f.Name, Value: substituteExp(f.Value, uniqueID, replacement)}
		}
		return &ast.StructLit{Meta: n.Meta, TypeName: n.TypeName, Fields: fields}
	case *ast.FieldAccess:
		return &ast.FieldAccess{Meta: n.Meta, Base: substituteExp(n.Base, uniqueID, replacement), Field: n.Field}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{Meta: n.Meta, Op: n.Op, X: substituteExp(n.X, uniqueID, replacement), CastTo: n.CastTo}
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Meta: n.Meta, Op: n.Op, L: substituteExp(n.L, uniqueID, replacement), R: substituteExp(n.R, uniqueID, replacement)}
	case *ast.Let:
		return &ast.Let{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, Mode: n.Mode,
			Init: substituteExp(n.Init, uniqueID, replacement), Body: substituteExp(n.Body, uniqueID, replacement)}
	case *ast.LetRef:
		var init ast.Exp
		if n.Init != nil {
			init = substituteExp(n.Init, uniqueID, replacement)
		}
		return &ast.LetRef{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType,
			Init: init, Body: substituteExp(n.Body, uniqueID, replacement)}
	case *ast.ExpSeq:
		return &ast.ExpSeq{Meta: n.Meta, First: substituteExp(n.First, uniqueID, replacement), Second: substituteExp(n.Second, uniqueID, replacement)}
	case *ast.If:
		return &ast.If{Meta: n.Meta, Cond: substituteExp(n.Cond, uniqueID, replacement), Then: substituteExp(n.Then, uniqueID, replacement), Else: substituteExp(n.Else, uniqueID, replacement)}
	case *ast.For:
		return &ast.For{Meta: n.Meta, Var: n.Var, UniqueID: n.UniqueID, Start: substituteExp(n.Start, uniqueID, replacement), Count: substituteExp(n.Count, uniqueID, replacement), Unroll: n.Unroll, Body: substituteExp(n.Body, uniqueID, replacement)}
	case *ast.ExpWhile:
		return &ast.ExpWhile{Meta: n.Meta, Cond: substituteExp(n.Cond, uniqueID, replacement), Body: substituteExp(n.Body, uniqueID, replacement)}
	case *ast.Call:
		args := make([]ast.Exp, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteExp(a, uniqueID, replacement)
		}
		return &ast.Call{Meta: n.Meta, Func: n.Func, Args: args}
	case *ast.Print:
		args := make([]ast.Exp, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteExp(a, uniqueID, replacement)
		}
		return &ast.Print{Meta: n.Meta, Args: args, Newline: n.Newline}
	default:
		return e
	}
}

// interpretLetRef implements the ref-let binding and the four-way
// residualisation decision, including the array write-out
// optimisation.
func (ev *Evaluator) interpretLetRef(scope *Scope, n *ast.LetRef) (Evald, error) {
	var initVal value.Value
	implicit := n.Init == nil
	if n.Init != nil {
		init, err := ev.interpret(scope, n.Init)
		if err != nil {
			return Evald{}, err
		}
		if init.IsFull() {
			initVal = init.Value
		} else if ev.mode == ModeFull {
			return Evald{}, freeVariable(n.Init)
		}
	} else if z, ok := value.Zero(n.At, n.VarType); ok {
		initVal = z
	}
	ev.mutable.Declare(n.UniqueID, initVal, implicit)
	if initVal != nil {
		ev.stats.Record(n.UniqueID, initVal.Size())
	}

	body, err := ev.interpret(scope, n.Body)
	if err != nil {
		return Evald{}, err
	}
	return ev.residualiseLetRef(n, body)
}

// residualiseLetRef decides, from the variable's final ref-state, whether
// the binding is dropped, kept with an initialiser, kept initialiser-less,
// or written out element-by-element for a sparse array with few writes.
func (ev *Evaluator) residualiseLetRef(n *ast.LetRef, body Evald) (Evald, error) {
	if body.IsFull() {
		// Nothing residual can reference the variable; the binding drops and
		// the reduced body stands on its own.
		return body, nil
	}
	rs := ev.mutable.Get(n.UniqueID)
	bodyExp := body.AsExp()

	switch {
	case rs.Known && !rs.Implicit:
		// Known throughout with an explicit value: binding may be dropped,
		// the final value's side effects already flowed through bodyExp.
		return ResidualExp(bodyExp), nil
	case rs.Known && rs.Implicit:
		// Known throughout but the default was implicit: retain an
		// initialiser-less ref-let so codegen still allocates storage.
		return ResidualExp(&ast.LetRef{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Body: bodyExp}), nil
	case !rs.Known && rs.Remembered == nil:
		// Unknown with nothing remembered to seed it: the residual body still
		// refers to the variable, so keep an initialiser-less ref-let.
		return ResidualExp(&ast.LetRef{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Body: bodyExp}), nil
	case !rs.Known && rs.RememberedImplicit:
		// The last known value was still the implicit default: omit the
		// initialiser, codegen zeroes the storage.
		return ResidualExp(&ast.LetRef{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Body: bodyExp}), nil
	default:
		if arr, ok := rs.Remembered.(*value.Array); ok && arr.NonDefaultCount() <= ev.cfg.MaxArrayWriteOut {
			var writes ast.Exp = bodyExp
			arr.NonDefault(func(idx int, v value.Value) {
				idxLit := ast.NewLiteral(n.At, typesys.Scalar(typesys.Int32))
				idxLit.Int = int64(idx)
				write := &ast.ArrayWrite{
					Meta:  ast.Meta{At: n.At, Typ: typesys.Scalar(typesys.Unit)},
					Array: &ast.VarRef{Meta: ast.Meta{At: n.At, Typ: n.VarType}, UniqueID: n.UniqueID, Name: n.Name},
					Index: idxLit,
					Value: v.ToExp(),
				}
				writes = &ast.ExpSeq{Meta: ast.Meta{At: n.At, Typ: typesys.Scalar(typesys.Unit)}, First: write, Second: writes}
			})
			return ResidualExp(&ast.LetRef{Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Body: writes}), nil
		}
		return ResidualExp(&ast.LetRef{
			Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType,
			Init: rs.Remembered.ToExp(), Body: bodyExp,
		}), nil
	}
}
