package eval

import (
	"fmt"

	"github.com/flowc-lang/flowc/internal/ast"
)

// interpret is the single shared traversal, used directly by Full
// and Partial mode. NonDet mode wraps it via forkingInterpret, which
// intercepts If, Not, And/Or, comparisons, Let, LetRef, sequencing and
// boolean-typed leaves so an unresolved boolean can fork; everything else,
// While included, goes through interpret unchanged.
func (ev *Evaluator) interpret(scope *Scope, e ast.Exp) (Evald, error) {
	done, err := ev.depthGuard(e.Pos())
	if err != nil {
		return Evald{}, err
	}
	defer done()

	switch n := e.(type) {
	case *ast.Literal:
		return ev.interpretLiteral(n)
	case *ast.VarRef:
		return ev.interpretVarRef(scope, n)
	case *ast.ArrayLit:
		return ev.interpretArrayLit(scope, n)
	case *ast.ArrayRead:
		return ev.interpretArrayRead(scope, n)
	case *ast.ArraySlice:
		return ev.interpretArraySlice(scope, n)
	case *ast.ArraySliceVar:
		return ev.interpretArraySliceVar(scope, n)
	case *ast.StructLit:
		return ev.interpretStructLit(scope, n)
	case *ast.FieldAccess:
		return ev.interpretFieldAccess(scope, n)
	case *ast.UnaryExpr:
		return ev.interpretUnary(scope, n)
	case *ast.BinaryExpr:
		return ev.interpretBinary(scope, n)
	case *ast.Let:
		return ev.interpretLet(scope, n)
	case *ast.LetRef:
		return ev.interpretLetRef(scope, n)
	case *ast.Assign:
		return ev.interpretAssign(scope, n)
	case *ast.ArrayWrite:
		return ev.interpretArrayWrite(scope, n)
	case *ast.ExpSeq:
		return ev.interpretSeq(scope, n)
	case *ast.If:
		return ev.interpretIf(scope, n)
	case *ast.For:
		return ev.interpretFor(scope, n)
	case *ast.ExpWhile:
		return ev.interpretWhile(scope, n)
	case *ast.Call:
		return ev.interpretCall(scope, n)
	case *ast.Print:
		return ev.interpretPrint(scope, n)
	case *ast.ErrorExp:
		return Evald{}, fmt.Errorf("error reached during evaluation: %s", n.Message)
	case *ast.LUTMarker:
		return Evald{}, unsupported(n, "LUT marker reached the evaluator")
	default:
		return Evald{}, unsupported(e, fmt.Sprintf("unknown expression node %T", e))
	}
}

// residualiseOrFail turns an Evald that did not reduce into either an error
// (Full mode) or a pass-through residual (Partial/NonDet mode).
func (ev *Evaluator) residualiseOrFail(e ast.Exp, v Evald) (Evald, error) {
	if v.IsFull() || ev.mode != ModeFull {
		return v, nil
	}
	return Evald{}, freeVariable(e)
}
