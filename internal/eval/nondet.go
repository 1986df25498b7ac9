package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/ops"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

// branch is forkingInterpret's internal unit of work: one alternative's
// full evaluator state (mutable store and guesses both included) paired
// with the value/residual it produced so far. Threading the whole
// evaluator, not just the guess store, keeps a forked branch's mutable
// side effects (assignments made while evaluating its half of an If) alive
// across the rest of the traversal.
type branch struct {
	ev  *Evaluator
	val Evald
}

// forkingInterpret is interpret's non-deterministic counterpart: it walks
// the same grammar but, wherever a boolean-valued subterm cannot be
// reduced, forks into the "assumed true" and "assumed false" alternatives
// instead of residualising. Guess points are conditions of If, logical
// not/and/or, comparisons, and any other boolean-typed leaf; every other
// node either recurses structurally (Let, LetRef, Seq — so a fork inside a
// body propagates out) or delegates to interpret as a single branch.
func (ev *Evaluator) forkingInterpret(scope *Scope, e ast.Exp) ([]Alt, error) {
	branches, err := ev.fork(scope, e)
	if err != nil {
		return nil, err
	}
	alts := make([]Alt, len(branches))
	for i, b := range branches {
		alts[i] = Alt{Evald: b.val, Guesses: b.ev.guesses}
	}
	return alts, nil
}

func (ev *Evaluator) fork(scope *Scope, e ast.Exp) ([]branch, error) {
	switch n := e.(type) {
	case *ast.If:
		return ev.forkIf(scope, n)
	case *ast.UnaryExpr:
		if n.Op == ast.Not {
			return ev.forkNot(scope, n)
		}
	case *ast.BinaryExpr:
		if n.Op == ast.And || n.Op == ast.Or {
			return ev.forkAndOr(scope, n)
		}
		if isComparison(n.Op) {
			return ev.forkCompare(scope, n)
		}
	case *ast.Let:
		return ev.forkLet(scope, n)
	case *ast.LetRef:
		return ev.forkLetRef(scope, n)
	case *ast.ExpSeq:
		return ev.forkSeq(scope, n)
	}
	return ev.forkLeaf(scope, e)
}

// forkLeaf delegates to the shared traversal and, when the result is a
// boolean-typed residual (a free boolean variable, an opaque boolean
// projection), guesses both truth values for it.
func (ev *Evaluator) forkLeaf(scope *Scope, e ast.Exp) ([]branch, error) {
	v, err := ev.interpret(scope, e)
	if err != nil {
		return nil, err
	}
	if !v.IsFull() && isBooleanKind(e.Type().Kind) {
		return ev.guessBool(v.AsExp())
	}
	return []branch{{ev: ev, val: v}}, nil
}

// guessBool pushes the "assumed true" and "assumed false" alternatives for
// a boolean residual, honouring a previously recorded assumption for the
// same (position-stripped) expression and pruning any alternative whose
// implied integer domain becomes empty.
func (ev *Evaluator) guessBool(cond ast.Exp) ([]branch, error) {
	if b, ok := ev.guesses.Bool(cond); ok {
		return []branch{{ev: ev, val: Full(boolValue(cond, b))}}, nil
	}
	trueEv := ev.clone()
	falseEv := ev.clone()
	var out []branch
	if !trueEv.assume(cond, true) {
		out = append(out, branch{ev: trueEv, val: Full(boolValue(cond, true))})
	}
	if !falseEv.assume(cond, false) {
		out = append(out, branch{ev: falseEv, val: Full(boolValue(cond, false))})
	}
	return out, nil
}

func boolValue(e ast.Exp, b bool) value.Value {
	k := e.Type().Kind
	if !isBooleanKind(k) {
		k = typesys.Bool
	}
	var v int64
	if b {
		v = 1
	}
	return value.NewInt(e.Pos(), k, v)
}

func isBooleanKind(k typesys.Kind) bool {
	return k == typesys.Bool || k == typesys.Bit
}

// forkCompare guesses on a comparison that does not reduce. The rebuilt
// node is used as the guess key so that a right-hand side which folded to
// an integer literal still drives the integer-domain intersection.
func (ev *Evaluator) forkCompare(scope *Scope, n *ast.BinaryExpr) ([]branch, error) {
	l, err := ev.interpret(scope, n.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.interpret(scope, n.R)
	if err != nil {
		return nil, err
	}
	if l.IsFull() && r.IsFull() {
		result, err := ops.Binary(n.Op, l.Value, r.Value, n.At)
		if err != nil {
			return nil, diag.New(diag.KindTypeMismatch, n.Pos(), "%s", err)
		}
		return []branch{{ev: ev, val: Full(result)}}, nil
	}
	rebuilt := &ast.BinaryExpr{Meta: n.Meta, Op: n.Op, L: l.AsExp(), R: r.AsExp()}
	return ev.guessBool(rebuilt)
}

// forkNot forks its operand and negates each fully-reduced alternative.
func (ev *Evaluator) forkNot(scope *Scope, n *ast.UnaryExpr) ([]branch, error) {
	xs, err := ev.fork(scope, n.X)
	if err != nil {
		return nil, err
	}
	var out []branch
	for _, b := range xs {
		if b.val.IsFull() {
			result, err := ops.Unary(ast.Not, b.val.Value, n.At)
			if err != nil {
				return nil, diag.New(diag.KindTypeMismatch, n.Pos(), "%s", err)
			}
			out = append(out, branch{ev: b.ev, val: Full(result)})
			continue
		}
		alts, err := b.ev.guessBool(&ast.UnaryExpr{Meta: n.Meta, Op: n.Op, X: b.val.AsExp(), CastTo: n.CastTo})
		if err != nil {
			return nil, err
		}
		out = append(out, alts...)
	}
	return out, nil
}

// forkAndOr forks the left operand, short-circuits where its truth value
// already decides the result, and forks the right operand within each
// remaining alternative.
func (ev *Evaluator) forkAndOr(scope *Scope, n *ast.BinaryExpr) ([]branch, error) {
	ls, err := ev.fork(scope, n.L)
	if err != nil {
		return nil, err
	}
	var out []branch
	for _, lb := range ls {
		if !lb.val.IsFull() {
			r, err := lb.ev.interpret(scope, n.R)
			if err != nil {
				return nil, err
			}
			rebuilt := &ast.BinaryExpr{Meta: n.Meta, Op: n.Op, L: lb.val.AsExp(), R: r.AsExp()}
			alts, err := lb.ev.guessBool(rebuilt)
			if err != nil {
				return nil, err
			}
			out = append(out, alts...)
			continue
		}
		li, ok := lb.val.Value.(*value.Int)
		if !ok {
			return nil, diag.New(diag.KindTypeMismatch, n.Pos(), "%s applied to non-boolean value", n.Op)
		}
		if (n.Op == ast.And && li.Val == 0) || (n.Op == ast.Or && li.Val != 0) {
			out = append(out, branch{ev: lb.ev, val: Full(boolValue(n, li.Val != 0))})
			continue
		}
		rs, err := lb.ev.fork(scope, n.R)
		if err != nil {
			return nil, err
		}
		for _, rb := range rs {
			if !rb.val.IsFull() {
				rebuilt := &ast.BinaryExpr{Meta: n.Meta, Op: n.Op, L: lb.val.AsExp(), R: rb.val.AsExp()}
				alts, err := rb.ev.guessBool(rebuilt)
				if err != nil {
					return nil, err
				}
				out = append(out, alts...)
				continue
			}
			result, err := ops.Binary(n.Op, lb.val.Value, rb.val.Value, n.At)
			if err != nil {
				return nil, diag.New(diag.KindTypeMismatch, n.Pos(), "%s", err)
			}
			out = append(out, branch{ev: rb.ev, val: Full(result)})
		}
	}
	return out, nil
}

// forkIf forks the condition; alternatives whose condition reduced pick
// their arm, alternatives where it stayed residual (a non-boolean guess
// point cannot arise here, but an opaque condition can) fall back to the
// partial rebuild with coarse invalidation.
func (ev *Evaluator) forkIf(scope *Scope, n *ast.If) ([]branch, error) {
	conds, err := ev.fork(scope, n.Cond)
	if err != nil {
		return nil, err
	}
	var out []branch
	for _, cb := range conds {
		if cb.val.IsFull() {
			bv, ok := cb.val.Value.(*value.Int)
			if !ok {
				return nil, diag.New(diag.KindTypeMismatch, n.Pos(), "if condition is not boolean")
			}
			arm := n.Then
			if bv.Val == 0 {
				arm = n.Else
			}
			alts, err := cb.ev.fork(scope, arm)
			if err != nil {
				return nil, err
			}
			out = append(out, alts...)
			continue
		}
		cb.ev.mutable.InvalidateAll()
		cb.ev.guesses.Clear()
		then, err := cb.ev.interpret(scope, n.Then)
		if err != nil {
			return nil, err
		}
		els, err := cb.ev.interpret(scope, n.Else)
		if err != nil {
			return nil, err
		}
		out = append(out, branch{ev: cb.ev, val: ResidualExp(&ast.If{Meta: n.Meta, Cond: cb.val.AsExp(), Then: then.AsExp(), Else: els.AsExp()})})
	}
	return out, nil
}

func (ev *Evaluator) forkLet(scope *Scope, n *ast.Let) ([]branch, error) {
	if n.Mode == ast.ForceInline {
		return ev.fork(scope, substituteExp(n.Body, n.UniqueID, n.Init))
	}
	init, err := ev.interpret(scope, n.Init)
	if err != nil {
		return nil, err
	}
	if init.IsFull() {
		return ev.fork(scope.Bind(n.UniqueID, init.Value), n.Body)
	}
	bodies, err := ev.fork(scope, n.Body)
	if err != nil {
		return nil, err
	}
	out := make([]branch, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, branch{ev: b.ev, val: ResidualExp(&ast.Let{
			Meta: n.Meta, Name: n.Name, UniqueID: n.UniqueID, Mode: n.Mode,
			Init: init.AsExp(), Body: b.val.AsExp(),
		})})
	}
	return out, nil
}

func (ev *Evaluator) forkLetRef(scope *Scope, n *ast.LetRef) ([]branch, error) {
	var initVal value.Value
	implicit := n.Init == nil
	if n.Init != nil {
		init, err := ev.interpret(scope, n.Init)
		if err != nil {
			return nil, err
		}
		if init.IsFull() {
			initVal = init.Value
		}
	} else if z, ok := value.Zero(n.At, n.VarType); ok {
		initVal = z
	}
	ev.mutable.Declare(n.UniqueID, initVal, implicit)
	if initVal != nil {
		ev.stats.Record(n.UniqueID, initVal.Size())
	}

	bodies, err := ev.fork(scope, n.Body)
	if err != nil {
		return nil, err
	}
	out := make([]branch, 0, len(bodies))
	for _, b := range bodies {
		val, err := b.ev.residualiseLetRef(n, b.val)
		if err != nil {
			return nil, err
		}
		out = append(out, branch{ev: b.ev, val: val})
	}
	return out, nil
}

func (ev *Evaluator) forkSeq(scope *Scope, n *ast.ExpSeq) ([]branch, error) {
	firsts, err := ev.fork(scope, n.First)
	if err != nil {
		return nil, err
	}
	var out []branch
	for _, b := range firsts {
		if b.val.IsFull() {
			if _, ok := b.val.Value.(*value.Unit); ok {
				rest, err := b.ev.fork(scope, n.Second)
				if err != nil {
					return nil, err
				}
				out = append(out, rest...)
				continue
			}
		}
		second, err := b.ev.interpret(scope, n.Second)
		if err != nil {
			return nil, err
		}
		out = append(out, branch{ev: b.ev, val: ResidualExp(&ast.ExpSeq{Meta: n.Meta, First: b.val.AsExp(), Second: second.AsExp()})})
	}
	return out, nil
}

// assume records that cond is assumed to have truth value b, narrowing the
// integer domain when cond is a comparison against a known integer
// literal, and reports whether the branch is now unsatisfiable (so the
// caller should prune it).
func (ev *Evaluator) assume(cond ast.Exp, b bool) (pruned bool) {
	ev.guesses.AssumeBool(cond, b)
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || !isComparison(bin.Op) {
		return false
	}
	lit, ok := bin.R.(*ast.Literal)
	if !ok {
		return false
	}
	domain := ev.guesses.Intersect(bin.L, bin.Op, lit.Int, b)
	return domain.Empty()
}

func isComparison(op ast.BinaryOp) bool {
	switch op {
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return true
	default:
		return false
	}
}
