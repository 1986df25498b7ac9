package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/value"
)

// interpretAssign resolves the deref path: if the whole
// path is statically known, update the mutable store in place; otherwise
// invalidate the head variable, distinguishing simple (whole-variable)
// overwrite from complex (partial, selector-qualified) overwrite.
func (ev *Evaluator) interpretAssign(scope *Scope, n *ast.Assign) (Evald, error) {
	rhs, err := ev.interpret(scope, n.Value)
	if err != nil {
		return Evald{}, err
	}
	ev.guesses.Clear()

	if len(n.Target.Selectors) == 0 {
		if rhs.IsFull() {
			ev.mutable.SetKnown(n.Target.UniqueID, rhs.Value)
			ev.stats.Record(n.Target.UniqueID, rhs.Value.Size())
			// Fully resolved in place: the mutable store now carries the
			// effect, so the statement itself reduces to unit rather than
			// lingering as residual text (the owning ref-let's own
			// residualisation emits the final written-out value, not each
			// assignment along the way).
			return Full(value.NewUnit(n.At)), nil
		}
		if ev.mode == ModeFull {
			return Evald{}, freeVariable(n.Value)
		}
		ev.mutable.Invalidate(n.Target.UniqueID, false)
		return ResidualExp(&ast.Assign{Meta: n.Meta, Target: n.Target, Value: rhs.AsExp()}), nil
	}

	if rhs.IsFull() {
		if updated, ok := ev.tryResolvePath(n.Target, rhs.Value); ok {
			ev.mutable.SetKnown(n.Target.UniqueID, updated)
			ev.stats.Record(n.Target.UniqueID, updated.Size())
			return Full(value.NewUnit(n.At)), nil
		}
	}
	if ev.mode == ModeFull && !rhs.IsFull() {
		return Evald{}, freeVariable(n.Value)
	}
	ev.mutable.Invalidate(n.Target.UniqueID, true)
	return ResidualExp(&ast.Assign{Meta: n.Meta, Target: n.Target, Value: rhs.AsExp()}), nil
}

// tryResolvePath attempts the in-place update for a selector-qualified
// assignment whose selectors are all statically resolvable integer indices
// or field names. It only supports a single trailing selector, matching
// the shapes ArrayWrite/Assign with a FieldSelector/IndexSelector/
// SliceSelector actually produce; deeper paths fall through to
// invalidation.
func (ev *Evaluator) tryResolvePath(target ast.LValue, rhs value.Value) (value.Value, bool) {
	rs := ev.mutable.Get(target.UniqueID)
	if rs == nil || !rs.Known || len(target.Selectors) != 1 {
		return nil, false
	}
	switch sel := target.Selectors[0].(type) {
	case ast.FieldSelector:
		s, ok := rs.Value.(*value.Struct)
		if !ok {
			return nil, false
		}
		return s.WithField(sel.Field, rhs), true
	default:
		return nil, false
	}
}

// interpretArrayWrite is the distinct `arr[i] := v` node (issue #88).
func (ev *Evaluator) interpretArrayWrite(scope *Scope, n *ast.ArrayWrite) (Evald, error) {
	rhs, err := ev.interpret(scope, n.Value)
	if err != nil {
		return Evald{}, err
	}
	idx, err := ev.interpret(scope, n.Index)
	if err != nil {
		return Evald{}, err
	}
	ev.guesses.Clear()

	ref, isVar := n.Array.(*ast.VarRef)
	if isVar && rhs.IsFull() && idx.IsFull() {
		rs := ev.mutable.Get(ref.UniqueID)
		if rs != nil && rs.Known {
			if arr, ok := rs.Value.(*value.Array); ok {
				if iv, ok := idx.Value.(*value.Int); ok && arr.InBounds(int(iv.Val)) {
					next := arr.Set(int(iv.Val), rhs.Value)
					ev.mutable.SetKnown(ref.UniqueID, next)
					ev.stats.Record(ref.UniqueID, next.Size())
					return Full(value.NewUnit(n.At)), nil
				}
			}
		}
	}
	if ev.mode == ModeFull && (!rhs.IsFull() || !idx.IsFull()) {
		if !rhs.IsFull() {
			return Evald{}, freeVariable(n.Value)
		}
		return Evald{}, freeVariable(n.Index)
	}
	if isVar {
		ev.mutable.Invalidate(ref.UniqueID, true)
	}
	return ResidualExp(&ast.ArrayWrite{Meta: n.Meta, Array: n.Array, Index: idx.AsExp(), Value: rhs.AsExp()}), nil
}

// interpretSeq: "if the first step reduces to unit, return the second's
// result; otherwise rebuild a sequence node."
func (ev *Evaluator) interpretSeq(scope *Scope, n *ast.ExpSeq) (Evald, error) {
	first, err := ev.interpret(scope, n.First)
	if err != nil {
		return Evald{}, err
	}
	if first.IsFull() {
		if _, ok := first.Value.(*value.Unit); ok {
			return ev.interpret(scope, n.Second)
		}
	}
	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n.First)
	}
	second, err := ev.interpret(scope, n.Second)
	if err != nil {
		return Evald{}, err
	}
	return ResidualExp(&ast.ExpSeq{Meta: n.Meta, First: first.AsExp(), Second: second.AsExp()}), nil
}

// interpretIf: take the resolved branch when possible; otherwise invalidate
// all ref-state coarsely (we don't know which branch runs), interpret both
// branches, and rebuild.
func (ev *Evaluator) interpretIf(scope *Scope, n *ast.If) (Evald, error) {
	cond, err := ev.interpret(scope, n.Cond)
	if err != nil {
		return Evald{}, err
	}
	if cond.IsFull() {
		if b, ok := cond.Value.(*value.Int); ok {
			if b.Val != 0 {
				return ev.interpret(scope, n.Then)
			}
			return ev.interpret(scope, n.Else)
		}
		return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "if condition is not boolean")
	}
	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n.Cond)
	}
	ev.mutable.InvalidateAll()
	ev.guesses.Clear()
	then, err := ev.interpret(scope, n.Then)
	if err != nil {
		return Evald{}, err
	}
	els, err := ev.interpret(scope, n.Else)
	if err != nil {
		return Evald{}, err
	}
	return ResidualExp(&ast.If{Meta: n.Meta, Cond: cond.AsExp(), Then: then.AsExp(), Else: els.AsExp()}), nil
}

// interpretFor: unroll when start/count are known integers and count <=
// MaxUnroll, aborting (and restoring pre-loop state) if any iteration's
// body fails to reduce to unit.
func (ev *Evaluator) interpretFor(scope *Scope, n *ast.For) (Evald, error) {
	start, err := ev.interpret(scope, n.Start)
	if err != nil {
		return Evald{}, err
	}
	count, err := ev.interpret(scope, n.Count)
	if err != nil {
		return Evald{}, err
	}

	if n.Unroll != ast.UnrollForbid && start.IsFull() && count.IsFull() {
		si, sok := start.Value.(*value.Int)
		ci, cok := count.Value.(*value.Int)
		if sok && cok && ci.Val >= 0 && ci.Val <= int64(ev.cfg.MaxUnroll) {
			snapshot := ev.mutable.Snapshot()
			result, ok, aerr := ev.tryUnroll(scope, n, si.Val, ci.Val)
			if aerr != nil {
				return Evald{}, aerr
			}
			if ok {
				return result, nil
			}
			ev.mutable.Restore(snapshot)
		}
	}

	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n)
	}
	ev.mutable.InvalidateAll()
	ev.guesses.Clear()
	body, err := ev.interpret(scope, n.Body)
	if err != nil {
		return Evald{}, err
	}
	return ResidualExp(&ast.For{
		Meta: n.Meta, Var: n.Var, UniqueID: n.UniqueID,
		Start: start.AsExp(), Count: count.AsExp(), Unroll: n.Unroll, Body: body.AsExp(),
	}), nil
}

func (ev *Evaluator) tryUnroll(scope *Scope, n *ast.For, start, count int64) (Evald, bool, error) {
	indexType := n.Start.Type()
	last := Full(value.NewUnit(n.At))
	for i := int64(0); i < count; i++ {
		iterScope := scope.Bind(n.UniqueID, value.NewInt(n.At, indexType.Kind, start+i))
		result, err := ev.interpret(iterScope, n.Body)
		if err != nil {
			return Evald{}, false, err
		}
		if !result.IsFull() {
			return Evald{}, false, nil
		}
		if _, ok := result.Value.(*value.Unit); !ok {
			return Evald{}, false, nil
		}
		last = result
	}
	return last, true, nil
}

// interpretWhile: same pattern as For — the loop either runs to static
// completion within MaxUnroll iterations or restores pre-loop state and
// rebuilds.
func (ev *Evaluator) interpretWhile(scope *Scope, n *ast.ExpWhile) (Evald, error) {
	snapshot := ev.mutable.Snapshot()
	iterations := 0
	for {
		cond, err := ev.interpret(scope, n.Cond)
		if err != nil {
			return Evald{}, err
		}
		if !cond.IsFull() {
			break
		}
		b, ok := cond.Value.(*value.Int)
		if !ok {
			return Evald{}, diag.New(diag.KindTypeMismatch, n.Pos(), "while condition is not boolean")
		}
		if b.Val == 0 {
			return Full(value.NewUnit(n.At)), nil
		}
		iterations++
		if iterations > ev.cfg.MaxUnroll {
			break
		}
		result, err := ev.interpret(scope, n.Body)
		if err != nil {
			return Evald{}, err
		}
		if !result.IsFull() {
			break
		}
		if _, ok := result.Value.(*value.Unit); !ok {
			break
		}
	}
	ev.mutable.Restore(snapshot)
	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n.Cond)
	}
	ev.mutable.InvalidateAll()
	ev.guesses.Clear()
	cond, err := ev.interpret(scope, n.Cond)
	if err != nil {
		return Evald{}, err
	}
	body, err := ev.interpret(scope, n.Body)
	if err != nil {
		return Evald{}, err
	}
	return ResidualExp(&ast.ExpWhile{Meta: n.Meta, Cond: cond.AsExp(), Body: body.AsExp()}), nil
}

// interpretCall: calls are always opaque. Invalidate all ref-state,
// interpret arguments, rebuild a call node.
func (ev *Evaluator) interpretCall(scope *Scope, n *ast.Call) (Evald, error) {
	args := make([]ast.Exp, len(n.Args))
	for i, a := range n.Args {
		av, err := ev.interpret(scope, a)
		if err != nil {
			return Evald{}, err
		}
		args[i] = av.AsExp()
	}
	if ev.mode == ModeFull {
		return Evald{}, freeVariable(n)
	}
	ev.mutable.InvalidateAll()
	ev.guesses.Clear()
	return ResidualExp(&ast.Call{Meta: n.Meta, Func: n.Func, Args: args}), nil
}

// interpretPrint always residualises to preserve the generated program's
// I/O order, but still evaluates and records its arguments (and, in Full
// mode, requires they all reduce) so the print log is complete.
func (ev *Evaluator) interpretPrint(scope *Scope, n *ast.Print) (Evald, error) {
	args := make([]ast.Exp, len(n.Args))
	vals := make([]value.Value, 0, len(n.Args))
	for i, a := range n.Args {
		av, err := ev.interpret(scope, a)
		if err != nil {
			return Evald{}, err
		}
		if !av.IsFull() && ev.mode == ModeFull {
			return Evald{}, freeVariable(a)
		}
		if av.IsFull() {
			vals = append(vals, av.Value)
		}
		args[i] = av.AsExp()
	}
	if len(vals) == len(n.Args) {
		ev.recordPrint(n.Newline, vals)
	}
	return ResidualExp(&ast.Print{Meta: n.Meta, Args: args, Newline: n.Newline}), nil
}
