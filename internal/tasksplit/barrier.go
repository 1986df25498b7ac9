// Package tasksplit implements task insertion: rewriting a Comp tree
// into an entry task plus a table of independently-schedulable tasks, cut
// at Standalone barriers and pipeline seams.
package tasksplit

import "github.com/flowc-lang/flowc/internal/ast"

// barrierFuncs is the set of LetFunC-bound function names whose body
// contains a barrier, computed by a pre-pass over the tree before
// splitting ("tracked by propagating a set of barrier-function names
// while descending LetFunC").
type barrierFuncs map[string]bool

// collectBarrierFuncs walks c, recording every LetFunC binding whose
// function body contains a barrier (directly, or via a call to an
// already-known barrier function), and returns the accumulated set.
func collectBarrierFuncs(c ast.Comp) barrierFuncs {
	known := barrierFuncs{}
	var walk func(ast.Comp)
	walk = func(c ast.Comp) {
		switch n := c.(type) {
		case *ast.LetFunC:
			walk(n.FnBody)
			if containsBarrier(n.FnBody, known) {
				known[n.Name] = true
			}
			walk(n.Cont)
		case *ast.LetFunE:
			// Exp-level functions cannot themselves contain a Standalone
			// (barriers are a Comp-level concept); only Cont needs walking.
			walk(n.Cont)
		case *ast.BindMany:
			walk(n.Head)
			for _, a := range n.Arms {
				walk(a.Comp)
			}
		case *ast.Seq:
			for _, sub := range n.Comps {
				walk(sub)
			}
		case *ast.Par:
			walk(n.A)
			walk(n.B)
		case *ast.LetE:
			walk(n.Body)
		case *ast.LetERef:
			walk(n.Body)
		case *ast.LetStruct:
			walk(n.Cont)
		case *ast.VectComp:
			walk(n.Body)
		case *ast.Branch:
			walk(n.Then)
			walk(n.Else)
		case *ast.Standalone:
			walk(n.Body)
		case *ast.Until:
			walk(n.Body)
		case *ast.While:
			walk(n.Body)
		case *ast.Times:
			walk(n.Body)
		case *ast.Repeat:
			walk(n.Body)
		}
	}
	walk(c)
	return known
}

// containsBarrier reports whether c contains a Standalone, or a Map/CallC
// referencing a name in known.
func containsBarrier(c ast.Comp, known barrierFuncs) bool {
	switch n := c.(type) {
	case *ast.Standalone:
		return true
	case *ast.Map:
		return known[n.Func]
	case *ast.CallC:
		return known[n.Func]
	case *ast.BindMany:
		if containsBarrier(n.Head, known) {
			return true
		}
		for _, a := range n.Arms {
			if containsBarrier(a.Comp, known) {
				return true
			}
		}
		return false
	case *ast.Seq:
		for _, sub := range n.Comps {
			if containsBarrier(sub, known) {
				return true
			}
		}
		return false
	case *ast.Par:
		// A Par always creates a pipeline seam between its stages (see
		// taskifyPar); its ancestors must split around it even when
		// neither stage contains a Standalone or barrier-function call.
		return true
	case *ast.LetE:
		return containsBarrier(n.Body, known)
	case *ast.LetERef:
		return containsBarrier(n.Body, known)
	case *ast.LetFunC:
		return containsBarrier(n.Cont, known)
	case *ast.LetFunE:
		return containsBarrier(n.Cont, known)
	case *ast.LetStruct:
		return containsBarrier(n.Cont, known)
	case *ast.VectComp:
		return containsBarrier(n.Body, known)
	case *ast.Branch:
		return containsBarrier(n.Then, known) || containsBarrier(n.Else, known)
	case *ast.Until:
		return containsBarrier(n.Body, known)
	case *ast.While:
		return containsBarrier(n.Body, known)
	case *ast.Times:
		return containsBarrier(n.Body, known)
	case *ast.Repeat:
		return containsBarrier(n.Body, known)
	default:
		// CompRef, Emit, Emits, Return, Take, Takes, Filter, ReadSrc,
		// WriteSnk, ReadInternal, WriteInternal, Mitigate, ActivateTask are
		// all leaves with no sub-Comp to descend into.
		return false
	}
}
